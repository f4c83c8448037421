package types

import "time"

// User is a registered account. The password hash never leaves the server.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AnalysisLog is an append-only audit record of one verification request.
// Content is excluded from JSON so history responses never echo what a
// user submitted.
type AnalysisLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	InputType string    `gorm:"type:varchar(8);not null" json:"inputType"`
	Content   string    `gorm:"type:text" json:"-"`
	Score     int       `gorm:"not null" json:"score"`
	Verdict   string    `gorm:"type:varchar(16);not null;index" json:"verdict"`
	Reasoning string    `gorm:"type:text" json:"reasoning"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
