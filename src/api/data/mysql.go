package data

import (
	"log"

	"github.com/veritylabs/verityai/src/api/types"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	return db
}

// Migrate creates or updates the users and analysis_logs tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&types.User{}, &types.AnalysisLog{})
}
