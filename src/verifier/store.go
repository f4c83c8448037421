package verifier

import (
	"context"

	"github.com/veritylabs/verityai/src/api/types"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns an AuditStore backed by the relational database.
func NewGormStore(db *gorm.DB) AuditStore {
	return &gormStore{db: db}
}

func (s *gormStore) Append(ctx context.Context, rec *types.AnalysisLog) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *gormStore) Recent(ctx context.Context, limit int) ([]types.AnalysisLog, error) {
	var logs []types.AnalysisLog
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
