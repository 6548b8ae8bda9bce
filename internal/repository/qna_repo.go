package repository

import (
	"context"

	"gorm.io/gorm"

	"temple/internal/domain"
)

type QnARepository struct {
	db *gorm.DB
}

func NewQnARepository(db *gorm.DB) *QnARepository {
	return &QnARepository{db: db}
}

// ListUnanswered returns the most recent threads whose answer is still
// blank. These are the admin-actionable items.
func (r *QnARepository) ListUnanswered(ctx context.Context, limit int) ([]domain.QnAThread, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []domain.QnAThread
	tx := r.db.WithContext(ctx).
		Where("answer IS NULL OR TRIM(answer) = ''").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
