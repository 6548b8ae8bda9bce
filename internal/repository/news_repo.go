package repository

import (
	"context"

	"gorm.io/gorm"

	"temple/internal/domain"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) ListPublished(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 5
	}

	var rows []domain.NewsItem
	tx := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
