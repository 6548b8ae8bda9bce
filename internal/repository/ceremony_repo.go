package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"temple/internal/domain"
)

type CeremonyRepository struct {
	db *gorm.DB
}

func NewCeremonyRepository(db *gorm.DB) *CeremonyRepository {
	return &CeremonyRepository{db: db}
}

func (r *CeremonyRepository) GetByID(ctx context.Context, id int64) (*domain.CeremonyType, error) {
	var ct domain.CeremonyType
	tx := r.db.WithContext(ctx).First(&ct, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return &ct, nil
}

func (r *CeremonyRepository) ListActive(ctx context.Context) ([]domain.CeremonyType, error) {
	var rows []domain.CeremonyType
	tx := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *CeremonyRepository) ListAll(ctx context.Context) ([]domain.CeremonyType, error) {
	var rows []domain.CeremonyType
	tx := r.db.WithContext(ctx).Order("name").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *CeremonyRepository) Create(ctx context.Context, ct *domain.CeremonyType) error {
	return r.db.WithContext(ctx).Create(ct).Error
}

func (r *CeremonyRepository) Update(ctx context.Context, ct *domain.CeremonyType) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.CeremonyType{}).
		Where("id = ?", ct.ID).
		Updates(map[string]any{
			"name":             ct.Name,
			"duration_minutes": ct.DurationMinutes,
			"description":      ct.Description,
			"updated_at":       time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-disables a type instead of deleting it; existing
// bookings keep a valid reference.
func (r *CeremonyRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.CeremonyType{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
