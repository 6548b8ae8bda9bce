package admin

import (
	"context"

	"temple/internal/domain"
	"temple/internal/repository"
)

// BookingLedger is the admin-facing slice of the booking repository.
// Decisions go through ApplyDecision, a conditional update keyed on the
// pending status.
type BookingLedger interface {
	ListAll(ctx context.Context, filters repository.ListFilters) ([]domain.Booking, int64, error)
	ApplyDecision(ctx context.Context, id int64, newStatus domain.BookingStatus, adminID int64, adminResponse string) (*domain.Booking, error)
	CountByStatus(ctx context.Context) (*repository.StatusCounts, error)
	Delete(ctx context.Context, id int64) error
}
