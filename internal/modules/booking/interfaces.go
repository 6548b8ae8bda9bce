package booking

import (
	"context"
	"time"

	"temple/internal/domain"
)

// SlotLedger is the slice of the booking repository the workflow
// engine drives. All mutation goes through the ledger's conditional
// operations, never through read-modify-write here.
type SlotLedger interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64, status string, page, limit int) ([]domain.Booking, int64, error)
	FindConflicting(ctx context.Context, date time.Time, slot string) ([]domain.Booking, error)
	Cancel(ctx context.Context, id, ownerID int64) (*domain.Booking, error)
}

type CeremonyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.CeremonyType, error)
}
