package admin

import (
	"context"
	"errors"
	"time"

	"temple/internal/domain"
	"temple/internal/repository"
)

type Service struct {
	bookings BookingLedger
}

func NewService(bookings BookingLedger) *Service {
	return &Service{bookings: bookings}
}

func (s *Service) ListBookings(ctx context.Context, q ListQuery) ([]domain.Booking, int64, error) {
	filters := repository.ListFilters{
		Status: q.Status,
		Page:   q.Page,
		Limit:  q.Limit,
	}

	if q.DateFrom != "" {
		from, err := time.Parse("2006-01-02", q.DateFrom)
		if err != nil {
			return nil, 0, ErrValidation
		}
		filters.DateFrom = from.UTC()
	}
	if q.DateTo != "" {
		to, err := time.Parse("2006-01-02", q.DateTo)
		if err != nil {
			return nil, 0, ErrValidation
		}
		filters.DateTo = to.UTC()
	}

	return s.bookings.ListAll(ctx, filters)
}

// Decide applies the one-shot admin decision. Anything other than
// approved/rejected is rejected up front; the pending guard itself
// lives in the ledger's conditional update, so concurrent decisions
// resolve to exactly one winner.
func (s *Service) Decide(ctx context.Context, bookingID, adminID int64, statusStr, responseText string) (*domain.Booking, error) {
	status := domain.BookingStatus(statusStr)
	if !status.ValidDecision() {
		return nil, ErrValidation
	}

	b, err := s.bookings.ApplyDecision(ctx, bookingID, status, adminID, responseText)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrAlreadyDecided):
			return nil, ErrAlreadyDecided
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{
		Total:     counts.Total,
		Pending:   counts.Pending,
		Approved:  counts.Approved,
		Rejected:  counts.Rejected,
		Cancelled: counts.Cancelled,
		Today:     counts.Today,
	}, nil
}

// DeleteBooking hard-deletes a row. Escape hatch outside the workflow's
// guarantees; the state machine never runs this.
func (s *Service) DeleteBooking(ctx context.Context, bookingID int64) error {
	err := s.bookings.Delete(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
