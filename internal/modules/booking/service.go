package booking

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"temple/internal/domain"
	"temple/internal/repository"
)

const maxDetailsLen = 2000

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Service struct {
	bookings   SlotLedger
	ceremonies CeremonyReader
}

func NewService(bookings SlotLedger, ceremonies CeremonyReader) *Service {
	return &Service{bookings: bookings, ceremonies: ceremonies}
}

// Submit admits a new booking request. The slot conflict check runs
// inside the ledger's create transaction, so two concurrent submissions
// for the same (date, time) cannot both succeed.
func (s *Service) Submit(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return nil, ErrValidation
	}
	if !timeOfDayRe.MatchString(req.BookingTime) {
		return nil, ErrValidation
	}

	fullName := strings.TrimSpace(req.FullName)
	phone := strings.TrimSpace(req.Phone)
	if fullName == "" || phone == "" {
		return nil, ErrValidation
	}
	if len(req.Details) > maxDetailsLen {
		return nil, ErrValidation
	}

	ct, err := s.ceremonies.GetByID(ctx, req.CeremonyTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCeremonyNotFound
		}
		return nil, err
	}
	if !ct.IsActive {
		return nil, ErrCeremonyNotFound
	}

	b := &domain.Booking{
		UserID:         userID,
		CeremonyTypeID: ct.ID,
		BookingDate:    date.UTC(),
		BookingTime:    req.BookingTime,
		FullName:       fullName,
		Phone:          phone,
		Details:        strings.TrimSpace(req.Details),
		Status:         domain.BookingPending,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, status string, page, limit int) ([]domain.Booking, int64, error) {
	return s.bookings.ListForUser(ctx, userID, status, page, limit)
}

// GetByID returns a booking visible to the caller: its owner, or any admin.
func (s *Service) GetByID(ctx context.Context, id, callerID int64, callerRole string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != callerID && callerRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return b, nil
}

// Cancel flips the caller's own pending booking to cancelled. The
// ownership and pending guards are the ledger's conditional update, so
// a cancel racing an admin decision loses with ErrAlreadyDecided
// instead of clobbering the decision.
func (s *Service) Cancel(ctx context.Context, id, callerID int64) (*domain.Booking, error) {
	b, err := s.bookings.Cancel(ctx, id, callerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrNotOwner):
			return nil, ErrForbidden
		case errors.Is(err, repository.ErrAlreadyDecided):
			return nil, ErrAlreadyDecided
		}
		return nil, err
	}
	return b, nil
}
