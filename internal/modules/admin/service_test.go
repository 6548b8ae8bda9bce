package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"temple/internal/domain"
	"temple/internal/repository"
)

type MockBookingLedger struct {
	mock.Mock
}

func (m *MockBookingLedger) ListAll(ctx context.Context, filters repository.ListFilters) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingLedger) ApplyDecision(ctx context.Context, id int64, newStatus domain.BookingStatus, adminID int64, adminResponse string) (*domain.Booking, error) {
	args := m.Called(ctx, id, newStatus, adminID, adminResponse)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingLedger) CountByStatus(ctx context.Context) (*repository.StatusCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.StatusCounts), args.Error(1)
}

func (m *MockBookingLedger) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Decide_Approve(t *testing.T) {
	ledger := new(MockBookingLedger)

	respondedAt := time.Now()
	approved := &domain.Booking{
		ID:            12,
		Status:        domain.BookingApproved,
		AdminResponse: "bring flowers",
		RespondedAt:   &respondedAt,
	}
	ledger.On("ApplyDecision", mock.Anything, int64(12), domain.BookingApproved, int64(1), "bring flowers").
		Return(approved, nil)

	service := NewService(ledger)
	b, err := service.Decide(context.Background(), 12, 1, "approved", "bring flowers")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, b.Status)
	assert.Equal(t, "bring flowers", b.AdminResponse)
	assert.NotNil(t, b.RespondedAt)
}

func TestService_Decide_InvalidStatus(t *testing.T) {
	ledger := new(MockBookingLedger)
	service := NewService(ledger)

	for _, status := range []string{"pending", "cancelled", "done", ""} {
		_, err := service.Decide(context.Background(), 12, 1, status, "")
		assert.ErrorIs(t, err, ErrValidation, "status %q must be rejected", status)
	}
	ledger.AssertNotCalled(t, "ApplyDecision")
}

func TestService_Decide_AlreadyDecided(t *testing.T) {
	ledger := new(MockBookingLedger)
	ledger.On("ApplyDecision", mock.Anything, int64(12), domain.BookingRejected, int64(2), "").
		Return(nil, repository.ErrAlreadyDecided)

	service := NewService(ledger)
	_, err := service.Decide(context.Background(), 12, 2, "rejected", "")

	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestService_Decide_NotFound(t *testing.T) {
	ledger := new(MockBookingLedger)
	ledger.On("ApplyDecision", mock.Anything, int64(404), domain.BookingApproved, int64(1), "").
		Return(nil, repository.ErrNotFound)

	service := NewService(ledger)
	_, err := service.Decide(context.Background(), 404, 1, "approved", "")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListBookings_DateFilters(t *testing.T) {
	ledger := new(MockBookingLedger)
	service := NewService(ledger)

	_, _, err := service.ListBookings(context.Background(), ListQuery{DateFrom: "not-a-date"})
	assert.ErrorIs(t, err, ErrValidation)

	expected := repository.ListFilters{
		Status:   "pending",
		DateFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Page:     2,
		Limit:    10,
	}
	ledger.On("ListAll", mock.Anything, expected).Return([]domain.Booking{}, int64(0), nil)

	_, _, err = service.ListBookings(context.Background(), ListQuery{
		Status:   "pending",
		DateFrom: "2025-01-01",
		DateTo:   "2025-01-31",
		Page:     2,
		Limit:    10,
	})
	assert.NoError(t, err)
	ledger.AssertExpectations(t)
}

func TestService_Stats(t *testing.T) {
	ledger := new(MockBookingLedger)
	ledger.On("CountByStatus", mock.Anything).Return(&repository.StatusCounts{
		Total:     10,
		Pending:   3,
		Approved:  4,
		Rejected:  2,
		Cancelled: 1,
		Today:     2,
	}, nil)

	service := NewService(ledger)
	stats, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(3), stats.Pending)
	assert.Equal(t, int64(2), stats.Today)
}
