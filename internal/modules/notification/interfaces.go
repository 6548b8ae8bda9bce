package notification

import (
	"context"

	"temple/internal/domain"
)

type BookingSource interface {
	ListPending(ctx context.Context, limit int) ([]domain.Booking, error)
	ListRecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Booking, error)
}

type QnASource interface {
	ListUnanswered(ctx context.Context, limit int) ([]domain.QnAThread, error)
}

type NewsSource interface {
	ListPublished(ctx context.Context, limit int) ([]domain.NewsItem, error)
}
