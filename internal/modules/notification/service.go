package notification

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"temple/internal/domain"
)

const (
	adminBookingLimit = 10
	adminQnALimit     = 10
	userNewsLimit     = 5
	userBookingLimit  = 10
)

var statusLabels = map[domain.BookingStatus]string{
	domain.BookingPending:   "awaiting review",
	domain.BookingApproved:  "approved",
	domain.BookingRejected:  "rejected",
	domain.BookingCancelled: "cancelled",
}

type Viewer struct {
	UserID int64
	Role   string
}

type Service struct {
	bookings BookingSource
	qna      QnASource
	news     NewsSource
}

func NewService(bookings BookingSource, qna QnASource, news NewsSource) *Service {
	return &Service{bookings: bookings, qna: qna, news: news}
}

// Summarize builds a best-effort, stateless summary for the viewer.
// A failed sub-query degrades that source to empty instead of failing
// the whole summary; unreadCount is just the merged list's length.
func (s *Service) Summarize(ctx context.Context, viewer Viewer) *SummaryResponse {
	items := make([]Notification, 0, adminBookingLimit+adminQnALimit)
	degraded := false

	if viewer.Role == string(domain.RoleAdmin) {
		pending, err := s.bookings.ListPending(ctx, adminBookingLimit)
		if err != nil {
			log.Printf("notification_summary source=pending_bookings error=%v", err)
			degraded = true
		}
		for _, b := range pending {
			items = append(items, Notification{
				ID:        fmt.Sprintf("booking-%d", b.ID),
				Type:      TypeNewBooking,
				Title:     "New booking request",
				Message:   adminBookingMessage(b),
				Timestamp: b.CreatedAt,
				Link:      "/admin/bookings",
			})
		}

		threads, err := s.qna.ListUnanswered(ctx, adminQnALimit)
		if err != nil {
			log.Printf("notification_summary source=qna error=%v", err)
			degraded = true
		}
		for _, t := range threads {
			items = append(items, Notification{
				ID:        fmt.Sprintf("qna-%d", t.ID),
				Type:      TypeQnA,
				Title:     "Unanswered question",
				Message:   t.Question,
				Timestamp: t.CreatedAt,
				Link:      "/admin/qna",
			})
		}
	} else {
		news, err := s.news.ListPublished(ctx, userNewsLimit)
		if err != nil {
			log.Printf("notification_summary source=news error=%v", err)
			degraded = true
		}
		for _, n := range news {
			ts := n.CreatedAt
			if n.PublishedAt != nil {
				ts = *n.PublishedAt
			}
			items = append(items, Notification{
				ID:        fmt.Sprintf("news-%d", n.ID),
				Type:      TypeNews,
				Title:     n.Title,
				Message:   n.Body,
				Timestamp: ts,
				Link:      fmt.Sprintf("/news/%d", n.ID),
			})
		}

		mine, err := s.bookings.ListRecentForUser(ctx, viewer.UserID, userBookingLimit)
		if err != nil {
			log.Printf("notification_summary source=user_bookings error=%v", err)
			degraded = true
		}
		for _, b := range mine {
			items = append(items, Notification{
				ID:        fmt.Sprintf("booking-%d", b.ID),
				Type:      TypeBookingStatus,
				Title:     "Booking update",
				Message:   userBookingMessage(b),
				Timestamp: b.UpdatedAt,
				Link:      fmt.Sprintf("/bookings/%d", b.ID),
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	for i := range items {
		items[i].TimeAgo = timeAgo(items[i].Timestamp)
	}

	return &SummaryResponse{
		UnreadCount: len(items),
		Items:       items,
		Degraded:    degraded,
	}
}

func adminBookingMessage(b domain.Booking) string {
	ceremony := "ceremony"
	if b.Ceremony != nil && b.Ceremony.Name != "" {
		ceremony = b.Ceremony.Name
	}
	return fmt.Sprintf("%s - %s on %s %s",
		b.FullName, ceremony, b.BookingDate.Format("2006-01-02"), b.BookingTime)
}

func userBookingMessage(b domain.Booking) string {
	label, ok := statusLabels[b.Status]
	if !ok {
		label = string(b.Status)
	}
	ceremony := "Your booking"
	if b.Ceremony != nil && b.Ceremony.Name != "" {
		ceremony = b.Ceremony.Name
	}
	return fmt.Sprintf("%s on %s %s: %s",
		ceremony, b.BookingDate.Format("2006-01-02"), b.BookingTime, label)
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
