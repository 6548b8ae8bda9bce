package notification

import "time"

const (
	TypeNewBooking    = "new_booking"
	TypeQnA           = "qna"
	TypeNews          = "news"
	TypeBookingStatus = "booking_status"
)

// Notification is a derived summary item, not a stored row. There is
// no read/unread tracking behind it.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	TimeAgo   string    `json:"time_ago"`
	Link      string    `json:"link"`
	Timestamp time.Time `json:"-"`
}

type SummaryResponse struct {
	UnreadCount int            `json:"unreadCount"`
	Items       []Notification `json:"items"`
	Degraded    bool           `json:"degraded,omitempty"`
}
