package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// LiveStatuses are the statuses that count against slot exclusivity:
// a second booking may not occupy the same (date, time) while one of
// these exists there.
var LiveStatuses = []BookingStatus{BookingPending, BookingApproved}

// Terminal reports whether no further transition is permitted.
func (s BookingStatus) Terminal() bool {
	return s == BookingApproved || s == BookingRejected || s == BookingCancelled
}

// ValidDecision reports whether s is an outcome an admin may assign
// to a pending booking.
func (s BookingStatus) ValidDecision() bool {
	return s == BookingApproved || s == BookingRejected
}

type Booking struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"user_id"`
	CeremonyTypeID int64         `json:"ceremony_type_id" validate:"required"`
	BookingDate    time.Time     `json:"booking_date" validate:"required"`
	BookingTime    string        `json:"booking_time" validate:"required"`
	FullName       string        `json:"full_name" validate:"required"`
	Phone          string        `json:"phone" validate:"required"`
	Details        string        `json:"details,omitempty" gorm:"type:text"`
	Status         BookingStatus `json:"status"`
	AdminResponse  string        `json:"admin_response,omitempty" gorm:"type:text"`
	AdminID        *int64        `json:"admin_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	RespondedAt    *time.Time    `json:"responded_at,omitempty"`

	Ceremony *CeremonyType `json:"ceremony,omitempty" gorm:"foreignKey:CeremonyTypeID"`
	User     *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
