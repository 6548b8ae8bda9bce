package domain

import "time"

// CeremonyType is an admin-managed booking category. Once bookings
// reference a type it is deactivated, never hard-deleted.
type CeremonyType struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
	Description     string    `json:"description,omitempty" gorm:"type:text"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
