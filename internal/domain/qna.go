package domain

import "time"

// QnAThread is a read-only input to the notification summary: a thread
// is actionable for an admin while its answer is blank.
type QnAThread struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Question   string     `json:"question" gorm:"type:text"`
	Answer     string     `json:"answer,omitempty" gorm:"type:text"`
	CreatedAt  time.Time  `json:"created_at"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}
