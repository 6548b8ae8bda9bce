package domain

import "time"

type NewsItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body,omitempty" gorm:"type:text"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
