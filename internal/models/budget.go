package models

import (
	"time"
)

type Budget struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	CategoryID string    `json:"category_id"`
	Limit      float64   `json:"limit"`
	Month      int       `json:"month"` // 1-12
	Year       int       `json:"year"`
	CreatedAt  time.Time `json:"created_at"`

	CategoryName string `json:"category_name,omitempty"`
}
