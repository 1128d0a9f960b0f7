package models

import "time"

// Product represents a marketplace listing. Price 0 marks a free/donation
// listing. Username, Email and Category are only populated on read paths
// that join the owner and category tables.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	UserID      int64     `json:"user_id"`
	CategoryID  int64     `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`

	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Category string `json:"category,omitempty"`
}
