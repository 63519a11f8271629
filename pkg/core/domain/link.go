package domain

import "time"

// Link represents a tracking link that redirects to OriginalURL
type Link struct {
	ID          string    `json:"id"`
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ClickCount  int64     `json:"click_count"` // Equals the number of events referencing ID
	IsActive    bool      `json:"is_active"`
}

// NewLink is the input for creating a link. An empty ShortCode asks the
// registry to generate one.
type NewLink struct {
	OriginalURL string `json:"url"`
	ShortCode   string `json:"custom_code,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}
