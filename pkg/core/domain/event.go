package domain

import "time"

// Event represents one recorded click on a tracking link
type Event struct {
	ID         string     `json:"id"`
	LinkID     string     `json:"link_id"`
	Timestamp  time.Time  `json:"timestamp"`
	Country    string     `json:"country,omitempty"`
	DeviceType string     `json:"device_type,omitempty"`
	Referrer   string     `json:"referrer,omitempty"`
	Client     ClientInfo `json:"client"`
}

// ClientInfo is passed through untouched; the core never interprets it.
type ClientInfo struct {
	IP           string   `json:"ip,omitempty"`
	UserAgent    string   `json:"user_agent,omitempty"`
	City         string   `json:"city,omitempty"`
	Region       string   `json:"region,omitempty"`
	Browser      string   `json:"browser,omitempty"`
	OS           string   `json:"os,omitempty"`
	ScreenWidth  int      `json:"screen_width,omitempty"`
	ScreenHeight int      `json:"screen_height,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// EventPayload is the already-enriched data handed to the ingestion path
type EventPayload struct {
	Country    string     `json:"country,omitempty"`
	DeviceType string     `json:"device_type,omitempty"`
	Referrer   string     `json:"referrer,omitempty"`
	Client     ClientInfo `json:"client"`
}

// ClickResult is returned after a click has been recorded
type ClickResult struct {
	EventID     string `json:"event_id"`
	RedirectURL string `json:"redirect_url"`
}
