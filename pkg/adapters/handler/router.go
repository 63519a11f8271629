package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(links ports.LinkService, tracking ports.TrackingService, analytics ports.AnalyticsService) http.Handler {
	h := NewHTTPHandler(links, tracking, analytics)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /open/{short_code}", h.Redirect)

	// Links
	mux.HandleFunc("POST /api/v1/links", h.Create)
	mux.HandleFunc("GET /api/v1/links", h.List)
	mux.HandleFunc("GET /api/v1/links/{id}", h.Get)
	mux.HandleFunc("GET /api/v1/links/code/{short_code}", h.GetByShortCode)
	mux.HandleFunc("PATCH /api/v1/links/{id}/active", h.SetActive)

	// Tracking
	mux.HandleFunc("POST /api/v1/track", h.Track)
	mux.HandleFunc("GET /api/v1/events", h.Events)
	mux.HandleFunc("GET /api/v1/events/export", h.ExportEvents)

	// Analytics
	mux.HandleFunc("GET /api/v1/analytics", h.Analytics)
	mux.HandleFunc("POST /api/v1/analytics/summary", h.Summary)

	return RequestLogger(mux)
}
