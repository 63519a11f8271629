package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/analytics"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/logger"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

type HTTPHandler struct {
	links     ports.LinkService
	tracking  ports.TrackingService
	analytics ports.AnalyticsService
}

func NewHTTPHandler(links ports.LinkService, tracking ports.TrackingService, analytics ports.AnalyticsService) *HTTPHandler {
	return &HTTPHandler{links: links, tracking: tracking, analytics: analytics}
}

// CreateLinkRequest payload
type CreateLinkRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CustomCode  string `json:"custom_code,omitempty"`
}

// SetActiveRequest payload
type SetActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// TrackRequest payload sent by the tracking page
type TrackRequest struct {
	LinkID         string         `json:"link_id"`
	AdditionalData AdditionalData `json:"additional_data"`
}

// SummaryRequest payload
type SummaryRequest struct {
	TimeRange string `json:"time_range"`
}

// Create Link
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.links.CreateLink(r.Context(), domain.NewLink{
		OriginalURL: req.URL,
		ShortCode:   req.CustomCode,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// List Links
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.links.ListLinks(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// Get Link by ID
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	link, err := h.links.GetLink(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// Get Link by short code, for metadata resolution without a redirect
func (h *HTTPHandler) GetByShortCode(w http.ResponseWriter, r *http.Request) {
	link, err := h.links.GetLinkByShortCode(r.Context(), r.PathValue("short_code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// SetActive enables or disables click recording for a link
func (h *HTTPHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		writeError(w, http.StatusBadRequest, "is_active is required")
		return
	}

	link, err := h.links.SetActive(r.Context(), r.PathValue("id"), *req.IsActive)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// Redirect records a click and sends the visitor to the original URL.
// With ?no_stat set the redirect happens without recording.
func (h *HTTPHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("short_code")

	if r.URL.Query().Get("no_stat") != "" {
		link, err := h.links.GetLinkByShortCode(r.Context(), code)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if !link.IsActive {
			writeServiceError(w, r, domain.ErrLinkInactive)
			return
		}
		http.Redirect(w, r, link.OriginalURL, http.StatusFound)
		return
	}

	res, err := h.tracking.RecordShortCodeClick(r.Context(), code, payloadFromRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, res.RedirectURL, http.StatusFound)
}

// Track records a click reported by the tracking page
func (h *HTTPHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LinkID == "" {
		writeError(w, http.StatusBadRequest, "link_id is required")
		return
	}

	payload := req.AdditionalData.apply(payloadFromRequest(r))
	res, err := h.tracking.RecordClick(r.Context(), req.LinkID, payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"event_id":     res.EventID,
		"redirect_url": res.RedirectURL,
	})
}

// Events lists recorded clicks, optionally scoped by ?link_id=
func (h *HTTPHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.tracking.ListEvents(r.Context(), r.URL.Query().Get("link_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// ExportEvents streams recorded clicks as CSV
func (h *HTTPHandler) ExportEvents(w http.ResponseWriter, r *http.Request) {
	linkID := r.URL.Query().Get("link_id")
	events, err := h.tracking.ListEvents(r.Context(), linkID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	name := "all"
	if linkID != "" {
		name = linkID
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="tracking-data-`+name+`.csv"`)
	if err := analytics.WriteCSV(w, events); err != nil {
		// Headers are already sent
		logger.Error().Err(err).Str("link_id", linkID).Msg("csv export failed")
	}
}

// Analytics returns the dashboard snapshot, optionally scoped by ?link_id=
// and windowed by ?range=
func (h *HTTPHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	snap, err := h.analytics.GetAnalytics(r.Context(), q.Get("link_id"), q.Get("range"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Summary returns global statistics over a time range. An empty body uses
// the default range.
func (h *HTTPHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.analytics.GetSummary(r.Context(), req.TimeRange)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
