package handler

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
)

// Geo headers set by the edge (Vercel, then Cloudflare)
var (
	countryHeaders = []string{"X-Vercel-IP-Country", "CF-IPCountry"}
	cityHeaders    = []string{"X-Vercel-IP-City"}
	regionHeaders  = []string{"X-Vercel-IP-Country-Region"}
)

// payloadFromRequest builds a click payload from what the request carries.
// Geolocation is taken from edge headers as-is, device type is a coarse
// User-Agent guess.
func payloadFromRequest(r *http.Request) domain.EventPayload {
	ua := r.UserAgent()
	city := firstHeader(r, cityHeaders)
	if decoded, err := url.QueryUnescape(city); err == nil {
		city = decoded
	}

	return domain.EventPayload{
		Country:    strings.ToUpper(firstHeader(r, countryHeaders)),
		DeviceType: deviceType(ua),
		Referrer:   r.Referer(),
		Client: domain.ClientInfo{
			IP:        clientIP(r),
			UserAgent: ua,
			City:      city,
			Region:    firstHeader(r, regionHeaders),
		},
	}
}

func firstHeader(r *http.Request, names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.Header.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

func deviceType(ua string) string {
	if ua == "" {
		return ""
	}
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"):
		return "tablet"
	case strings.Contains(ua, "mobi"), strings.Contains(ua, "iphone"), strings.Contains(ua, "android"):
		return "mobile"
	case strings.Contains(ua, "bot"), strings.Contains(ua, "spider"), strings.Contains(ua, "crawl"):
		return "bot"
	default:
		return "desktop"
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AdditionalData is what the tracking page collects in the browser. Non-empty
// fields override what was derived from the request.
type AdditionalData struct {
	Country      string   `json:"country,omitempty"`
	DeviceType   string   `json:"device_type,omitempty"`
	Referrer     string   `json:"referrer,omitempty"`
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

func (d AdditionalData) apply(p domain.EventPayload) domain.EventPayload {
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&p.Country, d.Country)
	override(&p.Referrer, d.Referrer)
	override(&p.Client.City, d.City)
	override(&p.Client.Region, d.Region)
	override(&p.Client.Browser, d.Browser)
	override(&p.Client.OS, d.OS)
	if d.UserAgent != "" {
		p.Client.UserAgent = d.UserAgent
		p.DeviceType = deviceType(d.UserAgent)
	}
	override(&p.DeviceType, d.DeviceType)

	if d.ScreenWidth > 0 {
		p.Client.ScreenWidth = d.ScreenWidth
	}
	if d.ScreenHeight > 0 {
		p.Client.ScreenHeight = d.ScreenHeight
	}
	if d.Latitude != nil {
		p.Client.Latitude = d.Latitude
	}
	if d.Longitude != nil {
		p.Client.Longitude = d.Longitude
	}
	return p
}
