package analytics

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
)

var csvHeader = []string{
	"id", "link_id", "timestamp", "country", "city", "region", "device_type",
	"browser", "os", "referrer", "user_agent", "ip", "screen_width",
	"screen_height", "latitude", "longitude",
}

// WriteCSV writes events as CSV with a header row
func WriteCSV(w io.Writer, events []domain.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range events {
		record := []string{
			e.ID,
			e.LinkID,
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Country,
			e.Client.City,
			e.Client.Region,
			e.DeviceType,
			e.Client.Browser,
			e.Client.OS,
			e.Referrer,
			e.Client.UserAgent,
			e.Client.IP,
			formatInt(e.Client.ScreenWidth),
			formatInt(e.Client.ScreenHeight),
			formatCoord(e.Client.Latitude),
			formatCoord(e.Client.Longitude),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
