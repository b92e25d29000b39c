package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"gomvg/internal/config"
	"gomvg/internal/mvg"
	"gomvg/internal/storage"
	"gomvg/internal/ticker"

	"github.com/a-h/templ"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	db     *storage.DB
	mvg    *mvg.Client
	ticker *ticker.Store
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler.
func New(db *storage.DB, client *mvg.Client, tk *ticker.Store, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{db: db, mvg: client, ticker: tk, cfg: cfg, logger: logger}
}

// render writes a full HTML page, logging render failures.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("rendering page", "path", r.URL.Path, "error", err)
	}
}

// friendlyError turns an API client error into a message fit for a page.
func friendlyError(err error) string {
	var te *mvg.TransportError
	var de *mvg.DecodeError
	switch {
	case errors.As(err, &te):
		if te.Status >= 400 {
			return fmt.Sprintf("The MVG API answered with HTTP %d. Try again in a moment.", te.Status)
		}
		return "Could not reach the MVG API. Check your connection and try again."
	case errors.As(err, &de):
		return "The MVG API returned an answer this app could not read."
	default:
		return "Something went wrong talking to the MVG API."
	}
}

// str dereferences an optional string from the API.
func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// stationURL builds the link to a station page, carrying name and
// coordinates along so the page doesn't need a directory lookup.
func stationURL(globalID, name string, lat, lon *float64) string {
	s := "/stations/" + url.PathEscape(globalID)
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if lat != nil && lon != nil {
		q.Set("lat", strconv.FormatFloat(*lat, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(*lon, 'f', -1, 64))
	}
	if len(q) > 0 {
		s += "?" + q.Encode()
	}
	return s
}

// transportName maps an API transport type to a display name.
func transportName(t string) string {
	switch t {
	case "UBAHN":
		return "U-Bahn"
	case "SBAHN":
		return "S-Bahn"
	case "TRAM":
		return "Tram"
	case "BUS", "REGIONAL_BUS":
		return "Bus"
	case "BAHN":
		return "Bahn"
	case "SCHIFF":
		return "Schiff"
	default:
		return t
	}
}
