package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"gomvg/internal/templates"
)

// SSEDepartures streams board updates for a station via Server-Sent
// Events. The client listens for "departures" events and swaps the HTML.
func (h *Handler) SSEDepartures(w http.ResponseWriter, r *http.Request) {
	globalID := r.PathValue("id")
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	h.sendDepartureEvent(ctx, w, flusher, globalID)

	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.sendDepartureEvent(ctx, w, flusher, globalID)
		case <-ctx.Done():
			return
		}
	}
}

// sendDepartureEvent renders the board as HTML and sends it as one SSE event.
func (h *Handler) sendDepartureEvent(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, globalID string) {
	now := time.Now()

	departures, err := h.mvg.Departures(ctx, globalID)
	if err != nil {
		h.logger.Warn("SSE departures lookup failed", "globalID", globalID, "error", err)
		return // keep the last board on screen
	}

	views := make([]templates.DepartureView, 0, len(departures))
	for _, d := range departures {
		views = append(views, departureView(d, now))
	}

	var buf bytes.Buffer
	if err := templates.DepartureList(views).Render(ctx, &buf); err != nil {
		h.logger.Error("rendering SSE departure list", "error", err)
		return
	}

	// SSE format: event name, then data lines (each line prefixed with "data: ")
	fmt.Fprintf(w, "event: departures\n")
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprintf(w, "\n")
	flusher.Flush()
}
