package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gomvg/internal/mvg"
	"gomvg/internal/templates"
)

// Station serves the departures board for a single station.
func (h *Handler) Station(w http.ResponseWriter, r *http.Request) {
	globalID := r.PathValue("id")
	ctx := r.Context()
	now := time.Now()

	name := r.URL.Query().Get("name")
	if name == "" {
		name = globalID
	}

	data := templates.StationData{
		Title:    name,
		Name:     name,
		GlobalID: globalID,
		Lat:      r.URL.Query().Get("lat"),
		Lon:      r.URL.Query().Get("lon"),
	}

	favorite, err := h.db.IsFavorite(ctx, globalID)
	if err != nil {
		h.logger.Error("favorite lookup", "globalID", globalID, "error", err)
	}
	data.Favorite = favorite

	departures, err := h.mvg.Departures(ctx, globalID)
	if err != nil {
		h.logger.Warn("departures lookup failed", "globalID", globalID, "error", err)
		data.Error = friendlyError(err)
		h.render(w, r, templates.StationPage(data))
		return
	}

	labels := make(map[string]bool)
	for _, d := range departures {
		data.Departures = append(data.Departures, departureView(d, now))
		if d.Label != nil && *d.Label != "" {
			labels[*d.Label] = true
		}
	}

	var labelList []string
	for l := range labels {
		labelList = append(labelList, l)
	}
	for _, d := range h.ticker.ForLabels(labelList) {
		data.Disruptions = append(data.Disruptions, templates.DisruptionView{
			Title:       d.Title,
			Description: d.Description,
		})
	}

	h.render(w, r, templates.StationPage(data))
}

// departureView formats one departure for the board. The realtime
// estimate wins over the schedule when both are present.
func departureView(d mvg.Departure, now time.Time) templates.DepartureView {
	v := templates.DepartureView{
		Label:         str(d.Label),
		TransportType: transportName(d.TransportType),
		Destination:   str(d.Destination),
	}

	if d.Cancelled != nil && *d.Cancelled {
		v.Cancelled = true
	}
	if d.Platform != nil {
		v.Platform = strconv.Itoa(*d.Platform)
	}

	when := d.PlannedDepartureTime
	if d.RealtimeDepartureTime != nil {
		when = d.RealtimeDepartureTime
	}
	if when != nil {
		t := time.UnixMilli(*when).In(now.Location())
		v.Time = t.Format("15:04")
		if mins := int(t.Sub(now).Minutes()); mins <= 0 {
			v.Minutes = "now"
		} else {
			v.Minutes = fmt.Sprintf("in %d min", mins)
		}
	}

	if d.DelayInMinutes != nil && *d.DelayInMinutes > 0 {
		v.Delay = fmt.Sprintf("+%d", *d.DelayInMinutes)
	}
	return v
}
