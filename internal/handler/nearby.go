package handler

import (
	"net/http"
	"strconv"

	"gomvg/internal/geo"
	"gomvg/internal/templates"
)

// Nearby serves the nearby-stations page. The coordinates come from the
// browser's geolocation via query parameters.
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	data := templates.NearbyData{
		Title: "Nearby",
		Lat:   latStr,
		Lon:   lonStr,
	}

	if latStr == "" || lonStr == "" {
		data.Error = "No position yet. Allow location access on the home page and try again."
		h.render(w, r, templates.NearbyPage(data))
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		data.Error = "Those coordinates don't look right."
		h.render(w, r, templates.NearbyPage(data))
		return
	}

	locations, err := h.mvg.NearbyLocations(r.Context(), lat, lon)
	if err != nil {
		h.logger.Warn("nearby lookup failed", "lat", lat, "lon", lon, "error", err)
		data.Error = friendlyError(err)
		h.render(w, r, templates.NearbyPage(data))
		return
	}

	for _, l := range locations {
		v := locationView(l)
		// The nearby endpoint usually reports the distance itself; fill
		// it in from the coordinates when it doesn't.
		if v.Distance == "" && l.Latitude != nil && l.Longitude != nil {
			v.Distance = geo.FormatDistance(geo.Haversine(lat, lon, *l.Latitude, *l.Longitude))
		}
		data.Results = append(data.Results, v)
	}
	h.render(w, r, templates.NearbyPage(data))
}
