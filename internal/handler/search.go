package handler

import (
	"net/http"

	"gomvg/internal/geo"
	"gomvg/internal/mvg"
	"gomvg/internal/templates"
)

// Search serves the location search page.
// On GET with no query: shows the search form.
// On GET with q= parameter: queries the MVG location search and lists
// stations, addresses and POIs.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := templates.SearchData{
		Title: "Search",
		Query: query,
	}

	if query == "" {
		h.render(w, r, templates.SearchPage(data))
		return
	}
	data.Searched = true

	locations, err := h.mvg.Locations(r.Context(), query)
	if err != nil {
		h.logger.Warn("location search failed", "query", query, "error", err)
		data.Error = friendlyError(err)
		h.render(w, r, templates.SearchPage(data))
		return
	}

	for _, l := range locations {
		data.Results = append(data.Results, locationView(l))
	}
	h.render(w, r, templates.SearchPage(data))
}

// locationView formats one location result for the list views.
// Only stations get a link; addresses and POIs have no departures.
func locationView(l mvg.Location) templates.LocationView {
	v := templates.LocationView{
		Name:     str(l.Name),
		Place:    str(l.Place),
		Products: l.TransportTypes,
	}

	switch l.Type {
	case "STATION":
		v.Type = "Station"
	case "ADDRESS":
		v.Type = "Address"
	case "POI":
		v.Type = "POI"
	default:
		v.Type = l.Type
	}

	if l.Type == "STATION" && l.GlobalID != nil && *l.GlobalID != "" {
		v.URL = stationURL(*l.GlobalID, v.Name, l.Latitude, l.Longitude)
	}
	if l.DistanceInMeters != nil {
		v.Distance = geo.FormatDistance(float64(*l.DistanceInMeters))
	}
	return v
}
