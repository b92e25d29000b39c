package handler

import (
	"net/http"

	"gomvg/internal/templates"
)

// Home serves the start page with the pinned stations.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	favorites, err := h.db.Favorites(r.Context())
	if err != nil {
		h.logger.Error("listing favorites", "error", err)
	}

	data := templates.HomeData{Title: "Home"}
	for _, f := range favorites {
		lat, lon := f.Lat, f.Lon
		data.Favorites = append(data.Favorites, templates.StationView{
			Name:     f.Name,
			GlobalID: f.GlobalID,
			URL:      stationURL(f.GlobalID, f.Name, &lat, &lon),
		})
	}

	h.render(w, r, templates.HomePage(data))
}
