package handler

import (
	"net/http"
	"strconv"

	"gomvg/internal/storage"
)

// AddFavorite pins a station and returns to its page.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	globalID := r.FormValue("globalId")
	if globalID == "" {
		http.Error(w, "missing globalId", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	if name == "" {
		name = globalID
	}
	lat, _ := strconv.ParseFloat(r.FormValue("lat"), 64)
	lon, _ := strconv.ParseFloat(r.FormValue("lon"), 64)

	err := h.db.AddFavorite(r.Context(), storage.Favorite{
		GlobalID: globalID,
		Name:     name,
		Lat:      lat,
		Lon:      lon,
	})
	if err != nil {
		h.logger.Error("pinning station", "globalID", globalID, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, stationURL(globalID, name, &lat, &lon), http.StatusSeeOther)
}

// RemoveFavorite unpins a station and returns to the page the form was on.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	globalID := r.FormValue("globalId")
	if globalID == "" {
		http.Error(w, "missing globalId", http.StatusBadRequest)
		return
	}

	if err := h.db.RemoveFavorite(r.Context(), globalID); err != nil {
		h.logger.Error("unpinning station", "globalID", globalID, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
