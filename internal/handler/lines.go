package handler

import (
	"net/http"

	"gomvg/internal/templates"
)

// Lines serves the network line directory.
func (h *Handler) Lines(w http.ResponseWriter, r *http.Request) {
	data := templates.LinesData{Title: "Lines"}

	lines, err := h.mvg.Lines(r.Context())
	if err != nil {
		h.logger.Warn("lines lookup failed", "error", err)
		data.Error = friendlyError(err)
		h.render(w, r, templates.LinesPage(data))
		return
	}

	for _, l := range lines {
		data.Lines = append(data.Lines, templates.LineView{
			Name:    str(l.Name),
			Product: transportName(str(l.Product)),
		})
	}
	h.render(w, r, templates.LinesPage(data))
}
