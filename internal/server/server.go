package server

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"gomvg/internal/config"
	"gomvg/internal/handler"
	"gomvg/internal/mvg"
	"gomvg/internal/storage"
	"gomvg/internal/ticker"
	"gomvg/web"
)

// Server is the HTTP server for the departures board.
type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a new Server with all routes registered.
func New(cfg *config.Config, db *storage.DB, client *mvg.Client, tk *ticker.Store, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	h := handler.New(db, client, tk, cfg, logger)

	// Static files — served from embedded FS, versioned URLs get immutable caching
	staticFS, _ := fs.Sub(web.StaticFiles, "static")
	fileServer := http.FileServer(http.FS(staticFS))
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticCacheHandler(fileServer)))

	// Pages
	mux.HandleFunc("GET /", h.Home)
	mux.HandleFunc("GET /search", h.Search)
	mux.HandleFunc("GET /nearby", h.Nearby)
	mux.HandleFunc("GET /stations/{id}", h.Station)
	mux.HandleFunc("GET /lines", h.Lines)

	// Favorites
	mux.HandleFunc("POST /favorites", h.AddFavorite)
	mux.HandleFunc("POST /favorites/remove", h.RemoveFavorite)

	// SSE
	mux.HandleFunc("GET /sse/departures/{id}", h.SSEDepartures)

	return &Server{mux: mux, cfg: cfg, logger: logger}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("server starting", "addr", addr)
	return http.ListenAndServe(addr, withMiddleware(s.mux, s.logger))
}
