package broker

import (
	"net/http"
	"os"
	"path/filepath"
)

// staticHandler serves the built front-end from the configured directory.
// Requests for files that don't exist fall back to index.html so the SPA
// router owns unknown paths. With no directory configured the broker runs
// API-only and unknown routes get a JSON 404.
func (s *Server) staticHandler() http.Handler {
	dir := s.cfg.Server.StaticDir
	if dir == "" {
		return http.HandlerFunc(handleNotFound)
	}

	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}
