package broker

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON body of every broker failure.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response, optionally attaching a session cookie.
// Cookies must be set before the status is written.
func writeJSON(w http.ResponseWriter, status int, payload any, cookie *http.Cookie) {
	w.Header().Set("Content-Type", "application/json")
	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError writes a structured error body with the given status.
func writeError(w http.ResponseWriter, status int, message string, cookie *http.Cookie) {
	writeJSON(w, status, errorResponse{Error: message}, cookie)
}

// handleHealth returns the broker liveness status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, nil)
}

// handleTest is a debug route confirming the broker — not a stale static
// deployment — is answering on this path.
func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "Broker is active",
		"version": s.version,
		"url":     r.URL.Path,
	}, nil)
}

// handleNotFound returns a JSON 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	}, nil)
}
