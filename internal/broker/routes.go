package broker

import "net/http"

// registerHTTPRoutes sets up all HTTP routes on the server mux. The session
// route answers on both its historical names; everything unknown falls
// through to static assets.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chatkit/session", s.handleCreateSession)
	mux.HandleFunc("POST /api/create-session", s.handleCreateSession)
	mux.HandleFunc("POST /api/auth/verify", s.handleVerifyCredential)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/test", s.handleTest)

	mux.Handle("/", s.staticHandler())
}
