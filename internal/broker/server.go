// Package broker implements the aulachat session broker: an edge HTTP
// server that authenticates session-creation requests from the browser,
// resolves the target ChatKit workflow, establishes a pseudonymous cookie
// identity, and relays the request to the upstream sessions API.
//
// The broker is stateless. The only thing resembling state is the identity
// cookie, and the browser holds that.
package broker

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/fbr-group/aulachat/internal/auth"
	"github.com/fbr-group/aulachat/internal/chatkit"
	"github.com/fbr-group/aulachat/internal/config"
	"github.com/fbr-group/aulachat/internal/logging"
	"github.com/fbr-group/aulachat/internal/version"
)

// sessionCreator is the slice of the chatkit client the broker needs.
type sessionCreator interface {
	CreateSession(ctx context.Context, apiKey string, req chatkit.SessionRequest) (*chatkit.Session, error)
}

// Server is the aulachat session broker HTTP server.
type Server struct {
	cfg        config.Config
	log        *logging.Logger
	upstream   sessionCreator
	verifier   credentialVerifier
	version    string
	startedAt  time.Time
	httpServer *http.Server
}

// ServerOption configures the broker server.
type ServerOption func(*Server)

// WithUpstream replaces the ChatKit client, used by tests to point the
// broker at a mock sessions API.
func WithUpstream(u sessionCreator) ServerOption {
	return func(s *Server) {
		s.upstream = u
	}
}

// WithVerifier replaces the Google credential verifier.
func WithVerifier(v credentialVerifier) ServerOption {
	return func(s *Server) {
		s.verifier = v
	}
}

// New creates a new broker server.
func New(cfg config.Config, log *logging.Logger, opts ...ServerOption) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log.Sub("broker"),
		upstream: chatkit.New(cfg.Upstream.APIBase),
		version:  version.Version,
	}
	if cfg.Auth.GoogleClientID != "" {
		s.verifier = auth.NewVerifier(cfg.Auth.GoogleClientID)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.ServerConfig) string {
	switch cfg.Bind {
	case "loopback":
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	case "lan", "auto":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	case "custom":
		host := cfg.CustomBindHost
		if host == "" {
			host = "0.0.0.0"
		}
		return fmt.Sprintf("%s:%d", host, cfg.Port)
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// Handler returns the fully assembled HTTP handler, including the
// middleware chain. Exposed so tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerHTTPRoutes(mux)
	return withMiddleware(mux, s.log, s.cfg.Server.AllowedOrigins)
}

// Start begins listening for HTTP connections. It blocks until the context
// is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Server)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	if s.cfg.Server.TLS.Enabled {
		cert, err := tls.LoadX509KeyPair(s.cfg.Server.TLS.CertPath, s.cfg.Server.TLS.KeyPath)
		if err != nil {
			ln.Close()
			return fmt.Errorf("loading TLS certificate: %w", err)
		}
		tlsCfg := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		ln = tls.NewListener(ln, tlsCfg)
		s.log.Info().Msg("TLS enabled")
	} else if s.cfg.Server.Bind != "loopback" {
		s.log.Warn().Msg("TLS is not enabled — session cookies require HTTPS at the edge")
	}

	s.startedAt = time.Now()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("bind", s.cfg.Server.Bind).
		Bool("defaultKey", s.cfg.Upstream.APIKey != "").
		Str("staticDir", s.cfg.Server.StaticDir).
		Msg("session broker starting")

	// Shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down session broker")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}
