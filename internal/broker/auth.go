package broker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fbr-group/aulachat/internal/auth"
)

const msgSignInNotConfigured = "sign-in is not configured"

// credentialVerifier is the slice of the auth verifier the broker needs.
type credentialVerifier interface {
	Verify(ctx context.Context, credential string) (*auth.User, error)
}

type verifyRequest struct {
	Credential string `json:"credential"`
}

// handleVerifyCredential checks a Google sign-in credential server side and
// returns the signed-in user. The front-end calls this after the Google
// button callback so the allow-list is enforced somewhere the user cannot
// edit.
func (s *Server) handleVerifyCredential(w http.ResponseWriter, r *http.Request) {
	if s.verifier == nil {
		writeError(w, http.StatusServiceUnavailable, msgSignInNotConfigured, nil)
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Credential == "" {
		writeError(w, http.StatusBadRequest, "Missing credential", nil)
		return
	}

	user, err := s.verifier.Verify(r.Context(), req.Credential)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, auth.ErrDomainNotAllowed) {
			status = http.StatusForbidden
		}
		s.log.Warn().Err(err).Msg("credential rejected")
		writeError(w, status, err.Error(), nil)
		return
	}

	s.log.Info().Str("email", user.Email).Msg("user signed in")
	writeJSON(w, http.StatusOK, user, nil)
}
