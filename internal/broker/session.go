package broker

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fbr-group/aulachat/internal/chatkit"
)

const (
	// apiKeyHeader lets the UI supply its own key, overriding the
	// deployment default.
	apiKeyHeader = "X-API-Key"

	maxBodyBytes = 64 * 1024

	msgMissingAPIKey       = "API Key no configurada. Haz clic en el icono de llave 🔑 arriba para añadirla."
	msgMissingWorkflow     = "Missing workflow id"
	msgMissingClientSecret = "Missing client secret in response"
)

// createSessionRequest is the lenient browser-facing request body. The
// workflow may arrive nested or flat; both are accepted.
type createSessionRequest struct {
	Workflow *struct {
		ID string `json:"id"`
	} `json:"workflow"`
	WorkflowID    string          `json:"workflowId"`
	Configuration json.RawMessage `json:"chatkit_configuration"`
}

// handleCreateSession authenticates the request, resolves the workflow and
// user identity, relays to the ChatKit sessions API, and translates the
// result into the normalized JSON contract. Every failure mode ends in a
// structured JSON body with a status code; nothing escapes unhandled.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	apiKey := r.Header.Get(apiKeyHeader)
	if apiKey == "" {
		apiKey = s.cfg.Upstream.APIKey
	}
	if apiKey == "" {
		writeError(w, http.StatusUnauthorized, msgMissingAPIKey, nil)
		return
	}

	// Lenient body parse: an absent or malformed body is an empty request.
	var body createSessionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		body = createSessionRequest{}
	}

	workflowID := s.resolveWorkflowID(body)
	if workflowID == "" {
		writeError(w, http.StatusBadRequest, msgMissingWorkflow, nil)
		return
	}

	userID, minted := resolveIdentity(r)
	var cookie *http.Cookie
	if minted {
		cookie = sessionCookie(userID)
	}

	session, err := s.upstream.CreateSession(r.Context(), apiKey, chatkit.SessionRequest{
		WorkflowID:    workflowID,
		User:          userID,
		Configuration: body.Configuration,
	})
	if err != nil {
		s.writeUpstreamError(w, r, workflowID, cookie, err)
		return
	}

	s.log.Info().
		Str("workflow", workflowID).
		Bool("newIdentity", minted).
		Msg("session created")

	writeJSON(w, http.StatusOK, session, cookie)
}

// resolveWorkflowID applies the workflow precedence rule: nested body id,
// then flat body id, then the configured default. The result is trimmed;
// empty means resolution failed.
func (s *Server) resolveWorkflowID(body createSessionRequest) string {
	var id string
	if body.Workflow != nil {
		id = body.Workflow.ID
	}
	if id == "" {
		id = body.WorkflowID
	}
	if id == "" {
		id = s.cfg.Workflow.DefaultID
	}
	return strings.TrimSpace(id)
}

// writeUpstreamError maps a normalized chatkit error onto the broker's
// wire contract. Upstream rejections keep their status; everything else
// is a 502.
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, workflowID string, cookie *http.Cookie, err error) {
	var apiErr *chatkit.APIError
	switch {
	case errors.Is(err, chatkit.ErrMissingClientSecret):
		s.log.Warn().Str("workflow", workflowID).Msg("upstream response missing client secret")
		writeError(w, http.StatusBadGateway, msgMissingClientSecret, cookie)
	case errors.As(err, &apiErr):
		s.log.Warn().
			Str("workflow", workflowID).
			Int("upstreamStatus", apiErr.StatusCode).
			Msg("upstream rejected session request")
		writeError(w, apiErr.StatusCode, apiErr.Message, cookie)
	default:
		s.log.Error().Err(err).Str("workflow", workflowID).Msg("failed to reach upstream API")
		writeError(w, http.StatusBadGateway, fmt.Sprintf("Failed to reach upstream API: %v", err), cookie)
	}
}
