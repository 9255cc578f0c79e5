// Package chatkit is a minimal HTTP client for the ChatKit sessions API.
//
// It covers exactly what the session broker needs: creating a chat session
// and getting back the ephemeral client secret the embedded widget consumes.
// Upstream failures are normalized into *APIError before anything else sees
// them, since the upstream error envelope is loosely typed (a bare string or
// a nested object).
package chatkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// betaHeader identifies the ChatKit protocol version.
	betaHeader = "chatkit_beta=v1"

	sessionsPath = "/v1/chatkit/sessions"
)

// ErrMissingClientSecret is returned when the upstream call succeeds but the
// payload carries no client secret.
var ErrMissingClientSecret = errors.New("missing client secret in upstream response")

// APIError is a non-success status reported by the ChatKit API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chatkit api error (%d): %s", e.StatusCode, e.Message)
}

// Client is a direct HTTP client for the ChatKit sessions API.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a ChatKit client. An empty baseURL defaults to the public API.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SessionRequest describes one session-creation call.
type SessionRequest struct {
	// WorkflowID selects the upstream workflow. Required.
	WorkflowID string
	// User is the pseudonymous identity correlating consecutive sessions.
	User string
	// Configuration is an opaque capability object forwarded verbatim
	// as chatkit_configuration. May be nil.
	Configuration json.RawMessage
}

// Session is the normalized success payload.
type Session struct {
	ClientSecret string `json:"client_secret"`
	ExpiresAfter int64  `json:"expires_after,omitempty"`
}

type sessionWireBody struct {
	Workflow struct {
		ID string `json:"id"`
	} `json:"workflow"`
	User          string          `json:"user"`
	Configuration json.RawMessage `json:"chatkit_configuration,omitempty"`
}

// CreateSession exchanges a workflow id and user identity for an ephemeral
// client secret. Non-2xx responses come back as *APIError; a 2xx response
// without a secret is ErrMissingClientSecret; transport failures are
// returned wrapped.
func (c *Client) CreateSession(ctx context.Context, apiKey string, req SessionRequest) (*Session, error) {
	var body sessionWireBody
	body.Workflow.ID = req.WorkflowID
	body.User = req.User
	body.Configuration = req.Configuration

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sessionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("OpenAI-Beta", betaHeader)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(respBody),
		}
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, ErrMissingClientSecret
	}
	if session.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}
	return &session, nil
}

// extractErrorMessage pulls a human-readable message out of the upstream
// error envelope. The error field may be a nested object with a message,
// a bare string, or absent entirely.
func extractErrorMessage(body []byte) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Error != "" {
		return flat.Error
	}

	return "Failed to create session"
}
