// Package webhook talks to the external n8n chat agent. Each user message
// is a single JSON POST; the agent's reply shape varies (JSON object, JSON
// array, or plain text) and is normalized to one display string here.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

const (
	// Messages surfaced to the user, in the interface language.
	msgNoReply = "No recibí respuesta del agente n8n."
	msgFailed  = "No se pudo obtener respuesta del agente n8n."

	maxReplyBytes = 1 * 1024 * 1024
)

// Client posts chat messages to the webhook agent.
type Client struct {
	url    string
	client *http.Client
}

// New creates a webhook client for the given chat URL.
func New(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Send posts one message and returns the agent's reply as display text.
// A reply that normalizes to nothing becomes a fixed "no reply" string so
// the conversation view always has something to show.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read webhook reply: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = resp.Status
		}
		return "", fmt.Errorf("webhook error (%d): %s", resp.StatusCode, detail)
	}

	reply := normalizeReply(resp.Header.Get("Content-Type"), body)
	if strings.TrimSpace(reply) == "" {
		reply = msgNoReply
	}
	return reply, nil
}

// SendFriendly is Send with failures collapsed into the generic localized
// failure message, for surfaces that must never error out of the
// conversation view.
func (c *Client) SendFriendly(ctx context.Context, text string) string {
	reply, err := c.Send(ctx, text)
	if err != nil {
		return msgFailed
	}
	return reply
}

// normalizeReply reduces the agent's loosely shaped reply to display text.
func normalizeReply(contentType string, body []byte) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return string(body)
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return string(body)
	}

	switch v := data.(type) {
	case []any:
		var parts []string
		for _, item := range v {
			if s := textField(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	default:
		return textField(v)
	}
}

// textField pulls the first of text/message/content out of a JSON object.
func textField(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"text", "message", "content"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
