// Package session provides the client secret fetcher the chat widget uses
// to keep itself supplied with valid ephemeral credentials.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// FetcherFunc exchanges the widget's current secret (possibly empty) for a
// fresh one. The widget calls it on first mount and whenever its held
// secret is stale.
type FetcherFunc func(ctx context.Context, currentSecret string) (string, error)

type fetcherOptions struct {
	apiKey        string
	configuration json.RawMessage
	client        *http.Client
}

// FetcherOption configures a fetcher at construction time.
type FetcherOption func(*fetcherOptions)

// WithAPIKey attaches a caller-supplied key as the X-API-Key header.
func WithAPIKey(key string) FetcherOption {
	return func(o *fetcherOptions) {
		o.apiKey = key
	}
}

// WithConfiguration forwards an opaque capability object to the broker.
func WithConfiguration(cfg json.RawMessage) FetcherOption {
	return func(o *fetcherOptions) {
		o.configuration = cfg
	}
}

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(o *fetcherOptions) {
		o.client = c
	}
}

type fetchRequestBody struct {
	Workflow struct {
		ID string `json:"id"`
	} `json:"workflow"`
	Configuration json.RawMessage `json:"chatkit_configuration,omitempty"`
}

type fetchResponseBody struct {
	ClientSecret string `json:"client_secret"`
	Error        string `json:"error"`
}

// NewFetcher builds a fetcher bound to one workflow and one broker endpoint.
//
// The returned function never returns the passed-in secret: the widget hands
// its secret back precisely because it needs a replacement, so every call
// performs a fresh exchange with the broker. An earlier revision
// short-circuited on a non-empty current secret and locked the widget into
// an endless refresh loop.
func NewFetcher(workflowID, endpoint string, opts ...FetcherOption) FetcherFunc {
	o := fetcherOptions{
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(ctx context.Context, currentSecret string) (string, error) {
		_ = currentSecret // stale by definition; see above

		var body fetchRequestBody
		body.Workflow.ID = workflowID
		body.Configuration = o.configuration

		payload, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to marshal session request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("failed to create session request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if o.apiKey != "" {
			req.Header.Set("X-API-Key", o.apiKey)
		}

		resp, err := o.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("session request failed: %w", err)
		}
		defer resp.Body.Close()

		var result fetchResponseBody
		// Tolerate empty or malformed bodies; the status check below decides.
		_ = json.NewDecoder(resp.Body).Decode(&result)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			if result.Error != "" {
				return "", errors.New(result.Error)
			}
			return "", fmt.Errorf("failed to create session (status %d)", resp.StatusCode)
		}

		if result.ClientSecret == "" {
			return "", errors.New("missing client secret in response")
		}
		return result.ClientSecret, nil
	}
}
