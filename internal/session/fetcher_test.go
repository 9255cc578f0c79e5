package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherReturnsFreshSecret(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		io.WriteString(w, `{"client_secret":"cs_fresh"}`)
	}))
	defer ts.Close()

	fetch := NewFetcher("wf_test", ts.URL)
	secret, err := fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "cs_fresh", secret)
	assert.Equal(t, map[string]any{"id": "wf_test"}, gotBody["workflow"])
	assert.NotContains(t, gotBody, "chatkit_configuration")
}

// Regression guard: handing the fetcher a previous secret must still hit
// the broker. Returning the stale value put the widget into an endless
// refresh loop in an earlier revision.
func TestFetcherNeverShortCircuitsOnCurrentSecret(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, `{"client_secret":"cs_new"}`)
	}))
	defer ts.Close()

	fetch := NewFetcher("wf_test", ts.URL)
	secret, err := fetch(context.Background(), "cs_stale")
	require.NoError(t, err)
	assert.Equal(t, "cs_new", secret, "stale secret must be replaced, not echoed")
	assert.Equal(t, int32(1), calls.Load(), "a network call must happen")
}

func TestFetcherSendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		io.WriteString(w, `{"client_secret":"cs"}`)
	}))
	defer ts.Close()

	fetch := NewFetcher("wf", ts.URL, WithAPIKey("sk-user"))
	_, err := fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "sk-user", gotKey)
}

func TestFetcherOmitsAPIKeyHeaderWhenUnset(t *testing.T) {
	var hasKey bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasKey = r.Header[http.CanonicalHeaderKey("X-API-Key")]
		io.WriteString(w, `{"client_secret":"cs"}`)
	}))
	defer ts.Close()

	fetch := NewFetcher("wf", ts.URL)
	_, err := fetch(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, hasKey)
}

func TestFetcherForwardsConfiguration(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		io.WriteString(w, `{"client_secret":"cs"}`)
	}))
	defer ts.Close()

	fetch := NewFetcher("wf", ts.URL,
		WithConfiguration(json.RawMessage(`{"file_upload":{"enabled":true}}`)))
	_, err := fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t,
		map[string]any{"file_upload": map[string]any{"enabled": true}},
		gotBody["chatkit_configuration"])
}

func TestFetcherPropagatesBrokerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"API Key no configurada"}`)
	}))
	defer ts.Close()

	fetch := NewFetcher("wf", ts.URL)
	_, err := fetch(context.Background(), "")
	require.Error(t, err)
	assert.EqualError(t, err, "API Key no configurada")
}

func TestFetcherErrorWithoutMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	fetch := NewFetcher("wf", ts.URL)
	_, err := fetch(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetcherMissingSecretInSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer ts.Close()

	fetch := NewFetcher("wf", ts.URL)
	_, err := fetch(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing client secret")
}

func TestFetcherTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	fetch := NewFetcher("wf", ts.URL)
	_, err := fetch(context.Background(), "")
	assert.Error(t, err)
}
