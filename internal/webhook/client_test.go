package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendPostsMessage(t *testing.T) {
	var got map[string]string
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"hola"}`))
	})

	reply, err := New(srv.URL).Send(context.Background(), "buenos días")
	require.NoError(t, err)
	assert.Equal(t, "hola", reply)
	assert.Equal(t, "buenos días", got["text"])
}

func TestSendNormalizesReplies(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{
			name:        "object with text",
			contentType: "application/json",
			body:        `{"text":"respuesta"}`,
			want:        "respuesta",
		},
		{
			name:        "object falls back to message",
			contentType: "application/json",
			body:        `{"message":"desde message"}`,
			want:        "desde message",
		},
		{
			name:        "object falls back to content",
			contentType: "application/json",
			body:        `{"content":"desde content"}`,
			want:        "desde content",
		},
		{
			name:        "text wins over message",
			contentType: "application/json",
			body:        `{"message":"no","text":"sí"}`,
			want:        "sí",
		},
		{
			name:        "array joins elements",
			contentType: "application/json",
			body:        `[{"text":"uno"},{"message":"dos"},{"other":"x"}]`,
			want:        "uno\ndos",
		},
		{
			name:        "plain text passes through",
			contentType: "text/plain",
			body:        "texto plano",
			want:        "texto plano",
		},
		{
			name:        "json content type with charset",
			contentType: "application/json; charset=utf-8",
			body:        `{"text":"con charset"}`,
			want:        "con charset",
		},
		{
			name:        "invalid json passes through raw",
			contentType: "application/json",
			body:        "not json at all",
			want:        "not json at all",
		},
		{
			name:        "empty object becomes no-reply fallback",
			contentType: "application/json",
			body:        `{}`,
			want:        msgNoReply,
		},
		{
			name:        "blank body becomes no-reply fallback",
			contentType: "text/plain",
			body:        "   ",
			want:        msgNoReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.Write([]byte(tt.body))
			})

			reply, err := New(srv.URL).Send(context.Background(), "hola")
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestSendHTTPError(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow not active", http.StatusInternalServerError)
	})

	_, err := New(srv.URL).Send(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "workflow not active")
}

func TestSendTransportError(t *testing.T) {
	_, err := New("http://127.0.0.1:1").Send(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook request failed")
}

func TestSendFriendlySwallowsFailures(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	reply := New(srv.URL).SendFriendly(context.Background(), "hola")
	assert.Equal(t, msgFailed, reply)

	reply = New("http://127.0.0.1:1").SendFriendly(context.Background(), "hola")
	assert.Equal(t, msgFailed, reply)
}

func TestSendFriendlyPassesReplyThrough(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"todo bien"}`))
	})

	reply := New(srv.URL).SendFriendly(context.Background(), "hola")
	assert.Equal(t, "todo bien", reply)
}
