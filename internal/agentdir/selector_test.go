package agentdir

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectWorkflowAgent(t *testing.T) {
	sel := NewSelector(Catalog("wf_deploy"), SelectorConfig{Endpoint: "/api/chatkit/session"})

	b, err := sel.Select(AgentChatGPT)
	require.NoError(t, err)
	assert.False(t, b.Webhook)
	require.NotNil(t, b.Fetcher)
	assert.Equal(t, AgentChatGPT, b.Agent.ID)
}

func TestSelectWebhookAgentBypassesBroker(t *testing.T) {
	sel := NewSelector(Catalog("wf_deploy"), SelectorConfig{Endpoint: "/api/chatkit/session"})

	b, err := sel.Select(AgentCustom)
	require.NoError(t, err)
	assert.True(t, b.Webhook)
	assert.Nil(t, b.Fetcher)
}

func TestSelectUnknownAgent(t *testing.T) {
	sel := NewSelector(Catalog("wf"), SelectorConfig{})

	_, err := sel.Select("missing")
	assert.ErrorIs(t, err, ErrUnknownAgent)
}

func TestSelectWorkflowAgentWithoutWorkflowID(t *testing.T) {
	// Misconfigured deployment: workflow agent with no workflow. Selection
	// must fail instead of silently falling back to a different workflow.
	agents := []Definition{{ID: "broken", Kind: KindWorkflow, Name: "Broken"}}
	sel := NewSelector(agents, SelectorConfig{Endpoint: "/api/chatkit/session"})

	_, err := sel.Select("broken")
	assert.ErrorIs(t, err, ErrNoWorkflow)
}

func TestSelectEnforcesAllowList(t *testing.T) {
	agents := []Definition{{
		ID:           "restricted",
		Kind:         KindWorkflow,
		Name:         "Restricted",
		WorkflowID:   "wf_private",
		AllowedUsers: []string{"a@x.org"},
	}}

	allowed := NewSelector(agents, SelectorConfig{Endpoint: "/s", UserEmail: "a@x.org"})
	b, err := allowed.Select("restricted")
	require.NoError(t, err)
	assert.NotNil(t, b.Fetcher)

	denied := NewSelector(agents, SelectorConfig{Endpoint: "/s", UserEmail: "b@x.org"})
	_, err = denied.Select("restricted")
	assert.ErrorIs(t, err, ErrNotAllowed)

	anonymous := NewSelector(agents, SelectorConfig{Endpoint: "/s"})
	_, err = anonymous.Select("restricted")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestSelectBuildsFreshFetcherEachTime(t *testing.T) {
	sel := NewSelector(Catalog("wf_deploy"), SelectorConfig{Endpoint: "/s"})

	b1, err := sel.Select(AgentChatGPT)
	require.NoError(t, err)
	b2, err := sel.Select(AgentChatGPT)
	require.NoError(t, err)

	// Bindings are independent values; discarding one cannot affect the
	// other, so switching agents never reuses a previous binding.
	assert.NotSame(t, b1, b2)
	assert.NotNil(t, b1.Fetcher)
	assert.NotNil(t, b2.Fetcher)
}

func TestSelectedFetcherCarriesAgentBinding(t *testing.T) {
	var gotBody map[string]any
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		io.WriteString(w, `{"client_secret":"cs_bound"}`)
	}))
	defer ts.Close()

	sel := NewSelector(Catalog("wf_deploy"), SelectorConfig{
		Endpoint: ts.URL,
		APIKey:   "sk-user",
	})

	b, err := sel.Select(AgentChatGPT)
	require.NoError(t, err)

	secret, err := b.Fetcher(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "cs_bound", secret)
	assert.Equal(t, "sk-user", gotKey)
	assert.Equal(t, map[string]any{"id": "wf_deploy"}, gotBody["workflow"])
	assert.Equal(t,
		map[string]any{"file_upload": map[string]any{"enabled": true}},
		gotBody["chatkit_configuration"])
}
