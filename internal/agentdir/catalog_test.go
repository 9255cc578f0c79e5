package agentdir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	agents := Catalog("wf_deploy")
	require.Len(t, agents, 2)

	chatgpt, ok := Lookup(agents, AgentChatGPT)
	require.True(t, ok)
	assert.Equal(t, KindWorkflow, chatgpt.Kind)
	assert.Equal(t, "wf_deploy", chatgpt.WorkflowID)
	assert.NotEmpty(t, chatgpt.Name)
	assert.NotEmpty(t, chatgpt.Description)
	assert.NotEmpty(t, chatgpt.Icon)
	assert.JSONEq(t, `{"file_upload":{"enabled":true}}`, string(chatgpt.Capabilities))
	assert.Empty(t, chatgpt.AllowedUsers, "catalog agents are unrestricted by default")

	custom, ok := Lookup(agents, AgentCustom)
	require.True(t, ok)
	assert.Equal(t, KindWebhook, custom.Kind)
	assert.Empty(t, custom.WorkflowID, "webhook agent bypasses the broker")
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup(Catalog("wf"), "nope")
	assert.False(t, ok)
}
