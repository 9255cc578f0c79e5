// Package agentdir holds the static directory of conversational agents a
// signed-in user can talk to, and the selector that turns a choice into a
// correctly bound credential fetcher for the chat widget.
package agentdir

import "encoding/json"

// ID identifies an agent in the catalog.
type ID string

const (
	// AgentChatGPT is the hosted chat-workflow agent, routed through the
	// session broker.
	AgentChatGPT ID = "chatgpt"
	// AgentCustom is the n8n webhook agent; its messages bypass the broker
	// entirely.
	AgentCustom ID = "custom"
)

// Kind distinguishes how an agent's conversation is transported.
type Kind string

const (
	// KindWorkflow agents need an ephemeral client secret from the broker.
	KindWorkflow Kind = "workflow"
	// KindWebhook agents post each message straight to an external webhook.
	KindWebhook Kind = "webhook"
)

// Definition is a static, immutable agent entry. Created once at startup,
// never mutated.
type Definition struct {
	ID          ID
	Kind        Kind
	Name        string
	Description string
	Icon        string

	// WorkflowID is required for workflow agents and absent for webhook
	// agents.
	WorkflowID string

	// Capabilities is forwarded verbatim to the session-creation call as
	// chatkit_configuration. May be nil.
	Capabilities json.RawMessage

	// AllowedUsers restricts the agent to these identities (email
	// addresses) when non-empty. Empty means unrestricted, subject to the
	// global sign-in domain allow-list.
	AllowedUsers []string
}

// Catalog returns the static agent table. The workflow agent is bound to
// the deployment's configured workflow id.
func Catalog(workflowID string) []Definition {
	return []Definition{
		{
			ID:           AgentChatGPT,
			Kind:         KindWorkflow,
			Name:         "ChatGPT (Workflow)",
			Description:  "Usa el workflow configurado en ChatKit.",
			Icon:         "🤖",
			WorkflowID:   workflowID,
			Capabilities: json.RawMessage(`{"file_upload":{"enabled":true}}`),
		},
		{
			ID:          AgentCustom,
			Kind:        KindWebhook,
			Name:        "Agente n8n",
			Description: "Conecta contra el webhook n8n personalizado.",
			Icon:        "🛠️",
		},
	}
}

// Lookup finds an agent definition by id.
func Lookup(agents []Definition, id ID) (Definition, bool) {
	for _, a := range agents {
		if a.ID == id {
			return a, true
		}
	}
	return Definition{}, false
}
