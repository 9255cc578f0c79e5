package agentdir

import (
	"errors"
	"fmt"
	"slices"

	"github.com/fbr-group/aulachat/internal/session"
)

var (
	// ErrUnknownAgent means the requested id is not in the catalog.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrNotAllowed means the agent's allow-list excludes the current user.
	ErrNotAllowed = errors.New("agent not available for this user")
	// ErrNoWorkflow means a workflow agent has no workflow id configured.
	// Selection must fail visibly rather than fall back to another workflow.
	ErrNoWorkflow = errors.New("agent has no workflow id configured")
)

// SelectorConfig carries everything a Selector needs to bind fetchers.
type SelectorConfig struct {
	// Endpoint is the broker's session route.
	Endpoint string
	// APIKey is an optional caller-supplied key forwarded per request.
	APIKey string
	// UserEmail is the signed-in identity checked against agent
	// allow-lists. May be empty when no user is signed in.
	UserEmail string
}

// Selector resolves agent choices into bindings. It holds no mutable
// selection state: every Select produces an independent Binding and a
// freshly constructed fetcher, so switching agents can never leak a stale
// credential from the previous one.
type Selector struct {
	agents []Definition
	cfg    SelectorConfig
}

// NewSelector creates a selector over the given catalog.
func NewSelector(agents []Definition, cfg SelectorConfig) *Selector {
	return &Selector{agents: agents, cfg: cfg}
}

// Binding is the result of selecting an agent: either a bound secret
// fetcher for the chat widget, or a marker that the agent talks to the
// external webhook directly.
type Binding struct {
	Agent   Definition
	Fetcher session.FetcherFunc // nil when Webhook is true
	Webhook bool
}

// Select checks access and returns a fresh binding for the agent.
func (s *Selector) Select(id ID) (*Binding, error) {
	def, ok := Lookup(s.agents, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
	}

	if len(def.AllowedUsers) > 0 && !slices.Contains(def.AllowedUsers, s.cfg.UserEmail) {
		return nil, fmt.Errorf("%w: %s", ErrNotAllowed, def.ID)
	}

	if def.Kind == KindWebhook {
		return &Binding{Agent: def, Webhook: true}, nil
	}

	if def.WorkflowID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoWorkflow, def.ID)
	}

	opts := []session.FetcherOption{}
	if s.cfg.APIKey != "" {
		opts = append(opts, session.WithAPIKey(s.cfg.APIKey))
	}
	if def.Capabilities != nil {
		opts = append(opts, session.WithConfiguration(def.Capabilities))
	}

	return &Binding{
		Agent:   def,
		Fetcher: session.NewFetcher(def.WorkflowID, s.cfg.Endpoint, opts...),
	}, nil
}
