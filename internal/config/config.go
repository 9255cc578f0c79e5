package config

import "fmt"

// Deployment fallbacks. Each environment value in the loader has one of
// these behind it; the upstream API key is the only setting without a
// fallback, and its absence surfaces as the broker's 401.
const (
	// DefaultWorkflowID is the institutional ChatKit workflow used when no
	// workflow is configured or supplied per request.
	DefaultWorkflowID = "wf_696633c3eb508190b76d628393caed260d34f6b352dec799"

	// DefaultWebhookURL is the production n8n chat webhook.
	DefaultWebhookURL = "https://n8n.mkt.fbr.group/webhook/aee36feb-ba13-4a0e-bb62-798d554f833f/chat"

	// DefaultGoogleClientID identifies the institutional sign-in app.
	DefaultGoogleClientID = "519816706964-anh0ri4i0f5hod28i244knlfeab8konn.apps.googleusercontent.com"

	// DefaultAPIBase is the ChatKit API host.
	DefaultAPIBase = "https://api.openai.com"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:           8787,
			Bind:           "loopback",
			AllowedOrigins: []string{"*"},
		},
		Upstream: UpstreamConfig{
			APIBase: DefaultAPIBase,
		},
		Workflow: WorkflowConfig{
			DefaultID: DefaultWorkflowID,
		},
		Webhook: WebhookConfig{
			URL: DefaultWebhookURL,
		},
		Auth: AuthConfig{
			GoogleClientID: DefaultGoogleClientID,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
