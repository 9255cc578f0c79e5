package config

// Config is the root configuration for aulachat.
type Config struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Upstream UpstreamConfig `yaml:"upstream,omitempty"`
	Workflow WorkflowConfig `yaml:"workflow,omitempty"`
	Webhook  WebhookConfig  `yaml:"webhook,omitempty"`
	Auth     AuthConfig     `yaml:"auth,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// ServerConfig controls the session broker HTTP server.
type ServerConfig struct {
	Port           int       `yaml:"port,omitempty"`
	Bind           string    `yaml:"bind,omitempty"` // "loopback" | "lan" | "auto" | "custom"
	CustomBindHost string    `yaml:"customBindHost,omitempty"`
	StaticDir      string    `yaml:"staticDir,omitempty"`      // directory of built front-end assets; empty disables static serving
	AllowedOrigins []string  `yaml:"allowedOrigins,omitempty"` // CORS origins for the session route
	TLS            ServerTLS `yaml:"tls,omitempty"`
}

// ServerTLS configures TLS for the broker.
type ServerTLS struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	CertPath string `yaml:"certPath,omitempty"`
	KeyPath  string `yaml:"keyPath,omitempty"`
}

// UpstreamConfig points at the ChatKit sessions API.
type UpstreamConfig struct {
	APIBase string `yaml:"apiBase,omitempty"`
	// APIKey is the deployment's default key, used when a request carries no
	// X-API-Key header. May reference an env var as ${OPENAI_API_KEY}.
	APIKey string `yaml:"apiKey,omitempty"`
}

// WorkflowConfig holds the default ChatKit workflow.
type WorkflowConfig struct {
	DefaultID string `yaml:"defaultId,omitempty"`
}

// WebhookConfig points at the external webhook agent.
type WebhookConfig struct {
	URL string `yaml:"url,omitempty"`
}

// AuthConfig configures the Google sign-in collaborator.
type AuthConfig struct {
	GoogleClientID string `yaml:"googleClientId,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
}
