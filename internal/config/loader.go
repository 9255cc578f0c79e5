package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults plus env overrides only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	cfg.Upstream.APIKey = expandEnvVars(cfg.Upstream.APIKey)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8787
	}
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = "loopback"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Upstream.APIBase == "" {
		cfg.Upstream.APIBase = DefaultAPIBase
	}
	if cfg.Workflow.DefaultID == "" {
		cfg.Workflow.DefaultID = DefaultWorkflowID
	}
	if cfg.Webhook.URL == "" {
		cfg.Webhook.URL = DefaultWebhookURL
	}
	if cfg.Auth.GoogleClientID == "" {
		cfg.Auth.GoogleClientID = DefaultGoogleClientID
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// applyEnvOverrides reads deployment environment variables and overrides
// config values. The OPENAI_API_KEY / CHATKIT_WORKFLOW_ID names match what
// the hosting environment already provisions.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Upstream.APIKey = v
	}
	if v := resolveWorkflowEnv(); v != "" {
		cfg.Workflow.DefaultID = v
	}
	if v := os.Getenv("N8N_WEBHOOK_URL"); v != "" {
		cfg.Webhook.URL = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.Auth.GoogleClientID = v
	}
	if v := os.Getenv("AULACHAT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("AULACHAT_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("AULACHAT_STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}
	if v := os.Getenv("AULACHAT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

// resolveWorkflowEnv checks the workflow env vars in preference order and
// rejects placeholder ids left over from template deployments.
func resolveWorkflowEnv() string {
	for _, name := range []string{"CHATKIT_WORKFLOW_ID", "VITE_CHATKIT_WORKFLOW_ID"} {
		v := strings.TrimSpace(os.Getenv(name))
		if v != "" && !strings.HasPrefix(v, "wf_replace") {
			return v
		}
	}
	return ""
}
