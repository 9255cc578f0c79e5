package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fbr-group/aulachat/internal/config"
	"github.com/fbr-group/aulachat/internal/version"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show aulachat status and configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Aulachat %s (commit %s)\n\n", version.Version, version.Commit)

			// Show paths
			fmt.Printf("Config:  %s\n", paths.Config)
			fmt.Printf("Logs:    %s\n", paths.Logs)
			fmt.Printf("Static:  %s\n", paths.Static)
			fmt.Println()

			// Load config
			cfg, err := config.Load(paths.Config)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Println("Config:  not found (using defaults)")
					cfg = config.Defaults()
				} else {
					fmt.Printf("Config:  error loading: %v\n", err)
					return nil
				}
			}

			fmt.Printf("Server:   port=%d bind=%s tls=%v\n",
				cfg.Server.Port, cfg.Server.Bind, cfg.Server.TLS.Enabled)

			key := "not set"
			if cfg.Upstream.APIKey != "" {
				key = "configured"
			}
			fmt.Printf("Upstream: %s (api key %s)\n", cfg.Upstream.APIBase, key)
			fmt.Printf("Workflow: %s\n", cfg.Workflow.DefaultID)

			if cfg.Webhook.URL != "" {
				fmt.Printf("Webhook:  %s\n", cfg.Webhook.URL)
			} else {
				fmt.Println("Webhook:  (not configured)")
			}

			if cfg.Auth.GoogleClientID != "" {
				fmt.Printf("Auth:     google client id %s\n", cfg.Auth.GoogleClientID)
			} else {
				fmt.Println("Auth:     (not configured)")
			}

			// Probe the running broker, if any
			fmt.Printf("Broker:   %s\n", probeBroker(cmd.Context(), cfg.Server.Port))

			// Validation
			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}

	return cmd
}

// probeBroker checks whether a broker is answering on the local port.
func probeBroker(ctx context.Context, port int) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "not running"
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "not running"
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Status != "ok" {
		return fmt.Sprintf("unexpected reply on port %d", port)
	}
	return fmt.Sprintf("running on port %d", port)
}
