package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fbr-group/aulachat/internal/config"
	"github.com/fbr-group/aulachat/internal/session"
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Work with ChatKit client-secret sessions",
	}

	cmd.AddCommand(newSessionMintCmd())
	return cmd
}

func newSessionMintCmd() *cobra.Command {
	var (
		workflowID string
		apiKey     string
		endpoint   string
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Request a client secret from a running broker and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				cfg = config.Defaults()
			}

			if workflowID == "" {
				workflowID = cfg.Workflow.DefaultID
			}
			if endpoint == "" {
				endpoint = fmt.Sprintf("http://127.0.0.1:%d/api/chatkit/session", cfg.Server.Port)
			}

			opts := []session.FetcherOption{}
			if apiKey != "" {
				opts = append(opts, session.WithAPIKey(apiKey))
			}
			fetch := session.NewFetcher(workflowID, endpoint, opts...)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			secret, err := fetch(ctx, "")
			if err != nil {
				return err
			}

			fmt.Println(secret)
			return nil
		},
	}

	cmd.Flags().StringVar(&workflowID, "workflow", "", "workflow id (default from config)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key sent as X-API-Key")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "broker session endpoint URL")

	return cmd
}
