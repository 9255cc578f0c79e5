package cli

import (
	"bufio"
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fbr-group/aulachat/internal/config"
	"github.com/fbr-group/aulachat/internal/webhook"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var webhookURL string

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the webhook agent from the terminal",
		Long:  "With a message argument, sends it and prints the reply. Without arguments, starts an interactive session (exit with Ctrl+D or /quit).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				cfg = config.Defaults()
			}
			if webhookURL == "" {
				webhookURL = cfg.Webhook.URL
			}
			if webhookURL == "" {
				return fmt.Errorf("no webhook URL configured")
			}

			client := webhook.New(webhookURL)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if len(args) > 0 {
				reply, err := client.Send(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Println(reply)
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			fmt.Fprint(out, "> ")
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "/quit" {
					break
				}
				if line != "" {
					fmt.Fprintln(out, client.SendFriendly(ctx, line))
				}
				if ctx.Err() != nil {
					break
				}
				fmt.Fprint(out, "> ")
			}
			fmt.Fprintln(out)
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&webhookURL, "url", "", "webhook agent URL (default from config)")

	return cmd
}
