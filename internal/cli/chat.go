package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "tahlil-bot/internal/errors"
)

func newChatCmd(app *App) *cobra.Command {
	var chatID string

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the AI assistant",
		Long: `Sends a message to the AI assistant, which may call analysis tools before
answering. With no argument, starts an interactive session.

Examples:
  tahlil chat "حلل لي البيتكوين على فريم الساعة"
  tahlil chat "should I buy ETH right now?"
  tahlil chat`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Assistant == nil {
				return apperrors.Wrap(apperrors.ErrNotConfigured, "assistant requires an OpenAI API key")
			}

			out := NewOutput(cmd, app.Config.UI.ColorEnabled)
			ctx := cmd.Context()

			if len(args) == 1 {
				reply, err := app.Assistant.HandleMessage(ctx, chatID, args[0])
				if err != nil {
					return err
				}
				out.Println(reply)
				return nil
			}

			// Interactive session
			out.Println("Tahlil assistant. Type 'exit' to quit.")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(cmd.OutOrStdout(), "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}

				reply, err := app.Assistant.HandleMessage(ctx, chatID, line)
				if err != nil {
					out.Warn(err.Error())
					continue
				}
				out.Println(reply)
			}
		},
	}

	cmd.Flags().StringVar(&chatID, "chat-id", "cli", "conversation identifier for history")
	return cmd
}
