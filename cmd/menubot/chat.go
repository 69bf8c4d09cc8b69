package main

import (
	"os"

	"github.com/aretw0/menubot/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Order interactively in the terminal (default command)",
	Long: `Starts a conversation on stdin/stdout. Answer prompts with the number or
the label of a choice. Type 'exit' to leave; the cart is kept in the session
store and --session resumes it.`,
	RunE: runChat,
}

func addChatFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("session", "s", "", "Session ID to create or resume (default: random)")
	cmd.Flags().Bool("json", false, "Read and write JSON lines")
	cmd.Flags().Bool("headless", false, "Skip the banner and the greeting activity")
	cmd.Flags().Bool("fresh", false, "Discard any saved state for the session first")
	cmd.Flags().Bool("plain", false, "Disable colors and markdown rendering")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sessionID, _ := cmd.Flags().GetString("session")
	jsonMode, _ := cmd.Flags().GetBool("json")
	headless, _ := cmd.Flags().GetBool("headless")
	fresh, _ := cmd.Flags().GetBool("fresh")
	plain, _ := cmd.Flags().GetBool("plain")

	return cli.RunChat(cfg, cli.ChatOptions{
		SessionID: sessionID,
		JSON:      jsonMode,
		Headless:  headless,
		Fresh:     fresh,
		Pretty:    !plain && term.IsTerminal(int(os.Stdout.Fd())),
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
	})
}

func init() {
	addChatFlags(chatCmd)
	rootCmd.AddCommand(chatCmd)
}
