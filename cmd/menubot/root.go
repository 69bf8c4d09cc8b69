package main

import (
	"fmt"
	"os"

	"github.com/aretw0/menubot/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "menubot",
	Short: "menubot is a conversational food-ordering bot",
	Long: `menubot takes dinner orders one turn at a time. It keeps a cart per
conversation and can talk over the terminal, HTTP, Discord or MCP.`,
	SilenceUsage: true,
	RunE:         runChat,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("env-file", ".env", "Dotenv file to load before reading MENUBOT_* variables")
	flags.String("store", "", "Session store: memory, file, redis or postgres")
	flags.String("session-dir", "", "Directory for the file store")
	flags.String("locale", "", "Built-in menu locale (en, es)")
	flags.String("menu", "", "Menu definition file (YAML or JSON)")
	flags.Bool("debug", false, "Enable debug logging to stderr")

	addChatFlags(rootCmd)
}

// loadConfig reads the environment and applies flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	override := func(flag string, dst *string) {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
		}
	}
	override("store", &cfg.Store)
	override("session-dir", &cfg.SessionDir)
	override("locale", &cfg.Locale)
	override("menu", &cfg.MenuFile)
	if cmd.Flags().Changed("debug") {
		cfg.Debug, _ = cmd.Flags().GetBool("debug")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
