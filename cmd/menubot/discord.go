package main

import (
	"github.com/aretw0/menubot/internal/cli"
	"github.com/spf13/cobra"
)

var discordCmd = &cobra.Command{
	Use:   "discord",
	Short: "Connect the bot to Discord",
	Long:  `Relays channel messages to the bot. Requires MENUBOT_DISCORD_TOKEN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.RunDiscord(cfg)
	},
}

func init() {
	rootCmd.AddCommand(discordCmd)
}
