package main

import (
	"github.com/aretw0/menubot/internal/cli"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the configured menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.PrintMenu(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
