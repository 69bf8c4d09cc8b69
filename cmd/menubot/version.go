package main

import (
	"fmt"

	"github.com/aretw0/menubot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of menubot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "menubot version %s\n", menubot.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
