package main

import (
	"github.com/aretw0/menubot/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server (stdio by default)",
	Long: `Exposes the order_turn, get_menu, get_session and reset_session tools and
the menubot://menu resource. Pass --sse to serve over HTTP instead of stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("sse")
		baseURL, _ := cmd.Flags().GetString("base-url")
		return cli.RunMCP(cfg, addr, baseURL)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("sse", "", "Serve over SSE on this address (e.g. :8081)")
	mcpCmd.Flags().String("base-url", "http://localhost:8081", "Public base URL for SSE clients")
}
