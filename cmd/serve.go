package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/ziadkadry99/aliverse/internal/mcp"
)

var serveHistory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing chart, ten-god and car matrix tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		a, err := newAnalyzer()
		if err != nil {
			return err
		}

		mcpserver.Version = Version
		srv := mcpserver.NewServer(a, cfg.Brand.Report())

		if serveHistory {
			svc, database, err := openReadings(a)
			if err != nil {
				return err
			}
			defer database.Close()
			srv.SetReadings(svc)
			logger.Debug("reading tools enabled", zap.String("db", database.Path()))
		}

		fmt.Fprintf(os.Stderr, "aliverse MCP server started on stdio (history=%t)\n", serveHistory)
		return srv.Serve()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveHistory, "history", false, "expose stored readings to agents")
	rootCmd.AddCommand(serveCmd)
}
