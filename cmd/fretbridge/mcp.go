package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luthierlabs/fretbridge/internal/cli"
	mcpAdapter "github.com/luthierlabs/fretbridge/pkg/adapters/mcp"
	"github.com/luthierlabs/fretbridge/pkg/schema"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Exposes bridge operations as Model Context Protocol tools so agents can
inspect and edit the fretboard document.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := buildOptions(cmd)
		logger := cli.NewLogger(opts)

		host := cli.NewSimulatorHost(schema.NewStore(opts.SchemaPath))
		app, err := cli.NewApp(host, opts, logger)
		if err != nil {
			fmt.Printf("Error initializing fretbridge: %v\n", err)
			os.Exit(1)
		}

		server := mcpAdapter.NewServer(app.Bridge)
		if err := server.ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
