package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/luthierlabs/fretbridge/internal/cli"
	"github.com/luthierlabs/fretbridge/pkg/schema"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a stdio session against the simulator",
	Long: `Runs the bridge on stdin/stdout. On a terminal this is an interactive
session with short commands ('help' lists them); piped, it speaks JSON
lines: one {"action":...,"payload":...} envelope per line, both ways.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		opts := buildOptions(cmd)
		logger := cli.NewLogger(opts)

		host := cli.NewSimulatorHost(schema.NewStore(opts.SchemaPath))
		app, err := cli.NewApp(host, opts, logger)
		if err != nil {
			return fmt.Errorf("error initializing fretbridge: %w", err)
		}

		interactive := !jsonMode && term.IsTerminal(int(os.Stdin.Fd()))

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return cli.Run(ctx, app, cli.RunOptions{
			Interactive: interactive,
			In:          os.Stdin,
			Out:         os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("json", false, "Force JSON-lines mode even on a terminal")
}
