package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/luthierlabs/fretbridge/internal/cli"
	httpAdapter "github.com/luthierlabs/fretbridge/pkg/adapters/http"
	"github.com/luthierlabs/fretbridge/pkg/schema"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the bridge in HTTP mode: the UI posts action envelopes to
/api/message and receives pushes on /api/stream as server-sent events.
Without a CAD host this serves the in-memory simulator.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		opts := buildOptions(cmd)
		logger := cli.NewLogger(opts)

		host := cli.NewSimulatorHost(schema.NewStore(opts.SchemaPath))
		app, err := cli.NewApp(host, opts, logger)
		if err != nil {
			fmt.Printf("Error initializing fretbridge: %v\n", err)
			os.Exit(1)
		}

		server := httpAdapter.NewServer(app.Bridge,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(app.Metrics.Handler()),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: server.Handler(),
		}

		// The document loop consumes the mailbox for the whole server life.
		loopCtx, stopLoop := context.WithCancel(context.Background())
		defer stopLoop()
		go app.Run(loopCtx)

		if err := app.Bridge.Open(loopCtx); err != nil {
			logger.Warn("no active document at startup", "err", err)
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting fretbridge server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Fretbridge server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
