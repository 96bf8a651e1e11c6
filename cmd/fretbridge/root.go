package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luthierlabs/fretbridge/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "fretbridge",
	Short: "Fretbridge mediates between a UI and a parametric fretboard document",
	Long: `Fretbridge reconciles a CAD document's user parameters against a versioned
fretboard schema, routes UI edits through a deferred execution queue, and
manages timeline suppression and parameter templates.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("templates-dir", "", "Directory for saved templates (default ~/.fretbridge/templates)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for template storage (overrides --templates-dir)")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number")
	rootCmd.PersistentFlags().String("schema", "", "Path to a schema file (default: embedded definition)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json-log", false, "Emit logs as JSON")
}

// buildOptions collects the shared flags into cli.BuildOptions.
func buildOptions(cmd *cobra.Command) cli.BuildOptions {
	templatesDir, _ := cmd.Flags().GetString("templates-dir")
	redisAddr, _ := cmd.Flags().GetString("redis")
	redisDB, _ := cmd.Flags().GetInt("redis-db")
	schemaPath, _ := cmd.Flags().GetString("schema")
	debug, _ := cmd.Flags().GetBool("debug")
	jsonLog, _ := cmd.Flags().GetBool("json-log")

	return cli.BuildOptions{
		TemplatesDir: templatesDir,
		RedisAddr:    redisAddr,
		RedisDB:      redisDB,
		SchemaPath:   schemaPath,
		Debug:        debug,
		JSONLog:      jsonLog,
	}
}
