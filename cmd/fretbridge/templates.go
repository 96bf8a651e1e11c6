package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luthierlabs/fretbridge"
	"github.com/luthierlabs/fretbridge/internal/cli"
	"github.com/luthierlabs/fretbridge/internal/presentation/tui"
	"github.com/luthierlabs/fretbridge/pkg/adapters/file"
	"github.com/luthierlabs/fretbridge/pkg/adapters/redis"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/ports"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List factory presets and saved templates",
	Run: func(cmd *cobra.Command, args []string) {
		opts := buildOptions(cmd)
		unitFlag, _ := cmd.Flags().GetString("units")
		unit := domain.Unit(unitFlag)
		if !unit.Valid() {
			unit = domain.UnitMetric
		}

		var store ports.TemplateStore
		if opts.RedisAddr != "" {
			store = redis.New(opts.RedisAddr, "", opts.RedisDB)
		} else {
			dir := opts.TemplatesDir
			if dir == "" {
				dir = fretbridge.DefaultTemplatesDir()
			}
			store = file.New(dir, file.WithLogger(cli.NewLogger(opts)))
		}

		ctx := cmd.Context()
		presets, err := file.NewPresets("").List(ctx)
		if err != nil {
			fmt.Printf("Error listing presets: %v\n", err)
			os.Exit(1)
		}
		saved, err := store.List(ctx)
		if err != nil {
			fmt.Printf("Error listing templates: %v\n", err)
			os.Exit(1)
		}

		md := "# Templates\n\n## Presets\n\n"
		for _, tpl := range presets {
			md += fmt.Sprintf("- **%s** (`%s`) %s\n",
				tpl.DisplayName(unit), tpl.ID, tpl.DisplayDescription(unit))
		}
		md += "\n## Saved\n\n"
		if len(saved) == 0 {
			md += "_none_\n"
		}
		for _, tpl := range saved {
			md += fmt.Sprintf("- **%s** (`%s`) %s\n",
				tpl.DisplayName(unit), tpl.ID, tpl.DisplayDescription(unit))
		}

		render := tui.NewRenderer()
		out, err := render(md)
		if err != nil {
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().String("units", "mm", "Units for preset display names (mm or in)")
}
