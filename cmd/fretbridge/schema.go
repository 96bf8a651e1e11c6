package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luthierlabs/fretbridge/internal/presentation/tui"
	"github.com/luthierlabs/fretbridge/pkg/domain"
	"github.com/luthierlabs/fretbridge/pkg/schema"
	"github.com/luthierlabs/fretbridge/pkg/units"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the parameter schema",
	Run: func(cmd *cobra.Command, args []string) {
		opts := buildOptions(cmd)
		unitFlag, _ := cmd.Flags().GetString("units")
		unit := domain.Unit(unitFlag)
		if !unit.Valid() {
			fmt.Printf("Invalid units %q: use mm or in\n", unitFlag)
			os.Exit(1)
		}

		s, err := schema.NewStore(opts.SchemaPath).Get()
		if err != nil {
			fmt.Printf("Error loading schema: %v\n", err)
			os.Exit(1)
		}

		md := fmt.Sprintf("# Fretboard schema %s (templates %s)\n\n",
			s.SchemaVersion, s.TemplateVersion)
		for _, group := range s.SortedGroups() {
			md += fmt.Sprintf("## %s\n\n", group.Label)
			md += "| Parameter | Default | Unit | Editable |\n|---|---|---|---|\n"
			for _, def := range group.Parameters {
				editable := "yes"
				if !def.Editable {
					editable = "no"
				}
				md += fmt.Sprintf("| %s | %s | %s | %s |\n",
					def.Label, units.Default(def, unit),
					units.SymbolFor(def.UnitKind, unit), editable)
			}
			md += "\n"
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
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().String("units", "mm", "Units for default values (mm or in)")
}
