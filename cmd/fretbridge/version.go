package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luthierlabs/fretbridge"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fretbridge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fretbridge version %s\n", fretbridge.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
