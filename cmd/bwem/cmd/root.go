package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bwem",
	Short: "analyze Brood War tile maps",
	Long: `This is the command-line application accompanying go-bwem:
	- analyze textual map descriptions into areas, chokepoints and bases,
	- print the resulting decomposition and the analysis timings,
	- easily tweak the map text format (YAML files).`,
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
