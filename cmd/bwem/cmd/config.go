package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arl/go-bwem/bwem"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a glyph settings file",
	Long: `Create a glyph settings file in YAML format, prefilled with the
default glyphs of the map text format.

If FILE is not provided, 'bwem.yml' is used`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "bwem.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		if ok, err := confirmIfExists(path,
			fmt.Sprintf("file name %s already exists, overwrite? [y/N]", path)); !ok {
			if err == nil {
				fmt.Println("aborted by user...")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}
		settings := bwem.DefaultLoaderSettings()
		check(marshalYAMLFile(path, &settings))
		fmt.Printf("glyph settings written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
