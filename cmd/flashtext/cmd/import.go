package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/flashtext/internal/domain/keyword"
)

var importRemove bool

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Load keywords from YAML or JSON dictionary files",
	Long: "Each file is either a mapping of clean names to keyword lists,\n" +
		"or a list of keywords. With --remove the listed keywords are unloaded instead.",
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importRemove, "remove", false, "Remove the listed keywords instead of adding them")
}

func runImport(cmd *cobra.Command, args []string) error {
	dict, closeDict, err := openDictionary()
	if err != nil {
		return err
	}
	defer closeDict()

	verb := "imported"
	if importRemove {
		verb = "removed"
	}
	for _, path := range args {
		n, err := dict.Import(path, importRemove)
		if err != nil {
			var shapeErr *keyword.ShapeError
			if errors.As(err, &shapeErr) {
				return fmt.Errorf("%s: unexpected layout: %s\n"+
					"  → expected a mapping of clean names to keyword lists, or a list of keywords", path, shapeErr.Reason)
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "⚡ %s %d keywords from %s\n", verb, n, path)
	}
	return nil
}
