package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/flashtext/internal/ports"
)

var addCmd = &cobra.Command{
	Use:   "add <keyword> [clean name]",
	Short: "Add a keyword to the dictionary",
	Long:  "Adds a keyword. Without a clean name the keyword stands for itself.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	entry := ports.Entry{Keyword: args[0]}
	if len(args) == 2 {
		entry.CleanName = args[1]
	}

	dict, closeDict, err := openDictionary()
	if err != nil {
		return err
	}
	defer closeDict()

	res, err := dict.Add([]ports.Entry{entry})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⚡ added %q (%d keywords in %s)\n", args[0], res.KeywordCount, dictName)
	return nil
}
