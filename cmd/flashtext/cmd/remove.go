package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <keyword>...",
	Short: "Remove keywords from the dictionary",
	Long:  "Removes keywords. Keywords that are not in the dictionary are skipped.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	dict, closeDict, err := openDictionary()
	if err != nil {
		return err
	}
	defer closeDict()

	res, err := dict.Remove(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⚡ removed %d of %d (%d keywords in %s)\n",
		res.Removed, len(args), res.KeywordCount, dictName)
	return nil
}
