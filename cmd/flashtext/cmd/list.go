package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the keywords of the dictionary",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output entries as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	dict, closeDict, err := openDictionary()
	if err != nil {
		return err
	}
	defer closeDict()

	res, err := dict.List()
	if err != nil {
		return err
	}
	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res.Entries)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatList(dictName, res.Entries))
	return nil
}
