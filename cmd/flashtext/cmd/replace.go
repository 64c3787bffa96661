package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var replaceJSON bool

var replaceCmd = &cobra.Command{
	Use:   "replace [text...]",
	Short: "Replace keywords in text with their clean names",
	Long: "Prints the text with every keyword replaced, one input line per output line.\n" +
		"Reads stdin line by line when no text is given.\n" +
		"Input is matched one line at a time: a keyword never spans a newline.\n" +
		"Line endings are preserved, except that the last line always ends in a newline.",
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().BoolVar(&replaceJSON, "json", false, "Output one JSON object per input line")
}

func runReplace(cmd *cobra.Command, args []string) error {
	texts, err := readTexts(args)
	if err != nil {
		return err
	}

	dict, closeDict, err := openDictionary()
	if err != nil {
		return err
	}
	defer closeDict()

	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, batch := range batches(texts) {
		res, err := dict.Replace(batch)
		if err != nil {
			return err
		}
		for i, text := range batch {
			if replaceJSON {
				if err := enc.Encode(map[string]string{"text": text, "replaced": res.Texts[i]}); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Texts[i])
		}
	}
	return nil
}
