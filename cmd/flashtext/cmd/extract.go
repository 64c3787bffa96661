package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	extractJSON bool
	extractSpan bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "List the keywords found in text",
	Long: "Prints the clean name of every keyword found, one input line per output line.\n" +
		"Reads stdin line by line when no text is given; a keyword never spans a newline.",
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Output one JSON object per input line")
	extractCmd.Flags().BoolVar(&extractSpan, "span", false, "Include byte offsets of each match")
}

// extractLine is the --json output for one input line.
type extractLine struct {
	Text     string      `json:"text"`
	Keywords []string    `json:"keywords"`
	Spans    interface{} `json:"spans,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
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
		res, err := dict.Extract(batch, extractSpan)
		if err != nil {
			return err
		}
		for i, text := range batch {
			if extractJSON {
				line := extractLine{Text: text, Keywords: res.Keywords[i]}
				if extractSpan {
					line.Spans = res.Spans[i]
				}
				if err := enc.Encode(line); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatKeywords(res.Keywords[i], spansAt(res, i)))
		}
	}
	return nil
}
