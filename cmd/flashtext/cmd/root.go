package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/flashtext/internal/app"
)

var (
	dictName      string
	caseSensitive bool
)

var rootCmd = &cobra.Command{
	Use:          "flashtext",
	Short:        "flashtext — single-pass keyword extraction and replacement",
	Long:         "Extract or replace thousands of keywords in one pass over the text, longest match first, on word boundaries.",
	SilenceUsage: true,
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dictName, "dict", "d", app.DefaultDictionary, "Dictionary name")
	rootCmd.PersistentFlags().BoolVar(&caseSensitive, "case-sensitive", false, "Match case sensitively (only when the dictionary is created)")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(boundaryCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(daemonCmd)
}
