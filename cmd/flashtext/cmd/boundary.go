package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/flashtext/internal/app"
)

var boundaryCmd = &cobra.Command{
	Use:   "boundary",
	Short: "Show or change which characters continue a word",
	Long: "Characters in the word set continue a word; every other character ends one.\n" +
		"Changes are stored with the dictionary and need the daemon stopped.",
}

var boundaryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the word character set",
	Args:  cobra.NoArgs,
	RunE: withLocalApp(func(cmd *cobra.Command, a *app.App, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), formatWordChars(a.WordChars()))
		return nil
	}),
}

var boundaryAddCmd = &cobra.Command{
	Use:   "add <char>...",
	Short: "Add characters to the word set",
	Args:  cobra.MinimumNArgs(1),
	RunE: withLocalApp(func(cmd *cobra.Command, a *app.App, args []string) error {
		for _, c := range args {
			if err := a.AddWordChar(c); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatWordChars(a.WordChars()))
		return nil
	}),
}

var boundarySetCmd = &cobra.Command{
	Use:   "set <chars>",
	Short: "Replace the word set with the characters of <chars>",
	Long:  "Replaces the whole set. An empty string makes every character a boundary.",
	Args:  cobra.ExactArgs(1),
	RunE: withLocalApp(func(cmd *cobra.Command, a *app.App, args []string) error {
		if err := a.SetWordChars([]rune(args[0])); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatWordChars(a.WordChars()))
		return nil
	}),
}

var boundaryResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default word set (ASCII letters, underscore, \\x00-\\t)",
	Args:  cobra.NoArgs,
	RunE: withLocalApp(func(cmd *cobra.Command, a *app.App, args []string) error {
		if err := a.ResetWordChars(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatWordChars(a.WordChars()))
		return nil
	}),
}

func init() {
	boundaryCmd.AddCommand(boundaryShowCmd)
	boundaryCmd.AddCommand(boundaryAddCmd)
	boundaryCmd.AddCommand(boundarySetCmd)
	boundaryCmd.AddCommand(boundaryResetCmd)
}

// withLocalApp runs fn against an App that owns the store. Fails with
// guidance when the daemon holds it.
func withLocalApp(fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(projectRoot())
		if err != nil {
			return err
		}
		defer a.Stop()
		return fn(cmd, a, args)
	}
}
