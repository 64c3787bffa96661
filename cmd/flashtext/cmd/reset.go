package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/flashtext/internal/adapters/bbolt"
	"github.com/corey/flashtext/internal/app"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the dictionary with its keywords and settings",
	Long:  "Deletes the selected dictionary (--dict). Other dictionaries and the .flashtext/ directory remain intact.",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	root := projectRoot()

	if !resetForce {
		fmt.Printf("This will delete dictionary %q and all its keywords. Continue? [y/N] ", dictName)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	dbPath := app.NewPaths(root).DB
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("no data to reset")
		return nil
	}

	store, err := bbolt.NewStore(dbPath)
	if err != nil {
		if isDBLockError(err) {
			return fmt.Errorf("cannot reset: %s", diagnoseDBLock(root))
		}
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteDictionary(dictName); err != nil {
		return err
	}

	fmt.Printf("dictionary %q reset\n", dictName)
	return nil
}
