package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/flashtext/internal/adapters/bbolt"
	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows project root, DB path, socket path, dictionaries, and daemon status. No daemon required.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	paths := app.NewPaths(root)
	sockPath := socket.SocketPath(root)

	client := socket.NewClient(sockPath)
	daemonRunning := client.Ping()
	daemonStatus := paint(colorYellow, "✗ not running")
	if daemonRunning {
		daemonStatus = paint(colorGreen, "✓ running")
	}

	fmt.Println(paint(colorBold, "⚡ flashtext config"))
	fmt.Printf("  Root:         %s\n", root)
	fmt.Printf("  Dictionary:   %s\n", dictName)
	fmt.Printf("  DB:           %s\n", paths.DB)
	fmt.Printf("  Log:          %s\n", paths.DaemonLog)
	fmt.Printf("  Socket:       %s\n", sockPath)
	fmt.Printf("  Daemon:       %s\n", daemonStatus)

	if daemonRunning {
		if health, err := client.Health(); err == nil {
			fmt.Printf("  Serving:      %s (%d keywords)\n", health.Dictionary, health.KeywordCount)
		}
		return nil
	}

	// The daemon holds the store lock; only list dictionaries without it.
	if _, err := os.Stat(paths.DB); err != nil {
		return nil
	}
	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		if isDBLockError(err) {
			return fmt.Errorf("%s", diagnoseDBLock(root))
		}
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	names, err := store.ListDictionaries()
	if err != nil {
		return err
	}
	fmt.Printf("  Dictionaries: %s\n", strings.Join(names, ", "))
	return nil
}
