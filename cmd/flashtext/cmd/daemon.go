package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/app"
)

var (
	daemonWatch []string
	daemonHTTP  bool
	daemonPort  int
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the flashtext daemon",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	Long: "Serves the selected dictionary over a unix socket until stopped.\n" +
		"Dictionary files passed with --watch, and any *.json, *.yaml or *.yml file\n" +
		"in .flashtext/dicts/, are imported on start and re-imported when they change.\n" +
		"The dicts directory is scanned once, at start: a file added there later is\n" +
		"picked up only after a restart, or when it was named with --watch.",
	RunE: runDaemonStart,
}

var daemonReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload the dictionary from the store and re-import watched files",
	RunE:  runDaemonReload,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonStartCmd.Flags().StringSliceVar(&daemonWatch, "watch", nil, "Dictionary file to import and watch (repeatable)")
	daemonStartCmd.Flags().BoolVar(&daemonHTTP, "http", false, "Also serve the JSON API over HTTP on localhost")
	daemonStartCmd.Flags().IntVar(&daemonPort, "port", 0, "HTTP port (default: derived from the project path)")
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonReloadCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	sockPath := socket.SocketPath(root)

	client := socket.NewClient(sockPath)
	if client.Ping() {
		fmt.Println("⚡ daemon already running")
		return nil
	}

	paths := app.NewPaths(root)
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("create %s: %w", paths.Root, err)
	}

	watch, err := watchedFiles(paths, daemonWatch)
	if err != nil {
		return err
	}

	a, err := app.New(app.Config{
		ProjectRoot:   root,
		Dictionary:    dictName,
		CaseSensitive: caseSensitive,
		Watch:         watch,
		HTTP:          daemonHTTP,
		HTTPPort:      daemonPort,
		LogFile:       paths.DaemonLog,
	})
	if err != nil {
		if isDBLockError(err) {
			return fmt.Errorf("%s", diagnoseDBLock(root))
		}
		return fmt.Errorf("init: %w", err)
	}

	if err := a.Start(); err != nil {
		a.Stop()
		return err
	}

	if err := os.WriteFile(paths.PIDFile, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		a.Log.Warnf("write pid file: %v", err)
	}

	fmt.Printf("⚡ flashtext daemon serving %q at %s\n", dictName, sockPath)
	if len(watch) > 0 {
		fmt.Printf("  watching %d file(s)\n", len(watch))
	}
	if a.Web != nil {
		fmt.Printf("  http api at %s\n", a.Web.URL())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
		fmt.Println("\n⚡ shutting down...")
	case <-a.Server.ShutdownCh():
		fmt.Println("⚡ shutdown requested")
	}

	err = a.Stop()
	paths.CleanEphemeral()
	return err
}

func runDaemonReload(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socket.SocketPath(projectRoot()))
	if !client.Ping() {
		fmt.Println("⚡ daemon is not running")
		return nil
	}

	res, err := client.Reload()
	if err != nil {
		return err
	}
	fmt.Printf("⚡ reloaded %d keywords (%d watched files) in %dms\n", res.KeywordCount, res.FileCount, res.ElapsedMs)
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	sockPath := socket.SocketPath(root)
	client := socket.NewClient(sockPath)

	if !client.Ping() {
		fmt.Println("⚡ daemon is not running")
		return nil
	}

	if err := client.Shutdown(); err != nil {
		return err
	}

	fmt.Println("⚡ daemon stopped")
	return nil
}

// watchedFiles merges explicit --watch files with the dictionary files found
// in the project's dicts directory at the time of the call. Duplicates are
// dropped.
func watchedFiles(paths *app.Paths, explicit []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(f string) error {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("watch %s: %w", f, err)
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
		return nil
	}

	for _, f := range explicit {
		if err := add(f); err != nil {
			return nil, err
		}
	}

	var found []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(paths.DictDir, pattern))
		if err != nil {
			return nil, err
		}
		found = append(found, matches...)
	}
	sort.Strings(found)
	for _, f := range found {
		if err := add(f); err != nil {
			return nil, err
		}
	}
	return files, nil
}
