package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .flashtext/ project directory.
// All fields are pre-computed at construction.
type Paths struct {
	Root string // .flashtext/
	DB   string // .flashtext/flashtext.db

	LogDir    string // .flashtext/log/
	DaemonLog string // .flashtext/log/daemon.log

	RunDir       string // .flashtext/run/
	PIDFile      string // .flashtext/run/daemon.pid
	HTTPPortFile string // .flashtext/run/http.port

	DictDir string // .flashtext/dicts/
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".flashtext")
	return &Paths{
		Root: root,
		DB:   filepath.Join(root, "flashtext.db"),

		LogDir:    filepath.Join(root, "log"),
		DaemonLog: filepath.Join(root, "log", "daemon.log"),

		RunDir:       filepath.Join(root, "run"),
		PIDFile:      filepath.Join(root, "run", "daemon.pid"),
		HTTPPortFile: filepath.Join(root, "run", "http.port"),

		DictDir: filepath.Join(root, "dicts"),
	}
}

// EnsureDirs creates all subdirectories under .flashtext/. Idempotent.
func (p *Paths) EnsureDirs() error {
	dirs := []string{
		p.Root,
		p.LogDir,
		p.RunDir,
		p.DictDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CleanEphemeral removes ephemeral runtime files (PID and port files).
// Called on clean daemon shutdown.
func (p *Paths) CleanEphemeral() {
	os.Remove(p.PIDFile)
	os.Remove(p.HTTPPortFile)
}
