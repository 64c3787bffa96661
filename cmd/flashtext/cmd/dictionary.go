package cmd

import (
	"fmt"

	"github.com/cihub/seelog"

	"github.com/corey/flashtext/internal/adapters/dictfile"
	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/app"
	"github.com/corey/flashtext/internal/ports"
)

// dictionary is what the one-shot commands need. It is served by the daemon
// when one is running, otherwise by an App opened on the store directly.
type dictionary interface {
	Extract(texts []string, span bool) (*socket.ExtractResult, error)
	Replace(texts []string) (*socket.ReplaceResult, error)
	Add(entries []ports.Entry) (*socket.AddResult, error)
	Remove(keywords []string) (*socket.RemoveResult, error)
	Import(path string, remove bool) (int, error)
	List() (*socket.ListResult, error)
}

// openDictionary connects to the daemon if it answers, else opens the store.
// The returned close func must always be called.
func openDictionary() (dictionary, func(), error) {
	root := projectRoot()
	client := socket.NewClient(socket.SocketPath(root))

	if client.Ping() {
		health, err := client.Health()
		if err != nil {
			return nil, nil, fmt.Errorf("daemon health: %w", err)
		}
		if health.Dictionary != dictName {
			return nil, nil, fmt.Errorf("daemon serves dictionary %q, not %q\n"+
				"  → stop it first:  flashtext daemon stop", health.Dictionary, dictName)
		}
		return &daemonDictionary{client: client, caseSensitive: health.CaseSensitive}, func() {}, nil
	}

	a, err := openApp(root)
	if err != nil {
		return nil, nil, err
	}
	return &localDictionary{app: a}, func() { a.Stop() }, nil
}

// openApp opens the dictionary store directly, without logging.
func openApp(root string) (*app.App, error) {
	a, err := app.New(app.Config{
		ProjectRoot:   root,
		Dictionary:    dictName,
		CaseSensitive: caseSensitive,
		Logger:        seelog.Disabled,
	})
	if err != nil {
		if isDBLockError(err) {
			return nil, fmt.Errorf("%s", diagnoseDBLock(root))
		}
		return nil, err
	}
	return a, nil
}

// daemonDictionary forwards to the running daemon.
type daemonDictionary struct {
	client        *socket.Client
	caseSensitive bool
}

func (d *daemonDictionary) Extract(texts []string, span bool) (*socket.ExtractResult, error) {
	return d.client.Extract(texts, span)
}

func (d *daemonDictionary) Replace(texts []string) (*socket.ReplaceResult, error) {
	return d.client.Replace(texts)
}

func (d *daemonDictionary) Add(entries []ports.Entry) (*socket.AddResult, error) {
	return d.client.Add(entries)
}

func (d *daemonDictionary) Remove(keywords []string) (*socket.RemoveResult, error) {
	return d.client.Remove(keywords)
}

func (d *daemonDictionary) List() (*socket.ListResult, error) {
	return d.client.List()
}

// Import reads the file locally and ships the resolved keywords.
func (d *daemonDictionary) Import(path string, remove bool) (int, error) {
	dict, err := dictfile.Load(path)
	if err != nil {
		return 0, err
	}
	if remove {
		keywords, err := dict.Keywords(d.caseSensitive)
		if err != nil {
			return 0, err
		}
		res, err := d.client.Remove(keywords)
		if err != nil {
			return 0, err
		}
		return res.Removed, nil
	}
	entries, err := dict.Entries(d.caseSensitive)
	if err != nil {
		return 0, err
	}
	res, err := d.client.Add(entries)
	if err != nil {
		return 0, err
	}
	return res.Added, nil
}

// localDictionary serves commands from an App owning the store.
type localDictionary struct {
	app *app.App
}

func (l *localDictionary) Extract(texts []string, span bool) (*socket.ExtractResult, error) {
	res := l.app.Extract(texts, span)
	return &res, nil
}

func (l *localDictionary) Replace(texts []string) (*socket.ReplaceResult, error) {
	res := l.app.Replace(texts)
	return &res, nil
}

func (l *localDictionary) Add(entries []ports.Entry) (*socket.AddResult, error) {
	res, err := l.app.Add(entries)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (l *localDictionary) Remove(keywords []string) (*socket.RemoveResult, error) {
	res, err := l.app.Remove(keywords)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (l *localDictionary) List() (*socket.ListResult, error) {
	res := l.app.List()
	return &res, nil
}

func (l *localDictionary) Import(path string, remove bool) (int, error) {
	return l.app.Import(path, remove)
}
