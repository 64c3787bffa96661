// Package app wires together all adapters and domain logic.
// It provides lifecycle management for the flashtext daemon: create, start, stop.
// The same App also serves one-shot CLI commands when no daemon is running.
package app

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/cihub/seelog"

	"github.com/corey/flashtext/internal/adapters/ahocorasick"
	"github.com/corey/flashtext/internal/adapters/bbolt"
	"github.com/corey/flashtext/internal/adapters/dictfile"
	fsw "github.com/corey/flashtext/internal/adapters/fsnotify"
	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/adapters/web"
	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/ports"
)

// DefaultDictionary is the dictionary used when none is named.
const DefaultDictionary = "default"

// App is the top-level container wiring all components together.
type App struct {
	ProjectRoot string
	Dictionary  string
	Paths       *Paths

	Store     ports.DictionaryStore
	Prefilter ports.Prefilter
	Watcher   ports.Watcher // nil until Start, and when no files are watched
	Server    *socket.Server
	Web       *web.Server // nil unless Config.HTTP
	Log       seelog.LoggerInterface

	mu           sync.RWMutex        // guards proc, settings, filterDirty, fileKeywords
	syncMu       sync.Mutex          // serializes watched-file syncs and Reload
	proc         *keyword.Processor  // rebuilt wholesale on Reload
	settings     ports.Settings      // persisted copy of the processor configuration
	filterDirty  bool                // keyword set changed since the last prefilter build
	watch        []string            // absolute paths of watched dictionary files
	httpPort     int
	fileKeywords map[string][]string // watched file -> keywords it contributed
	running      bool                // Start succeeded; Stop must tear down services
	started      time.Time
}

// Config holds initialization parameters for the App.
type Config struct {
	ProjectRoot   string
	Dictionary    string                 // default: "default"
	DBPath        string                 // path to bbolt file (default: .flashtext/flashtext.db)
	CaseSensitive bool                   // only used when the dictionary is created
	Watch         []string               // dictionary files imported on Start and re-imported on change
	HTTP          bool                   // also serve the JSON API over HTTP
	HTTPPort      int                    // 0 = project-specific default port
	LogFile       string                 // "" = console
	Logger        seelog.LoggerInterface // optional, takes precedence over LogFile
}

// New creates an App with the store opened and the dictionary loaded.
// Does not start services. A dictionary that does not exist yet is created
// with cfg.CaseSensitive; an existing one keeps its stored settings.
func New(cfg Config) (*App, error) {
	if cfg.ProjectRoot == "" {
		return nil, fmt.Errorf("project root required")
	}
	if cfg.Dictionary == "" {
		cfg.Dictionary = DefaultDictionary
	}

	paths := NewPaths(cfg.ProjectRoot)
	if cfg.DBPath == "" {
		if err := paths.EnsureDirs(); err != nil {
			return nil, fmt.Errorf("create %s: %w", paths.Root, err)
		}
		cfg.DBPath = paths.DB
	}

	logger := cfg.Logger
	if logger == nil {
		l, err := InitLog(cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("init log: %w", err)
		}
		logger = l
	}

	store, err := bbolt.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	settings, err := store.LoadSettings(cfg.Dictionary)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings == nil {
		settings = &ports.Settings{CaseSensitive: cfg.CaseSensitive}
		if err := store.SaveSettings(cfg.Dictionary, settings); err != nil {
			store.Close()
			return nil, fmt.Errorf("create dictionary %q: %w", cfg.Dictionary, err)
		}
		logger.Infof("created dictionary %q (case sensitive: %v)", cfg.Dictionary, settings.CaseSensitive)
	}

	a := &App{
		ProjectRoot:  cfg.ProjectRoot,
		Dictionary:   cfg.Dictionary,
		Paths:        paths,
		Store:        store,
		Prefilter:    ahocorasick.NewMatcher(nil),
		Log:          logger,
		settings:     *settings,
		fileKeywords: make(map[string][]string),
	}
	for _, f := range cfg.Watch {
		abs, err := filepath.Abs(f)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("watch %s: %w", f, err)
		}
		a.watch = append(a.watch, abs)
	}

	if err := a.loadLocked(); err != nil {
		store.Close()
		return nil, err
	}

	a.Server = socket.NewServer(a, socket.SocketPath(cfg.ProjectRoot))
	if cfg.HTTP {
		a.Web = web.NewServer(a, paths.HTTPPortFile)
		a.httpPort = cfg.HTTPPort
		if a.httpPort == 0 {
			a.httpPort = web.DefaultPort(cfg.ProjectRoot)
		}
	}
	return a, nil
}

// loadLocked rebuilds the processor from the store.
// Caller holds a.mu or has exclusive access.
func (a *App) loadLocked() error {
	entries, err := a.Store.LoadEntries(a.Dictionary)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	proc := keyword.New(a.settings.CaseSensitive)
	if a.settings.CustomWordChars {
		proc.SetNonWordBoundaries(a.settings.WordChars)
	}
	for _, e := range entries {
		proc.AddKeyword(e.Keyword, e.CleanName)
	}

	a.proc = proc
	a.filterDirty = true
	a.Log.Infof("loaded dictionary %q: %d keywords", a.Dictionary, proc.Len())
	return nil
}

// Start begins the daemon (socket server + dictionary file watcher).
// Watched files are imported before the server accepts requests.
func (a *App) Start() error {
	a.started = time.Now()

	for _, f := range a.watch {
		if n, err := a.syncFile(f); err != nil {
			a.Log.Warnf("import %s: %v", f, err)
		} else {
			a.Log.Infof("imported %s: %d keywords", f, n)
		}
	}
	a.ensurePrefilter()

	if err := a.Server.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	a.running = true

	// HTTP API is non-fatal; the socket is the primary transport
	if a.Web != nil {
		if err := a.Web.Start(a.httpPort); err != nil {
			a.Log.Warnf("http api unavailable: %v", err)
			a.Web = nil
		} else {
			a.Log.Infof("http api at %s", a.Web.URL())
		}
	}

	// File watcher is non-fatal if setup fails
	if len(a.watch) > 0 {
		w, err := fsw.NewWatcher()
		if err == nil {
			err = w.Watch(a.watch, a.onFileChanged)
			if err != nil {
				w.Stop()
			}
		}
		if err != nil {
			a.Log.Warnf("file watcher unavailable: %v", err)
		} else {
			a.Watcher = w
		}
	}
	a.Log.Infof("daemon started at %s", a.Server.Addr())
	return nil
}

// Stop gracefully shuts down all services and closes the store.
// Safe to call on an App that was never started.
func (a *App) Stop() error {
	if a.Watcher != nil {
		a.Watcher.Stop()
	}
	if a.running {
		if a.Web != nil {
			a.Web.Stop()
		}
		a.Server.Stop()
		a.running = false
		a.Log.Infof("daemon stopped after %s", time.Since(a.started).Round(time.Second))
	}
	err := a.Store.Close()
	a.Log.Flush()
	return err
}

// ensurePrefilter rebuilds the Aho-Corasick prefilter if the keyword set
// changed since it was last built.
func (a *App) ensurePrefilter() {
	a.mu.RLock()
	dirty := a.filterDirty
	a.mu.RUnlock()
	if !dirty {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.filterDirty {
		return
	}
	all := a.proc.AllKeywords()
	keywords := make([]string, 0, len(all))
	for kw := range all {
		keywords = append(keywords, kw)
	}
	a.Prefilter.Rebuild(keywords)
	a.filterDirty = false
}

// mayMatchLocked reports whether text needs a trie scan. A stale prefilter
// is never trusted. Caller holds a.mu (read or write).
func (a *App) mayMatchLocked(text string) bool {
	if a.filterDirty {
		return true
	}
	return a.Prefilter.MayMatch(a.proc.Normalize(text))
}

// Extract runs keyword extraction over each text.
// Implements socket.Dictionary.
func (a *App) Extract(texts []string, span bool) socket.ExtractResult {
	a.ensurePrefilter()
	start := time.Now()

	a.mu.RLock()
	defer a.mu.RUnlock()

	res := socket.ExtractResult{Keywords: make([][]string, len(texts))}
	if span {
		res.Spans = make([][]keyword.Match, len(texts))
	}
	for i, text := range texts {
		if !a.mayMatchLocked(text) {
			res.Keywords[i] = []string{}
			if span {
				res.Spans[i] = []keyword.Match{}
			}
			continue
		}
		if !span {
			res.Keywords[i] = a.proc.ExtractKeywords(text)
			continue
		}
		matches := a.proc.ExtractKeywordsWithSpan(text)
		names := make([]string, len(matches))
		for j, m := range matches {
			names[j] = m.CleanName
		}
		res.Keywords[i] = names
		res.Spans[i] = matches
	}
	res.Elapsed = time.Since(start).String()
	return res
}

// Replace substitutes clean names for keywords in each text.
// Implements socket.Dictionary.
func (a *App) Replace(texts []string) socket.ReplaceResult {
	a.ensurePrefilter()
	start := time.Now()

	a.mu.RLock()
	defer a.mu.RUnlock()

	res := socket.ReplaceResult{Texts: make([]string, len(texts))}
	for i, text := range texts {
		if !a.mayMatchLocked(text) {
			res.Texts[i] = text
			continue
		}
		res.Texts[i] = a.proc.ReplaceKeywords(text)
	}
	res.Elapsed = time.Since(start).String()
	return res
}

// Add inserts keywords and persists them. An empty CleanName means the
// keyword as given. The whole batch is rejected if any keyword is empty.
// Implements socket.Dictionary.
func (a *App) Add(entries []ports.Entry) (socket.AddResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored := make([]ports.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Keyword == "" {
			return socket.AddResult{}, fmt.Errorf("add: empty keyword")
		}
		clean := e.CleanName
		if clean == "" {
			clean = e.Keyword
		}
		stored = append(stored, ports.Entry{Keyword: a.proc.Normalize(e.Keyword), CleanName: clean})
	}
	if len(stored) == 0 {
		return socket.AddResult{KeywordCount: a.proc.Len()}, nil
	}

	if err := a.Store.PutEntries(a.Dictionary, stored); err != nil {
		return socket.AddResult{}, fmt.Errorf("persist keywords: %w", err)
	}
	for _, e := range stored {
		a.proc.AddKeyword(e.Keyword, e.CleanName)
	}
	a.filterDirty = true
	return socket.AddResult{Added: len(stored), KeywordCount: a.proc.Len()}, nil
}

// Remove deletes keywords from the processor and the store. Keywords that
// are not present are skipped.
// Implements socket.Dictionary.
func (a *App) Remove(keywords []string) (socket.RemoveResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var present []string
	for _, kw := range keywords {
		norm := a.proc.Normalize(kw)
		if a.proc.Contains(norm) {
			present = append(present, norm)
		}
	}
	if len(present) == 0 {
		return socket.RemoveResult{KeywordCount: a.proc.Len()}, nil
	}

	if err := a.Store.DeleteEntries(a.Dictionary, present); err != nil {
		return socket.RemoveResult{}, fmt.Errorf("persist removal: %w", err)
	}
	removed := 0
	for _, kw := range present {
		if a.proc.RemoveKeyword(kw) {
			removed++
		}
	}
	a.filterDirty = true
	return socket.RemoveResult{Removed: removed, KeywordCount: a.proc.Len()}, nil
}

// List returns every keyword with its clean name, sorted by keyword.
// Implements socket.Dictionary.
func (a *App) List() socket.ListResult {
	a.mu.RLock()
	all := a.proc.AllKeywords()
	a.mu.RUnlock()

	entries := make([]ports.Entry, 0, len(all))
	for kw, clean := range all {
		entries = append(entries, ports.Entry{Keyword: kw, CleanName: clean})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Keyword < entries[j].Keyword
	})
	return socket.ListResult{Entries: entries, Count: len(entries)}
}

// Info describes the served dictionary.
// Implements socket.Dictionary.
func (a *App) Info() socket.DictionaryInfo {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return socket.DictionaryInfo{
		Name:          a.Dictionary,
		KeywordCount:  a.proc.Len(),
		CaseSensitive: a.proc.CaseSensitive(),
	}
}

// Reload rebuilds the processor from the store, then re-imports every
// watched dictionary file.
// Implements socket.Dictionary.
func (a *App) Reload() (socket.ReloadResult, error) {
	start := time.Now()

	a.syncMu.Lock()
	defer a.syncMu.Unlock()

	a.mu.Lock()
	err := a.loadLocked()
	a.mu.Unlock()
	if err != nil {
		return socket.ReloadResult{}, err
	}

	for _, f := range a.watch {
		if _, err := a.syncFileLocked(f); err != nil {
			return socket.ReloadResult{}, fmt.Errorf("import %s: %w", f, err)
		}
	}
	a.ensurePrefilter()

	info := a.Info()
	return socket.ReloadResult{
		KeywordCount: info.KeywordCount,
		FileCount:    len(a.watch),
		ElapsedMs:    time.Since(start).Milliseconds(),
	}, nil
}

// Import loads a dictionary file and adds its keywords, or removes them
// when remove is set. Returns the number of keywords added or removed.
// Shape problems in the file surface as *keyword.ShapeError.
func (a *App) Import(path string, remove bool) (int, error) {
	d, err := dictfile.Load(path)
	if err != nil {
		return 0, err
	}

	if remove {
		keywords, err := d.Keywords(a.CaseSensitive())
		if err != nil {
			return 0, err
		}
		res, err := a.Remove(keywords)
		return res.Removed, err
	}

	entries, err := d.Entries(a.CaseSensitive())
	if err != nil {
		return 0, err
	}
	res, err := a.Add(entries)
	return res.Added, err
}

// CaseSensitive reports whether the dictionary matches case sensitively.
func (a *App) CaseSensitive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings.CaseSensitive
}

// WordChars returns the word-rune set in use, sorted.
func (a *App) WordChars() []rune {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.proc.NonWordBoundaries()
}

// SetWordChars replaces the word-rune set and persists it.
func (a *App) SetWordChars(chars []rune) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveWordCharsLocked(true, chars)
}

// AddWordChar adds one rune to the word-rune set and persists the result.
func (a *App) AddWordChar(char string) error {
	if utf8.RuneCountInString(char) != 1 {
		return fmt.Errorf("word char must be exactly one character, got %q", char)
	}
	r, _ := utf8.DecodeRuneInString(char)

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveWordCharsLocked(true, append(a.proc.NonWordBoundaries(), r))
}

// ResetWordChars restores the default word-rune set.
func (a *App) ResetWordChars() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveWordCharsLocked(false, nil)
}

func (a *App) saveWordCharsLocked(custom bool, chars []rune) error {
	settings := a.settings
	settings.CustomWordChars = custom
	settings.WordChars = nil
	if custom {
		settings.WordChars = append([]rune{}, chars...)
	}
	if err := a.Store.SaveSettings(a.Dictionary, &settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	a.settings = settings

	if custom {
		a.proc.SetNonWordBoundaries(settings.WordChars)
	} else {
		a.proc.SetNonWordBoundaries(keyword.DefaultNonWordBoundaries())
	}
	return nil
}
