package app

import (
	"errors"
	"os"

	"github.com/corey/flashtext/internal/adapters/dictfile"
	"github.com/corey/flashtext/internal/ports"
)

// onFileChanged handles a create/modify/delete event for a watched
// dictionary file by re-importing it.
func (a *App) onFileChanged(absPath string) {
	n, err := a.syncFile(absPath)
	if err != nil {
		a.Log.Warnf("reload %s: %v", absPath, err)
		return
	}
	a.ensurePrefilter()
	a.Log.Infof("reloaded %s: %d keywords", absPath, n)
}

// syncFile makes the dictionary reflect the current contents of a watched
// file: keywords the file no longer lists are removed, the rest are added or
// updated. A deleted file removes everything it contributed. On a parse or
// shape error the dictionary is left untouched.
func (a *App) syncFile(path string) (int, error) {
	a.syncMu.Lock()
	defer a.syncMu.Unlock()
	return a.syncFileLocked(path)
}

// syncFileLocked is syncFile with a.syncMu already held.
func (a *App) syncFileLocked(path string) (int, error) {
	var entries []ports.Entry
	d, err := dictfile.Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return 0, err
	default:
		entries, err = d.Entries(a.CaseSensitive())
		if err != nil {
			return 0, err
		}
	}

	listed := make(map[string]bool, len(entries))
	keywords := make([]string, len(entries))
	for i, e := range entries {
		listed[e.Keyword] = true
		keywords[i] = e.Keyword
	}

	a.mu.RLock()
	prev := a.fileKeywords[path]
	a.mu.RUnlock()

	var stale []string
	for _, kw := range prev {
		if !listed[kw] {
			stale = append(stale, kw)
		}
	}
	if len(stale) > 0 {
		if _, err := a.Remove(stale); err != nil {
			return 0, err
		}
	}
	if len(entries) > 0 {
		if _, err := a.Add(entries); err != nil {
			return 0, err
		}
	}

	a.mu.Lock()
	a.fileKeywords[path] = keywords
	a.mu.Unlock()
	return len(entries), nil
}
