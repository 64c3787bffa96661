package fsnotify

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// fsnotify Watcher Adapter: detect dictionary file changes, trigger reload
// Expectation: callback fires once per save, only for watched files
// =============================================================================

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func startWatcher(t *testing.T, files ...string) (*Watcher, <-chan string) {
	t.Helper()
	w, err := NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(files, func(path string) {
		changed <- path
	}))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return w, changed
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "cities.yaml")
	require.NoError(t, os.WriteFile(dict, []byte("New York: [big apple]\n"), 0644))

	_, changed := startWatcher(t, dict)

	require.NoError(t, os.WriteFile(dict, []byte("New York: [big apple, nyc]\n"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for file change")
	assert.Equal(t, dict, path)
}

func TestWatcher_DetectsCreateOfMissingFile(t *testing.T) {
	// A dictionary file may not exist yet; its directory is what gets watched.
	dir := t.TempDir()
	dict := filepath.Join(dir, "later.yaml")

	_, changed := startWatcher(t, dict)

	require.NoError(t, os.WriteFile(dict, []byte("- java\n"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for new file")
	assert.Equal(t, dict, path)
}

func TestWatcher_DetectsRenameOver(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "langs.yaml")
	require.NoError(t, os.WriteFile(dict, []byte("- java\n"), 0644))

	_, changed := startWatcher(t, dict)

	tmp := filepath.Join(dir, "langs.yaml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("- go\n"), 0644))
	require.NoError(t, os.Rename(tmp, dict))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback after atomic save")
	assert.Equal(t, dict, path)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "cities.yaml")
	require.NoError(t, os.WriteFile(dict, []byte("- a\n"), 0644))

	_, changed := startWatcher(t, dict)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cities.yaml.swp"), []byte("x"), 0644))

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "unwatched files must not trigger onChange")
}

func TestWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "cities.yaml")
	require.NoError(t, os.WriteFile(dict, []byte("- a\n"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var count atomic.Int32
	require.NoError(t, w.Watch([]string{dict}, func(string) {
		count.Add(1)
	}))
	time.Sleep(50 * time.Millisecond)

	// Rapid writes inside the quiet period collapse into one callback.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(dict, []byte("- b\n"), 0644))
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch([]string{filepath.Join(t.TempDir(), "nope", "dict.yaml")}, func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch")
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Watch([]string{filepath.Join(t.TempDir(), "d.yaml")}, func(string) {}))

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_NoCallbackAfterStop(t *testing.T) {
	dir := t.TempDir()
	dict := filepath.Join(dir, "cities.yaml")
	require.NoError(t, os.WriteFile(dict, []byte("- a\n"), 0644))

	w, changed := startWatcher(t, dict)
	require.NoError(t, w.Stop())

	require.NoError(t, os.WriteFile(dict, []byte("- b\n"), 0644))
	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok)
}

func TestWatcher_CallbacksNeverOverlap(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()
	w.debounce = time.Millisecond

	var inFlight, maxInFlight, calls atomic.Int32
	onChange := func(string) {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		inFlight.Add(-1)
		calls.Add(1)
	}

	// Distinct paths have independent timers that fire together.
	for i := 0; i < 4; i++ {
		w.schedule(filepath.Join("/dicts", string(rune('a'+i))+".yaml"), onChange)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 4 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestWatcher_FiredTimerKeepsNewerTimer(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()
	w.debounce = time.Millisecond

	const path = "/dicts/cities.yaml"
	fired := make(chan string, 2)
	onChange := func(p string) { fired <- p }

	// The first timer fires while the lock is held, so its callback waits
	// until a newer timer for the same path has replaced it.
	w.mu.Lock()
	w.scheduleLocked(path, onChange)
	time.Sleep(20 * time.Millisecond)
	w.debounce = time.Hour
	w.scheduleLocked(path, onChange)
	newer := w.timers[path]
	w.mu.Unlock()

	_, ok := waitForCallback(fired, time.Second)
	require.True(t, ok)

	w.mu.Lock()
	defer w.mu.Unlock()
	assert.Same(t, newer, w.timers[path], "pending timer must survive the older callback")
}
