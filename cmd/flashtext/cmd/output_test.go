package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/app"
	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/ports"
)

// Test output is never a terminal, so paint is a no-op here.

func TestFormatKeywords(t *testing.T) {
	assert.Equal(t, "New York, Bay Area", formatKeywords([]string{"New York", "Bay Area"}, nil))
	assert.Equal(t, "", formatKeywords([]string{}, nil))

	spans := []keyword.Match{
		{CleanName: "New York", Start: 7, End: 16},
		{CleanName: "Bay Area", Start: 21, End: 29},
	}
	assert.Equal(t, "New York[7:16], Bay Area[21:29]", formatKeywords([]string{"New York", "Bay Area"}, spans))
}

func TestSpansAt(t *testing.T) {
	res := &socket.ExtractResult{Keywords: [][]string{{"a"}}}
	assert.Nil(t, spansAt(res, 0))

	res.Spans = [][]keyword.Match{{{CleanName: "a", Start: 0, End: 1}}}
	assert.Len(t, spansAt(res, 0), 1)
}

func TestFormatList(t *testing.T) {
	out := formatList("cities", []ports.Entry{
		{Keyword: "bay area", CleanName: "Bay Area"},
		{Keyword: "big apple", CleanName: "New York"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "⚡ 2 keywords │ cities", lines[0])
	assert.Equal(t, "  bay area   → Bay Area", lines[1])
	assert.Equal(t, "  big apple  → New York", lines[2])
}

func TestFormatHealth(t *testing.T) {
	out := formatHealth(&socket.HealthResult{
		Status:        "ok",
		Dictionary:    "default",
		KeywordCount:  3,
		CaseSensitive: true,
		Uptime:        "1m0s",
	})
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "Dictionary:     default")
	assert.Contains(t, out, "Keywords:       3")
	assert.Contains(t, out, "Case sensitive: true")
}

func TestFormatWordChars(t *testing.T) {
	assert.Equal(t, `3 word chars: \x00 \t a`, formatWordChars([]rune{0, '\t', 'a'}))
	assert.Equal(t, "0 word chars: ", formatWordChars(nil))
	assert.Equal(t, "1 word chars: é", formatWordChars([]rune{'é'}))
}

func TestWatchedFiles(t *testing.T) {
	root := t.TempDir()
	paths := app.NewPaths(root)
	require.NoError(t, paths.EnsureDirs())

	for _, name := range []string{"b.yaml", "a.json", "notes.txt"} {
		writeFile(t, filepath.Join(paths.DictDir, name), "[]")
	}
	explicit := filepath.Join(root, "extra.json")

	files, err := watchedFiles(paths, []string{explicit, filepath.Join(paths.DictDir, "a.json")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		explicit,
		filepath.Join(paths.DictDir, "a.json"),
		filepath.Join(paths.DictDir, "b.yaml"),
	}, files)
}

func TestWatchedFiles_DictDirScannedOnce(t *testing.T) {
	root := t.TempDir()
	paths := app.NewPaths(root)
	require.NoError(t, paths.EnsureDirs())
	writeFile(t, filepath.Join(paths.DictDir, "a.yaml"), "[]")

	// A --watch file that does not exist yet is kept; a later dicts file is not.
	pending := filepath.Join(paths.DictDir, "later.yaml")
	files, err := watchedFiles(paths, []string{pending})
	require.NoError(t, err)
	writeFile(t, filepath.Join(paths.DictDir, "b.yaml"), "[]")

	assert.Equal(t, []string{pending, filepath.Join(paths.DictDir, "a.yaml")}, files)
	assert.Contains(t, daemonStartCmd.Long, "scanned once, at start")
}
