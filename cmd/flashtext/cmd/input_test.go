package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReadTexts_JoinsArgs(t *testing.T) {
	texts, err := readTexts([]string{"I love", "Big Apple"})
	require.NoError(t, err)
	assert.Equal(t, []string{"I love Big Apple"}, texts)
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("first line\r\nsecond\n\nlast"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first line\r", "second", "", "last"}, lines, "CR is kept, LF is the separator")

	lines, err = readLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadLines_LongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	lines, err := readLines(strings.NewReader(long + "\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 1<<20)
}

func TestBatches(t *testing.T) {
	assert.Empty(t, batches(nil))

	small := []string{"a", "b"}
	assert.Equal(t, [][]string{small}, batches(small))

	texts := make([]string, 2*batchSize+1)
	out := batches(texts)
	require.Len(t, out, 3)
	assert.Len(t, out[0], batchSize)
	assert.Len(t, out[1], batchSize)
	assert.Len(t, out[2], 1)
}
