package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/flashtext/internal/adapters/socket"
	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/ports"
)

// mockDictionary implements socket.Dictionary over a bare processor.
type mockDictionary struct {
	mu   sync.Mutex
	proc *keyword.Processor
}

func newMockDictionary() *mockDictionary {
	p := keyword.New(false)
	p.AddKeyword("Big Apple", "New York")
	p.AddKeyword("Bay Area", "")
	return &mockDictionary{proc: p}
}

func (m *mockDictionary) Extract(texts []string, span bool) socket.ExtractResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := socket.ExtractResult{Keywords: make([][]string, len(texts))}
	if span {
		res.Spans = make([][]keyword.Match, len(texts))
	}
	for i, t := range texts {
		res.Keywords[i] = m.proc.ExtractKeywords(t)
		if span {
			res.Spans[i] = m.proc.ExtractKeywordsWithSpan(t)
		}
	}
	return res
}

func (m *mockDictionary) Replace(texts []string) socket.ReplaceResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := socket.ReplaceResult{Texts: make([]string, len(texts))}
	for i, t := range texts {
		res.Texts[i] = m.proc.ReplaceKeywords(t)
	}
	return res
}

func (m *mockDictionary) Add(entries []ports.Entry) (socket.AddResult, error) {
	return socket.AddResult{}, nil
}

func (m *mockDictionary) Remove(keywords []string) (socket.RemoveResult, error) {
	return socket.RemoveResult{}, nil
}

func (m *mockDictionary) List() socket.ListResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []ports.Entry
	for kw, clean := range m.proc.AllKeywords() {
		entries = append(entries, ports.Entry{Keyword: kw, CleanName: clean})
	}
	return socket.ListResult{Entries: entries, Count: len(entries)}
}

func (m *mockDictionary) Reload() (socket.ReloadResult, error) {
	return socket.ReloadResult{}, nil
}

func (m *mockDictionary) Info() socket.DictionaryInfo {
	return socket.DictionaryInfo{Name: "default", KeywordCount: m.proc.Len()}
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(newMockDictionary(), "")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var result socket.HealthResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "default", result.Dictionary)
	assert.Equal(t, 2, result.KeywordCount)
}

func TestExtractEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	body := `{"texts":["I love Big Apple and Bay Area.","nothing"],"span":true}`
	resp, err := http.Post(ts.URL+"/api/extract", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var result socket.ExtractResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, [][]string{{"New York", "Bay Area"}, {}}, result.Keywords)
	require.Len(t, result.Spans, 2)
	assert.Equal(t, keyword.Match{CleanName: "New York", Start: 7, End: 16}, result.Spans[0][0])
}

func TestReplaceEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Post(ts.URL+"/api/replace", "application/json", strings.NewReader(`{"texts":["I love big apple."]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	var result socket.ReplaceResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, []string{"I love New York."}, result.Texts)
}

func TestKeywordsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/keywords")
	require.NoError(t, err)
	defer resp.Body.Close()

	var result socket.ListResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 2, result.Count)
	assert.ElementsMatch(t, []ports.Entry{
		{Keyword: "big apple", CleanName: "New York"},
		{Keyword: "bay area", CleanName: "Bay Area"},
	}, result.Entries)
}

func TestInvalidBody(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Post(ts.URL+"/api/extract", "application/json", strings.NewReader(`{"texts":`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result socket.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Contains(t, result.Error, "invalid request body")
}

func TestInvalidUTF8Rejected(t *testing.T) {
	ts := setupTestServer(t)

	body := "{\"texts\":[\"caf\xe9 big apple\"]}"
	for _, path := range []string{"/api/extract", "/api/replace"} {
		resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)

		var result socket.Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Contains(t, result.Error, "UTF-8", path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/extract")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestDefaultPort(t *testing.T) {
	port := DefaultPort("/some/project")
	assert.GreaterOrEqual(t, port, 19000)
	assert.Less(t, port, 20000)
	assert.Equal(t, port, DefaultPort("/some/project"))
}

func TestStartStop_PortFile(t *testing.T) {
	portFile := filepath.Join(t.TempDir(), "http.port")
	srv := NewServer(newMockDictionary(), portFile)
	require.NoError(t, srv.Start(0))

	data, err := os.ReadFile(portFile)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(srv.Port()), string(data))

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(srv.URL() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	srv.Stop()
	srv.Stop()
	_, err = os.Stat(portFile)
	assert.True(t, os.IsNotExist(err))
}
