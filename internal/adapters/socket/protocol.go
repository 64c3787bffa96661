// Package socket implements a JSON-over-Unix-socket protocol for the flashtext daemon.
// The protocol uses newline-delimited JSON: each message is one JSON object + \n.
package socket

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"

	"github.com/corey/flashtext/internal/domain/keyword"
	"github.com/corey/flashtext/internal/ports"
)

// SocketPath returns the Unix socket path for a given project root.
// Format: /tmp/flashtext-{first12hex}.sock
func SocketPath(projectRoot string) string {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	h := sha256.Sum256([]byte(abs))
	return fmt.Sprintf("/tmp/flashtext-%x.sock", h[:6])
}

// Method names for the protocol.
const (
	MethodExtract  = "extract"
	MethodReplace  = "replace"
	MethodAdd      = "add"
	MethodRemove   = "remove"
	MethodList     = "list"
	MethodHealth   = "health"
	MethodReload   = "reload"
	MethodShutdown = "shutdown"
)

// Request is the wire format for client-to-server messages.
type Request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire format for server-to-client messages.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// TextParams is the params for extract and replace requests.
// Every text is matched independently. Texts travel as raw bytes (base64 in
// JSON) so input that is not valid UTF-8 reaches the matcher unchanged.
type TextParams struct {
	Texts [][]byte `json:"texts"`
	Span  bool     `json:"span,omitempty"` // extract only: include byte spans
}

// ExtractResult is the result of an extract request, one entry per text.
type ExtractResult struct {
	Keywords [][]string        `json:"keywords"`
	Spans    [][]keyword.Match `json:"spans,omitempty"`
	Elapsed  string            `json:"elapsed"`
}

// ReplaceResult is the result of a replace request, one entry per text.
type ReplaceResult struct {
	Texts   []string `json:"texts"`
	Elapsed string   `json:"elapsed"`
}

// replaceReply is ReplaceResult as sent over the socket, texts as raw bytes.
type replaceReply struct {
	Texts   [][]byte `json:"texts"`
	Elapsed string   `json:"elapsed"`
}

func toBytes(texts []string) [][]byte {
	out := make([][]byte, len(texts))
	for i, t := range texts {
		out[i] = []byte(t)
	}
	return out
}

func toStrings(texts [][]byte) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = string(t)
	}
	return out
}

// AddParams is the params for an add request. Keywords are sent as typed;
// the daemon normalizes them.
type AddParams struct {
	Entries []ports.Entry `json:"entries"`
}

// AddResult is the result of an add request.
type AddResult struct {
	Added        int `json:"added"`
	KeywordCount int `json:"keyword_count"`
}

// RemoveParams is the params for a remove request.
type RemoveParams struct {
	Keywords []string `json:"keywords"`
}

// RemoveResult is the result of a remove request.
type RemoveResult struct {
	Removed      int `json:"removed"`
	KeywordCount int `json:"keyword_count"`
}

// ListResult is the result of a list request.
type ListResult struct {
	Entries []ports.Entry `json:"entries"`
	Count   int           `json:"count"`
}

// HealthResult is the result of a health request.
type HealthResult struct {
	Status        string `json:"status"`
	Dictionary    string `json:"dictionary"`
	KeywordCount  int    `json:"keyword_count"`
	CaseSensitive bool   `json:"case_sensitive"`
	Uptime        string `json:"uptime"`
}

// ReloadResult is the result of a reload request.
type ReloadResult struct {
	KeywordCount int   `json:"keyword_count"`
	FileCount    int   `json:"file_count"`
	ElapsedMs    int64 `json:"elapsed_ms"`
}

// DictionaryInfo describes the dictionary a daemon serves.
type DictionaryInfo struct {
	Name          string
	KeywordCount  int
	CaseSensitive bool
}
