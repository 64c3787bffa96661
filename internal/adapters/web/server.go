// Package web serves the daemon's dictionary as a JSON API over HTTP.
// Binds to localhost only.
package web

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/corey/flashtext/internal/adapters/socket"
)

// maxBodyBytes bounds a request body, matching the socket's message limit.
const maxBodyBytes = 16 * 1024 * 1024

// Server serves extract, replace and dictionary queries over HTTP.
type Server struct {
	dict     socket.Dictionary
	listener net.Listener
	httpSrv  *http.Server
	port     int
	started  time.Time
	stopOnce sync.Once

	portFilePath string // .flashtext/run/http.port
}

// NewServer creates an HTTP server for the dictionary.
// The portFilePath is where the bound port is written for discovery.
func NewServer(dict socket.Dictionary, portFilePath string) *Server {
	return &Server{
		dict:         dict,
		portFilePath: portFilePath,
	}
}

// DefaultPort computes a project-specific port: 19000 + (hash(abs_path) % 1000).
func DefaultPort(projectRoot string) int {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	h := sha256.Sum256([]byte(abs))
	n := uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 | uint32(h[3])
	return 19000 + int(n%1000)
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/keywords", s.handleKeywords)
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/replace", s.handleReplace)
	return mux
}

// Start begins listening on the preferred port. Port 0 picks a free one.
// Writes the bound port to the port file.
func (s *Server) Start(preferredPort int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", preferredPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.started = time.Now()

	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.portFilePath != "" {
		os.WriteFile(s.portFilePath, []byte(fmt.Sprintf("%d", s.port)), 0644)
	}

	go s.httpSrv.Serve(ln)
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
		if s.portFilePath != "" {
			os.Remove(s.portFilePath)
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the API base URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := s.dict.Info()
	writeJSON(w, http.StatusOK, socket.HealthResult{
		Status:        "ok",
		Dictionary:    info.Name,
		KeywordCount:  info.KeywordCount,
		CaseSensitive: info.CaseSensitive,
		Uptime:        time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dict.List())
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeTexts(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.dict.Extract(params.Texts, params.Span))
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeTexts(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.dict.Replace(params.Texts))
}

// textRequest is the body of extract and replace requests. Texts are plain
// JSON strings, so they must be valid UTF-8.
type textRequest struct {
	Texts []string `json:"texts"`
	Span  bool     `json:"span,omitempty"`
}

// decodeTexts reads a textRequest body. A body that is not valid UTF-8 is
// rejected rather than decoded with U+FFFD substitutions. On failure it has
// already written a 400 and returns false.
func decodeTexts(w http.ResponseWriter, r *http.Request) (textRequest, bool) {
	var params textRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, socket.Response{Error: fmt.Sprintf("invalid request body: %v", err)})
		return params, false
	}
	if !utf8.Valid(body) {
		writeJSON(w, http.StatusBadRequest, socket.Response{Error: "invalid request body: not valid UTF-8"})
		return params, false
	}
	if err := json.Unmarshal(body, &params); err != nil {
		writeJSON(w, http.StatusBadRequest, socket.Response{Error: fmt.Sprintf("invalid request body: %v", err)})
		return params, false
	}
	if params.Texts == nil {
		params.Texts = []string{}
	}
	return params, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
