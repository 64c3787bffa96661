package socket

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/corey/flashtext/internal/ports"
)

// Dictionary is the keyword dictionary a server exposes.
// Thread safety is the implementor's responsibility.
type Dictionary interface {
	Extract(texts []string, span bool) ExtractResult
	Replace(texts []string) ReplaceResult
	Add(entries []ports.Entry) (AddResult, error)
	Remove(keywords []string) (RemoveResult, error)
	List() ListResult
	Reload() (ReloadResult, error)
	Info() DictionaryInfo
}

// acceptRetryDelay is the pause after a failed Accept.
const acceptRetryDelay = 10 * time.Millisecond

// Server is the daemon that listens on a Unix socket and serves keyword requests.
type Server struct {
	dict     Dictionary
	listener net.Listener
	sockPath string
	started  time.Time

	done         chan struct{}
	shutdownCh   chan struct{} // closed when a remote shutdown request is received
	shutdownOnce sync.Once
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewServer creates a daemon server backed by the given dictionary.
func NewServer(dict Dictionary, sockPath string) *Server {
	return &Server{
		dict:       dict,
		sockPath:   sockPath,
		done:       make(chan struct{}),
		shutdownCh: make(chan struct{}),
	}
}

// Start begins listening on the Unix socket. It handles stale sockets by
// attempting a connection first. If the connection fails, the stale socket
// is removed before binding.
func (s *Server) Start() error {
	// Handle stale socket
	if _, err := os.Stat(s.sockPath); err == nil {
		conn, err := net.DialTimeout("unix", s.sockPath, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return fmt.Errorf("daemon already running at %s", s.sockPath)
		}
		// Stale socket, remove it
		os.Remove(s.sockPath)
	}

	ln, err := net.Listen("unix", s.sockPath)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.started = time.Now()

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop gracefully shuts down the server, closing the listener and removing the socket file.
// Idempotent: safe to call after a remote shutdown and again on signal.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.wg.Wait()
		os.Remove(s.sockPath)
	})
	return nil
}

// ShutdownCh returns a channel that is closed when a remote shutdown request
// is received. The daemon's main goroutine should select on this alongside
// OS signals so the process actually exits after a remote stop.
func (s *Server) ShutdownCh() <-chan struct{} {
	return s.shutdownCh
}

// Addr returns the socket path the server is listening on.
func (s *Server) Addr() string {
	return s.sockPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			// Back off on errors such as EMFILE that persist until a
			// connection closes.
			select {
			case <-s.done:
				return
			case <-time.After(acceptRetryDelay):
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024) // 16MB max message

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(conn, Response{Error: "invalid request JSON"})
			continue
		}

		resp := s.handleRequest(req)
		s.writeResponse(conn, resp)

		if req.Method == MethodShutdown {
			s.shutdownOnce.Do(func() { close(s.shutdownCh) })
			return
		}
	}
}

func (s *Server) handleRequest(req Request) Response {
	switch req.Method {
	case MethodExtract:
		return s.handleExtract(req)
	case MethodReplace:
		return s.handleReplace(req)
	case MethodAdd:
		return s.handleAdd(req)
	case MethodRemove:
		return s.handleRemove(req)
	case MethodList:
		return Response{ID: req.ID, Result: s.dict.List()}
	case MethodHealth:
		return s.handleHealth(req)
	case MethodReload:
		return s.handleReload(req)
	case MethodShutdown:
		return Response{ID: req.ID, Result: struct{}{}}
	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

// decodeParams re-marshals the generic params into the typed struct.
func decodeParams(req Request, out interface{}) error {
	paramsJSON, err := json.Marshal(req.Params)
	if err != nil {
		return err
	}
	return json.Unmarshal(paramsJSON, out)
}

func (s *Server) handleExtract(req Request) Response {
	var params TextParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid extract params"}
	}
	return Response{ID: req.ID, Result: s.dict.Extract(toStrings(params.Texts), params.Span)}
}

func (s *Server) handleReplace(req Request) Response {
	var params TextParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid replace params"}
	}
	res := s.dict.Replace(toStrings(params.Texts))
	return Response{ID: req.ID, Result: replaceReply{Texts: toBytes(res.Texts), Elapsed: res.Elapsed}}
}

func (s *Server) handleAdd(req Request) Response {
	var params AddParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid add params"}
	}
	result, err := s.dict.Add(params.Entries)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) handleRemove(req Request) Response {
	var params RemoveParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid remove params"}
	}
	result, err := s.dict.Remove(params.Keywords)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) handleHealth(req Request) Response {
	info := s.dict.Info()
	return Response{
		ID: req.ID,
		Result: HealthResult{
			Status:        "ok",
			Dictionary:    info.Name,
			KeywordCount:  info.KeywordCount,
			CaseSensitive: info.CaseSensitive,
			Uptime:        time.Since(s.started).Round(time.Second).String(),
		},
	}
}

func (s *Server) handleReload(req Request) Response {
	result, err := s.dict.Reload()
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) writeResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
