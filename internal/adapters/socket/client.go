package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/corey/flashtext/internal/ports"
)

// Client connects to the flashtext daemon over a Unix socket.
type Client struct {
	sockPath string
}

// NewClient creates a client that will connect to the given socket path.
func NewClient(sockPath string) *Client {
	return &Client{sockPath: sockPath}
}

// Extract sends an extract request for a batch of texts.
func (c *Client) Extract(texts []string, span bool) (*ExtractResult, error) {
	var result ExtractResult
	if err := c.do(MethodExtract, TextParams{Texts: toBytes(texts), Span: span}, &result, 30*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Replace sends a replace request for a batch of texts.
func (c *Client) Replace(texts []string) (*ReplaceResult, error) {
	var reply replaceReply
	if err := c.do(MethodReplace, TextParams{Texts: toBytes(texts)}, &reply, 30*time.Second); err != nil {
		return nil, err
	}
	return &ReplaceResult{Texts: toStrings(reply.Texts), Elapsed: reply.Elapsed}, nil
}

// Add sends keywords to insert into the served dictionary.
func (c *Client) Add(entries []ports.Entry) (*AddResult, error) {
	var result AddResult
	if err := c.do(MethodAdd, AddParams{Entries: entries}, &result, 5*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Remove sends keywords to delete from the served dictionary.
func (c *Client) Remove(keywords []string) (*RemoveResult, error) {
	var result RemoveResult
	if err := c.do(MethodRemove, RemoveParams{Keywords: keywords}, &result, 5*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// List fetches every entry of the served dictionary.
func (c *Client) List() (*ListResult, error) {
	var result ListResult
	if err := c.do(MethodList, nil, &result, 5*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health sends a health check request.
func (c *Client) Health() (*HealthResult, error) {
	var result HealthResult
	if err := c.do(MethodHealth, nil, &result, 5*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reload asks the daemon to rebuild its dictionary from storage and watched
// files, with an extended timeout.
func (c *Client) Reload() (*ReloadResult, error) {
	var result ReloadResult
	if err := c.do(MethodReload, nil, &result, 120*time.Second); err != nil {
		return nil, err
	}
	return &result, nil
}

// Shutdown sends a shutdown request to the daemon.
func (c *Client) Shutdown() error {
	_, err := c.call(Request{
		ID:     "1",
		Method: MethodShutdown,
	})
	return err
}

// Ping checks if the daemon is reachable.
func (c *Client) Ping() bool {
	conn, err := net.DialTimeout("unix", c.sockPath, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// do sends one request and decodes the result into out.
func (c *Client) do(method string, params interface{}, out interface{}, timeout time.Duration) error {
	resp, err := c.callWithTimeout(Request{
		ID:     "1",
		Method: method,
		Params: params,
	}, timeout)
	if err != nil {
		return err
	}

	resultJSON, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := json.Unmarshal(resultJSON, out); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	return nil
}

func (c *Client) call(req Request) (*Response, error) {
	return c.callWithTimeout(req, 5*time.Second)
}

func (c *Client) callWithTimeout(req Request, timeout time.Duration) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.sockPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Set deadline for the whole request/response
	conn.SetDeadline(time.Now().Add(timeout))

	// Send request
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	// Read response
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return nil, fmt.Errorf("empty response")
	}

	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("server error: %s", resp.Error)
	}
	return &resp, nil
}
