// Package browserext queries the browser extension through the local tab bridge.
package browserext

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aidanlsb/tablink/internal/linkresolver"
)

// DefaultTimeout bounds each bridge request.
const DefaultTimeout = time.Second

// Client talks to a tab bridge at Endpoint.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	Timeout  time.Duration
}

// New returns a client for endpoint. An empty endpoint yields a client whose
// capability is never available.
func New(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		Endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		HTTP:     &http.Client{},
		Timeout:  timeout,
	}
}

type tabsResponse struct {
	SnapshotID string             `json:"snapshot_id"`
	Tabs       []linkresolver.Tab `json:"tabs"`
}

// Available reports whether the bridge is configured and answering.
func (c *Client) Available(ctx context.Context) bool {
	if c == nil || c.Endpoint == "" {
		return false
	}
	resp, err := c.get(ctx, "/healthz")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// Tabs returns the tabs from the latest snapshot pushed by the extension.
func (c *Client) Tabs(ctx context.Context) ([]linkresolver.Tab, error) {
	resp, err := c.get(ctx, "/tabs")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tab bridge returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out tabsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tab bridge response: %w", err)
	}
	return out.Tabs, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+path, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build tab bridge request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("tab bridge %s: %w", path, err)
	}
	resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelBody releases the request context once the body is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
