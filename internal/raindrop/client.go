// Package raindrop saves bookmarks to Raindrop.io.
package raindrop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Raindrop.io REST API root.
const DefaultBaseURL = "https://api.raindrop.io/rest/v1"

// UnsortedCollection is Raindrop's built-in "Unsorted" collection.
const UnsortedCollection = -1

// ErrMissingToken is returned before any request when no API token is set.
var ErrMissingToken = errors.New("raindrop API token is not configured")

// Bookmark is a link to save.
type Bookmark struct {
	Link         string
	Title        string
	Tags         []string
	CollectionID int
}

// Raindrop is a saved bookmark as returned by the API.
type Raindrop struct {
	ID    int64    `json:"_id"`
	Link  string   `json:"link"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// APIError is a non-2xx API response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("raindrop API returned status %d", e.Status)
	}
	return fmt.Sprintf("raindrop API returned status %d: %s", e.Status, e.Message)
}

// Client is a minimal Raindrop.io API client.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New returns a client for baseURL (DefaultBaseURL when empty).
func New(baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   strings.TrimSpace(token),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type collectionRef struct {
	ID int `json:"$id"`
}

type createRequest struct {
	Link        string         `json:"link"`
	Title       string         `json:"title,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Collection  *collectionRef `json:"collection,omitempty"`
	PleaseParse struct{}       `json:"pleaseParse"`
}

type itemResponse struct {
	Result       bool     `json:"result"`
	Item         Raindrop `json:"item"`
	ErrorMessage string   `json:"errorMessage"`
}

// CreateRaindrop saves b and returns the created item.
func (c *Client) CreateRaindrop(ctx context.Context, b Bookmark) (Raindrop, error) {
	if c.Token == "" {
		return Raindrop{}, ErrMissingToken
	}
	if strings.TrimSpace(b.Link) == "" {
		return Raindrop{}, errors.New("bookmark link is required")
	}

	body := createRequest{
		Link:  b.Link,
		Title: strings.TrimSpace(b.Title),
		Tags:  cleanTags(b.Tags),
	}
	if b.CollectionID != 0 {
		body.Collection = &collectionRef{ID: b.CollectionID}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Raindrop{}, fmt.Errorf("encode raindrop: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/raindrop", bytes.NewReader(payload))
	if err != nil {
		return Raindrop{}, fmt.Errorf("build raindrop request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Raindrop{}, fmt.Errorf("create raindrop: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Raindrop{}, fmt.Errorf("read raindrop response: %w", err)
	}

	var out itemResponse
	decodeErr := json.Unmarshal(data, &out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.ErrorMessage
		if decodeErr != nil {
			msg = strings.TrimSpace(string(data))
		}
		return Raindrop{}, &APIError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return Raindrop{}, fmt.Errorf("decode raindrop response: %w", decodeErr)
	}
	if !out.Result {
		return Raindrop{}, &APIError{Status: resp.StatusCode, Message: out.ErrorMessage}
	}
	return out.Item, nil
}

// cleanTags trims tags and drops empty and duplicate entries, keeping order.
func cleanTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
