// ABOUTME: Resource access layer: typed CRUD calls against the REST API.
// ABOUTME: Every method returns data plus one uniform *Error; no sentinels.

package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fernando-bedoya/adminconsole/internal/schema"
)

// Kind classifies a failed call so callers have one handling pattern across
// every resource method.
type Kind string

const (
	// KindTransport: the request never completed.
	KindTransport Kind = "transport"
	// KindDecode: the response body was not the expected JSON.
	KindDecode Kind = "decode"
	// KindNotFound: the server reported 404 for the target record.
	KindNotFound Kind = "not_found"
	// KindRemote: any other non-2xx response; Message carries the
	// server-provided text when there is one.
	KindRemote Kind = "remote"
)

// Error is the single error type returned by every client method.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for transport/decode failures
	Message string // server-provided message or a generic fallback
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// genericMessage is shown when the server provides no message of its own.
const genericMessage = "The request could not be completed. Please try again."

// Client issues CRUD calls to fixed REST paths under one base URL.
// There is no retry, backoff, or in-flight deduplication here.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a client for the API at base (e.g. "http://localhost:9000/api").
// Pass nil to use a default HTTP client with a sane timeout.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{base: base, http: hc}
}

// GetAll fetches the whole collection for a resource.
func (c *Client) GetAll(ctx context.Context, resource string) ([]schema.Row, error) {
	return c.getList(ctx, c.url(resource))
}

// GetByParent fetches the collection scoped to a parent record, e.g.
// GetByParent(ctx, "user-roles", "user", "5") → GET /user-roles/user/5.
func (c *Client) GetByParent(ctx context.Context, resource, parent, parentID string) ([]schema.Row, error) {
	return c.getList(ctx, c.url(resource, parent, parentID))
}

// GetByID fetches one record.
func (c *Client) GetByID(ctx context.Context, resource, id string) (schema.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(resource, id), nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error()}
	}
	return c.doRow(req)
}

// Create posts a new record and returns the server's representation of it.
func (c *Client) Create(ctx context.Context, resource string, body schema.Row) (schema.Row, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, c.url(resource), body)
	if err != nil {
		return nil, err
	}
	return c.doRow(req)
}

// CreateNested posts a record under a parent path, e.g.
// CreateNested(ctx, "sessions", "user", "5", body) → POST /sessions/user/5.
func (c *Client) CreateNested(ctx context.Context, resource, parent, parentID string, body schema.Row) (schema.Row, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, c.url(resource, parent, parentID), body)
	if err != nil {
		return nil, err
	}
	return c.doRow(req)
}

// Update replaces a record.
func (c *Client) Update(ctx context.Context, resource, id string, body schema.Row) (schema.Row, error) {
	req, err := c.jsonRequest(ctx, http.MethodPut, c.url(resource, id), body)
	if err != nil {
		return nil, err
	}
	return c.doRow(req)
}

// Remove deletes a record.
func (c *Client) Remove(ctx context.Context, resource, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url(resource, id), nil)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.remoteError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) url(segments ...string) string {
	u := c.base
	for _, seg := range segments {
		u += "/" + url.PathEscape(seg)
	}
	return u
}

func (c *Client) jsonRequest(ctx context.Context, method, target string, body schema.Row) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Message: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) getList(ctx context.Context, target string) ([]schema.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error()}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.remoteError(resp)
	}

	var rows []schema.Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, &Error{Kind: KindDecode, Message: err.Error()}
	}
	if rows == nil {
		rows = []schema.Row{}
	}
	return rows, nil
}

func (c *Client) doRow(req *http.Request) (schema.Row, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.remoteError(resp)
	}

	var row schema.Row
	if err := json.NewDecoder(resp.Body).Decode(&row); err != nil {
		return nil, &Error{Kind: KindDecode, Message: err.Error()}
	}
	return row, nil
}

// remoteError decodes the server's error envelope, falling back to a generic
// message when the body carries none.
func (c *Client) remoteError(resp *http.Response) *Error {
	kind := KindRemote
	if resp.StatusCode == http.StatusNotFound {
		kind = KindNotFound
	}

	var envelope struct {
		Message string `json:"message"`
	}
	message := genericMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
		message = envelope.Message
	}

	return &Error{Kind: kind, Status: resp.StatusCode, Message: message}
}
