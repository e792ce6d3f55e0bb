package upstream

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

	"tike-storefront/internal/domain"
)

// ErrBadEnvelope marks a response body that matched none of the shapes the
// backend is known to produce.
var ErrBadEnvelope = errors.New("upstream: unexpected response shape")

// Client talks to the Tike backend REST API with a bearer token.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope is the common {payload: ...} wrapper the backend uses.
type envelope struct {
	Payload json.RawMessage `json:"payload"`
}

func (c *Client) url(path string) string {
	return c.BaseURL + strings.TrimPrefix(path, "/")
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

// getPayload performs a strict GET: non-2xx is an error, the body must be a
// {payload: ...} envelope and payload is decoded into out.
func (c *Client) getPayload(ctx context.Context, op, path string, out any) error {
	return c.doPayload(ctx, op, http.MethodGet, path, nil, out)
}

// postPayload performs a strict POST with the same envelope handling.
func (c *Client) postPayload(ctx context.Context, op, path string, body, out any) error {
	return c.doPayload(ctx, op, http.MethodPost, path, body, out)
}

func (c *Client) doPayload(ctx context.Context, op, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return domain.InternalError{Msg: op, Err: err}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.UnavailableError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotFoundError{Resource: op}
	case resp.StatusCode >= 500:
		return domain.UnavailableError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode >= 400:
		return domain.ValidationError{Msg: fmt.Sprintf("%s: upstream rejected request (status %d)", op, resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrBadEnvelope, err)
	}
	if out == nil {
		return nil
	}
	if len(env.Payload) == 0 {
		return fmt.Errorf("%s: %w: missing payload", op, ErrBadEnvelope)
	}
	if err := json.Unmarshal(env.Payload, out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrBadEnvelope, err)
	}
	return nil
}
