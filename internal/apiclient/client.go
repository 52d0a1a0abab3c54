// Package apiclient talks to the trips API, the external service that owns
// every trip, activity, user, and share token. Nothing here is stored locally.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/pkordes/trip-itinerary/internal/domain"
)

// maxErrorBody caps how much of a failed response is kept for error messages.
const maxErrorBody = 4 << 10

// APIError is returned for non-2xx responses that do not map to a domain
// sentinel error.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trips api: status=%d body=%s", e.StatusCode, e.Body)
}

// Client is an HTTP client for the trips API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Client rooted at baseURL (e.g. "http://127.0.0.1:8000").
// A nil httpClient falls back to http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// do sends one request and decodes a JSON response into out (if non-nil).
// token, when non-empty, is sent as "Authorization: Token <token>".
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps an error status to a domain sentinel where one applies.
func statusError(status int, body []byte) error {
	switch status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrValidation, fieldErrors(body))
	default:
		return &APIError{StatusCode: status, Body: strings.TrimSpace(string(body))}
	}
}

// fieldErrors flattens a DRF-style {"field": ["msg", ...]} body into
// "field: msg; other: msg". Bodies of any other shape are returned as text.
func fieldErrors(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return strings.TrimSpace(string(body))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		var msgs []string
		if err := json.Unmarshal(fields[k], &msgs); err != nil {
			var msg string
			if err := json.Unmarshal(fields[k], &msg); err != nil {
				msg = string(fields[k])
			}
			msgs = []string{msg}
		}
		if k == "non_field_errors" || k == "detail" {
			parts = append(parts, strings.Join(msgs, ", "))
			continue
		}
		parts = append(parts, k+": "+strings.Join(msgs, ", "))
	}
	return strings.Join(parts, "; ")
}
