// Package enrich looks up the optional extras shown next to an itinerary:
// a destination photo and the current weather. Lookups never fail loudly.
// Every problem (missing key, network error, bad status, empty result)
// comes back as "not available" and is logged at debug level.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// getJSON performs a GET against u and decodes a 200 JSON response into out.
func getJSON(ctx context.Context, hc *http.Client, u *url.URL, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// endpoint joins base and path and applies query.
func endpoint(base, path string, query url.Values) (*url.URL, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	u = u.JoinPath(path)
	u.RawQuery = query.Encode()
	return u, nil
}
