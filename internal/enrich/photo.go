package enrich

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// PhotoClient finds a representative photo of a city via Unsplash search.
type PhotoClient struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewPhotoClient constructs a PhotoClient. An empty accessKey disables lookups.
func NewPhotoClient(baseURL, accessKey string, httpClient *http.Client, log *slog.Logger) *PhotoClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &PhotoClient{baseURL: baseURL, accessKey: accessKey, httpClient: httpClient, log: log}
}

type unsplashSearch struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// CityPhoto returns the URL of the first search result for city.
func (c *PhotoClient) CityPhoto(ctx context.Context, city string) (string, bool) {
	if c.accessKey == "" || strings.TrimSpace(city) == "" {
		return "", false
	}

	u, err := endpoint(c.baseURL, "/search/photos", url.Values{
		"query":     {city},
		"per_page":  {"1"},
		"client_id": {c.accessKey},
	})
	if err != nil {
		c.log.DebugContext(ctx, "photo lookup skipped", "city", city, "error", err)
		return "", false
	}

	var resp unsplashSearch
	if err := getJSON(ctx, c.httpClient, u, &resp); err != nil {
		c.log.DebugContext(ctx, "photo lookup failed", "city", city, "error", err)
		return "", false
	}
	if len(resp.Results) == 0 || resp.Results[0].URLs.Regular == "" {
		return "", false
	}
	return resp.Results[0].URLs.Regular, true
}
