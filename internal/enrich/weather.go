package enrich

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkordes/trip-itinerary/internal/domain"
)

// WeatherClient fetches current conditions from OpenWeather in metric units.
type WeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewWeatherClient constructs a WeatherClient. An empty apiKey disables lookups.
func NewWeatherClient(baseURL, apiKey string, httpClient *http.Client, log *slog.Logger) *WeatherClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &WeatherClient{baseURL: baseURL, apiKey: apiKey, httpClient: httpClient, log: log}
}

type owmCurrent struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Current returns the weather in city right now.
func (c *WeatherClient) Current(ctx context.Context, city string) (domain.Weather, bool) {
	if c.apiKey == "" || strings.TrimSpace(city) == "" {
		return domain.Weather{}, false
	}

	u, err := endpoint(c.baseURL, "/data/2.5/weather", url.Values{
		"q":     {city},
		"appid": {c.apiKey},
		"units": {"metric"},
	})
	if err != nil {
		c.log.DebugContext(ctx, "weather lookup skipped", "city", city, "error", err)
		return domain.Weather{}, false
	}

	var resp owmCurrent
	if err := getJSON(ctx, c.httpClient, u, &resp); err != nil {
		c.log.DebugContext(ctx, "weather lookup failed", "city", city, "error", err)
		return domain.Weather{}, false
	}
	if len(resp.Weather) == 0 || resp.Main == nil {
		return domain.Weather{}, false
	}

	w := resp.Weather[0]
	return domain.Weather{
		Main:        w.Main,
		Description: w.Description,
		TempC:       int(math.Round(resp.Main.Temp)),
		Icon:        weatherIcon(w.Main),
	}, true
}

func weatherIcon(main string) string {
	switch main {
	case "Clear":
		return "☀️"
	case "Clouds":
		return "☁️"
	case "Rain":
		return "🌧️"
	default:
		return "🌤️"
	}
}
