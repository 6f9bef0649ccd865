// Package weather fetches current conditions for destination coordinates
// from OpenWeatherMap. Lookups are cached in Redis (30 minutes by default);
// a missing
// API key or a failed call degrades to a "not available" answer, never an
// error surfaced to the user.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultBaseURL  = "https://api.openweathermap.org/data/2.5"
	defaultCacheTTL = 30 * time.Minute
)

// Conditions is the slice of the OpenWeather answer the assistant reports.
type Conditions struct {
	Temperature  float64 `json:"temperature"`
	FeelsLike    float64 `json:"feels_like"`
	Humidity     int     `json:"humidity"`
	Description  string  `json:"description"`
	WindSpeed    float64 `json:"wind_speed"`
	VisibilityKm float64 `json:"visibility_km"`
	ObservedAt   int64   `json:"observed_at"`
}

// Client talks to OpenWeatherMap. The Redis client is optional; without it
// every lookup hits the API.
type Client struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewClient(apiKey string, rdb *redis.Client, cacheTTL time.Duration) *Client {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		rdb:      rdb,
		cacheTTL: cacheTTL,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

type openWeatherResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility int   `json:"visibility"`
	Dt         int64 `json:"dt"`
}

// Current returns the weather at the given coordinates, served from cache
// when a recent observation exists.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Conditions, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("weather lookups disabled: no API key")
	}

	cacheKey := fmt.Sprintf("weather:current:%.3f:%.3f", lat, lon)
	if c.rdb != nil {
		if data, err := c.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached Conditions
			if json.Unmarshal(data, &cached) == nil {
				return &cached, nil
			}
		}
	}

	url := fmt.Sprintf("%s/weather?lat=%f&lon=%f&appid=%s&units=metric", c.baseURL, lat, lon, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather error: status %d, body: %s", res.StatusCode, string(body))
	}

	var raw openWeatherResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	conditions := &Conditions{
		Temperature:  raw.Main.Temp,
		FeelsLike:    raw.Main.FeelsLike,
		Humidity:     raw.Main.Humidity,
		WindSpeed:    raw.Wind.Speed,
		VisibilityKm: float64(raw.Visibility) / 1000,
		ObservedAt:   raw.Dt,
	}
	if len(raw.Weather) > 0 {
		conditions.Description = raw.Weather[0].Description
	}

	if c.rdb != nil {
		if data, err := json.Marshal(conditions); err == nil {
			c.rdb.Set(ctx, cacheKey, data, c.cacheTTL)
		}
	}

	return conditions, nil
}
