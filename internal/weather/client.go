package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

var ErrMissingAPIKey = errors.New("weather API key is not configured (set OPENWEATHER_API_KEY)")

// Units as accepted by the provider.
const (
	Metric   = "metric"
	Imperial = "imperial"
	Standard = "standard"
)

// Report values are in Units: metric is °C and m/s, imperial °F and mph,
// standard K and m/s.
type Report struct {
	City        string  `json:"city"`
	Description string  `json:"description"`
	Temp        float64 `json:"temp"`
	WindSpeed   float64 `json:"wind_speed"`
	Humidity    int     `json:"humidity"`
	Units       string  `json:"units"`
}

// TempSymbol is the temperature unit suffix for the report's units.
func (r *Report) TempSymbol() string {
	switch r.Units {
	case Imperial:
		return "°F"
	case Standard:
		return "K"
	default:
		return "°C"
	}
}

func (r *Report) WindSymbol() string {
	if r.Units == Imperial {
		return "mph"
	}
	return "m/s"
}

type (
	currentResponse struct {
		Name    string `json:"name"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}

	errorResponse struct {
		Message string `json:"message"`
	}
)

type Client struct {
	baseURL    string
	apiKey     string
	units      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		units:   Metric,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// WithUnits sets the units requested from the provider. An empty value keeps
// metric.
func (c *Client) WithUnits(units string) *Client {
	if units != "" {
		c.units = units
	}
	return c
}

// Current fetches the current conditions for city in the client's units.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("units", c.units)
	q.Set("appid", c.apiKey)
	endpoint := fmt.Sprintf("%s/weather?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	c.logger.Debug("fetching weather", zap.String("city", city))
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var errRes errorResponse
		if err := json.NewDecoder(res.Body).Decode(&errRes); err != nil || errRes.Message == "" {
			return nil, fmt.Errorf("weather service returned %s", res.Status)
		}
		return nil, fmt.Errorf("%s", errRes.Message)
	}

	var cur currentResponse
	if err := json.NewDecoder(res.Body).Decode(&cur); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	report := &Report{
		City:      cur.Name,
		Temp:      cur.Main.Temp,
		WindSpeed: cur.Wind.Speed,
		Humidity:  cur.Main.Humidity,
		Units:     c.units,
	}
	if len(cur.Weather) > 0 {
		report.Description = cur.Weather[0].Description
	}
	return report, nil
}

// Watch calls fn with a fresh report every interval until ctx is done. A
// failed fetch is passed to fn as well and does not stop the loop.
func (c *Client) Watch(ctx context.Context, city string, interval time.Duration, fn func(*Report, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		fn(c.Current(ctx, city))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
