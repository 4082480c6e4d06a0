package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrLocationDenied is returned when no location has been shared.
	ErrLocationDenied = errors.New("location permission denied: set location.lat/lon in config or COPDCARE_LAT/COPDCARE_LON")
	ErrMissingAPIKey  = errors.New("places API key is not configured (set GOOGLE_PLACES_API_KEY)")
)

type Place struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Rating   *float64 `json:"rating,omitempty"`
	PhotoRef string   `json:"photo_ref,omitempty"`
}

// Location is a shared device position. A nil *Location means the user has
// not granted access.
type Location struct {
	Lat float64
	Lon float64
}

type nearbyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name     string   `json:"name"`
		Vicinity string   `json:"vicinity"`
		Rating   *float64 `json:"rating"`
		Photos   []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// FindNearby lists places of category within radiusM metres of loc. No
// results is an empty list, not an error.
func (c *Client) FindNearby(ctx context.Context, loc *Location, radiusM int, category string) ([]Place, error) {
	if loc == nil {
		return nil, ErrLocationDenied
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("location", strconv.FormatFloat(loc.Lat, 'f', -1, 64)+","+strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(radiusM))
	q.Set("type", category)
	q.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/nearbysearch/json?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	c.logger.Debug("searching nearby places",
		zap.Float64("lat", loc.Lat), zap.Float64("lon", loc.Lon),
		zap.Int("radius", radiusM), zap.String("category", category))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places service returned %s", res.Status)
	}

	var body nearbyResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []Place{}, nil
	default:
		if body.ErrorMessage != "" {
			return nil, fmt.Errorf("%s", body.ErrorMessage)
		}
		return nil, fmt.Errorf("places lookup failed: %s", body.Status)
	}

	out := make([]Place, 0, len(body.Results))
	for _, r := range body.Results {
		p := Place{Name: r.Name, Address: r.Vicinity, Rating: r.Rating}
		if len(r.Photos) > 0 {
			p.PhotoRef = r.Photos[0].PhotoReference
		}
		out = append(out, p)
	}
	return out, nil
}
