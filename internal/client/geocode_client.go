package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoMatch means the address search returned zero results.
var ErrNoMatch = errors.New("address not found")

type GeocodeResult struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// nominatimMatch mirrors one entry of the address-search response. The
// service returns coordinates as strings.
type nominatimMatch struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// GeocodeClient resolves free-text addresses against a Nominatim-style
// search endpoint. Each call is independent: no retry, no caching.
type GeocodeClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeocodeClient(baseURL string) *GeocodeClient {
	return &GeocodeClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search looks up a single best match for the address.
func (c *GeocodeClient) Search(ctx context.Context, address string) (*GeocodeResult, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("invalid geocoder URL: %w", err)
	}

	q := u.Query()
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var matches []nominatimMatch
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(matches) == 0 {
		return nil, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(matches[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", matches[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(matches[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", matches[0].Lon, err)
	}

	return &GeocodeResult{
		Lat:         lat,
		Lon:         lon,
		DisplayName: matches[0].DisplayName,
	}, nil
}
