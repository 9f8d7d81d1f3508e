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
	"strings"
	"time"

	"fleet-route-service/internal/model"
)

// ErrNoRoute means the routing engine could not compute a driving route
// for the given waypoints.
var ErrNoRoute = errors.New("no route for given waypoints")

type RouteStep struct {
	Name            string  `json:"name"`
	DistanceMeters  float64 `json:"distance"`
	DurationSeconds float64 `json:"duration"`
}

type RouteLeg struct {
	Steps []RouteStep `json:"steps"`
}

// DrivingRoute is the first candidate route of an OSRM response. Geometry is
// passed through untouched.
type DrivingRoute struct {
	DistanceMeters  float64         `json:"distance"`
	DurationSeconds float64         `json:"duration"`
	Geometry        json.RawMessage `json:"geometry"`
	Legs            []RouteLeg      `json:"legs"`
}

type osrmResponse struct {
	Code   string         `json:"code"`
	Routes []DrivingRoute `json:"routes"`
}

// RoutingClient requests driving routes from an OSRM-style engine. Each call
// is a single blocking request: no retry, no caching.
type RoutingClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRoutingClient(baseURL string) *RoutingClient {
	return &RoutingClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Route fetches a driving route through the waypoints in order, with full
// geometry and turn-by-turn steps. OSRM expects lon,lat pairs in the path.
func (c *RoutingClient) Route(ctx context.Context, waypoints []model.Waypoint) (*DrivingRoute, error) {
	coords := make([]string, 0, len(waypoints))
	for _, wp := range waypoints {
		coords = append(coords,
			strconv.FormatFloat(wp.Lon, 'f', -1, 64)+","+strconv.FormatFloat(wp.Lat, 'f', -1, 64))
	}

	u, err := url.Parse(c.baseURL + "/route/v1/driving/" + strings.Join(coords, ";"))
	if err != nil {
		return nil, fmt.Errorf("invalid router URL: %w", err)
	}

	q := u.Query()
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	q.Set("steps", "true")
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

	var decoded osrmResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if decoded.Code != "Ok" {
		return nil, ErrNoRoute
	}
	if len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("router returned Ok with no routes")
	}

	return &decoded.Routes[0], nil
}
