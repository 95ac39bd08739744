package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"station-advisor-backend/config"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Element is a single origin-to-destination travel estimate. OK is false when
// the provider could not route the pair, in which case the other fields are
// zero.
type Element struct {
	OK              bool
	DurationSeconds int
	DurationText    string
	DistanceMeters  int
	DistanceText    string
}

// Client queries a Distance Matrix style HTTP API for travel estimates.
type Client struct {
	cfg    *config.DistanceConfig
	client *http.Client
}

// NewClient creates a distance client from the given configuration.
func NewClient(cfg *config.DistanceConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Matrix returns one travel estimate per destination, in destination order.
// The whole batch is a single upstream request. A failed pair yields an
// Element with OK=false rather than an error; only transport and API level
// failures are returned as errors.
func (c *Client) Matrix(ctx context.Context, origin Coordinate, dests []Coordinate) ([]Element, error) {
	if len(dests) == 0 {
		return []Element{}, nil
	}

	params := url.Values{}
	params.Set("origins", formatCoordinate(origin))
	params.Set("destinations", joinCoordinates(dests))
	params.Set("mode", c.cfg.Mode)
	params.Set("key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build distance matrix request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("distance matrix API returned status %d", resp.StatusCode)
	}

	var body matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode distance matrix response: %w", err)
	}
	if body.Status != "OK" {
		if body.ErrorMessage != "" {
			return nil, fmt.Errorf("distance matrix API error: %s (%s)", body.Status, body.ErrorMessage)
		}
		return nil, fmt.Errorf("distance matrix API error: %s", body.Status)
	}
	if len(body.Rows) == 0 {
		return nil, fmt.Errorf("distance matrix response has no rows")
	}

	elements := make([]Element, 0, len(dests))
	for _, el := range body.Rows[0].Elements {
		if el.Status != "OK" {
			elements = append(elements, Element{})
			continue
		}
		elements = append(elements, Element{
			OK:              true,
			DurationSeconds: el.Duration.Value,
			DurationText:    el.Duration.Text,
			DistanceMeters:  el.Distance.Value,
			DistanceText:    el.Distance.Text,
		})
	}
	return elements, nil
}

func formatCoordinate(c Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

func joinCoordinates(coords []Coordinate) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = formatCoordinate(c)
	}
	return strings.Join(parts, "|")
}
