// Package neows talks to the NASA Near Earth Object Web Service and maps
// its responses onto catalog types.
package neows

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/catalog"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
)

const dateLayout = "2006-01-02"

// Client implements catalog.Source using the NASA NeoWs REST API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a NeoWs catalog client.
func NewClient(apiKey string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.nasa.gov/neo/rest/v1",
		logger:  logger,
		metrics: metrics,
	}
}

// Feed returns objects with close approaches inside [start, end]. NeoWs
// caps the window at 7 days.
func (c *Client) Feed(ctx context.Context, start, end time.Time) ([]catalog.Asteroid, error) {
	params := url.Values{
		"start_date": {start.Format(dateLayout)},
		"end_date":   {end.Format(dateLayout)},
		"api_key":    {c.apiKey},
	}

	var feed feedResponse
	if err := c.doRequest(ctx, c.baseURL+"/feed?"+params.Encode(), "feed", &feed); err != nil {
		return nil, err
	}

	var asteroids []catalog.Asteroid
	for _, day := range feed.NearEarthObjects {
		for _, obj := range day {
			a, err := obj.toAsteroid()
			if err != nil {
				c.logger.Warn("skipping malformed feed object", "id", obj.ID, "error", err)
				continue
			}
			asteroids = append(asteroids, a)
		}
	}

	catalog.SortByMissDistance(asteroids)
	return asteroids, nil
}

// Lookup returns a single object by its NeoWs ID.
func (c *Client) Lookup(ctx context.Context, id string) (catalog.Asteroid, error) {
	params := url.Values{
		"api_key": {c.apiKey},
	}

	var obj neoObject
	if err := c.doRequest(ctx, c.baseURL+"/neo/"+url.PathEscape(id)+"?"+params.Encode(), "lookup", &obj); err != nil {
		return catalog.Asteroid{}, err
	}

	return obj.toAsteroid()
}

func (c *Client) doRequest(ctx context.Context, fullURL, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.NeoAPIDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
	}
	if err != nil {
		c.countRequest(endpoint, "error")
		return fmt.Errorf("neows %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.countRequest(endpoint, "rate_limited")
		return fmt.Errorf("neows API rate limited: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		c.countRequest(endpoint, "error")
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("neows API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.countRequest(endpoint, "error")
		return fmt.Errorf("decode response: %w", err)
	}

	c.countRequest(endpoint, "success")
	return nil
}

func (c *Client) countRequest(endpoint, outcome string) {
	if c.metrics != nil {
		c.metrics.NeoRequests.WithLabelValues(endpoint, outcome).Inc()
	}
}

// NeoWs API response types. Velocity and distance arrive as quoted
// strings, not numbers.

type feedResponse struct {
	NearEarthObjects map[string][]neoObject `json:"near_earth_objects"`
}

type neoObject struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	AbsoluteMagnitudeH *float64 `json:"absolute_magnitude_h"`
	EstimatedDiameter  struct {
		Meters struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"meters"`
	} `json:"estimated_diameter"`
	IsPotentiallyHazardous bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData      []closeApproachIn `json:"close_approach_data"`
}

type closeApproachIn struct {
	CloseApproachDate string `json:"close_approach_date"`
	RelativeVelocity  struct {
		KilometersPerSecond string `json:"kilometers_per_second"`
	} `json:"relative_velocity"`
	MissDistance struct {
		Kilometers string `json:"kilometers"`
	} `json:"miss_distance"`
	OrbitingBody string `json:"orbiting_body"`
}

func (o neoObject) toAsteroid() (catalog.Asteroid, error) {
	a := catalog.Asteroid{
		ID:                     o.ID,
		Name:                   o.Name,
		AbsoluteMagnitudeH:     o.AbsoluteMagnitudeH,
		EstimatedDiameterMin:   o.EstimatedDiameter.Meters.Min,
		EstimatedDiameterMax:   o.EstimatedDiameter.Meters.Max,
		IsPotentiallyHazardous: o.IsPotentiallyHazardous,
	}

	for _, ca := range o.CloseApproachData {
		velocity, err := strconv.ParseFloat(ca.RelativeVelocity.KilometersPerSecond, 64)
		if err != nil {
			return catalog.Asteroid{}, fmt.Errorf("parse relative velocity %q: %w", ca.RelativeVelocity.KilometersPerSecond, err)
		}
		distance, err := strconv.ParseFloat(ca.MissDistance.Kilometers, 64)
		if err != nil {
			return catalog.Asteroid{}, fmt.Errorf("parse miss distance %q: %w", ca.MissDistance.Kilometers, err)
		}
		date, err := time.Parse(dateLayout, ca.CloseApproachDate)
		if err != nil {
			return catalog.Asteroid{}, fmt.Errorf("parse approach date %q: %w", ca.CloseApproachDate, err)
		}

		a.CloseApproaches = append(a.CloseApproaches, catalog.CloseApproach{
			Date:                date,
			RelativeVelocityKmS: velocity,
			MissDistanceKm:      distance,
			OrbitingBody:        ca.OrbitingBody,
		})
	}

	a.FillEnergyPreviews()
	return a, nil
}
