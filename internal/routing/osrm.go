// Package routing fetches drivable routes from an OSRM server.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// DefaultBaseURL is the public OSRM demo server.
const DefaultBaseURL = "https://router.project-osrm.org"

// OSRMClient fetches driving routes. It satisfies the engine's route
// provider contract: failures are logged and surface as an empty route that
// the scheduler retries on a later tick.
type OSRMClient struct {
	BaseURL string
	Client  *http.Client
}

// NewOSRMClient returns a client for the given OSRM base URL.
func NewOSRMClient(baseURL string) *OSRMClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OSRMClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// RoutePoints returns the waypoints of a drivable path between origin and
// destination, or an empty slice when no route could be fetched.
func (c *OSRMClient) RoutePoints(ctx context.Context, origin, destination models.Location) []models.Location {
	url := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		c.BaseURL, origin.Lng, origin.Lat, destination.Lng, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.WithError(err).Warn("osrm request build failed")
		return nil
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		log.WithError(err).Warn("osrm route fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("osrm returned non-200")
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("osrm response read failed")
		return nil
	}

	var obj struct {
		Routes []struct {
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"routes"`
	}
	if err := json.Unmarshal(body, &obj); err != nil {
		log.WithError(err).Warn("osrm response decode failed")
		return nil
	}
	if len(obj.Routes) == 0 {
		return nil
	}

	coords := obj.Routes[0].Geometry.Coordinates
	points := make([]models.Location, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		// OSRM emits [lng, lat] pairs.
		points = append(points, models.Location{Lat: c[1], Lng: c[0]})
	}
	return points
}
