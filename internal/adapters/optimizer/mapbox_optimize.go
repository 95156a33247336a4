package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/platform/obs"
	"lastmile-routing-service/internal/ports"
)

type tripsResponse struct {
	Code  string `json:"code"`
	UUID  string `json:"uuid"`
	Trips []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
		Legs     []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"legs"`
	} `json:"trips"`
	Waypoints []struct {
		Location      []float64 `json:"location"`
		WaypointIndex *int      `json:"waypoint_index"`
		OriginalIndex *int      `json:"original_index"`
	} `json:"waypoints"`
}

// Optimize submits the origin plus stops to the Optimized Trips
// endpoint and returns the validated result. Malformed provider
// payloads are rejected here rather than propagated into the resolver.
func (m *MapboxClient) Optimize(ctx context.Context, req ports.OptimizeRequest) (_ *ports.OptimizeResult, err error) {
	defer obs.Time(ctx, "mapbox.Optimize")(&err)

	if len(req.Stops) == 0 {
		return nil, errors.New("mapbox optimize: at least one stop is required")
	}

	coords := make([]string, 0, 1+len(req.Stops))
	coords = append(coords, fmt.Sprintf("%f,%f", req.Origin.Lng, req.Origin.Lat))
	for _, s := range req.Stops {
		coords = append(coords, fmt.Sprintf("%f,%f", s.Lng, s.Lat))
	}

	query := url.Values{}
	query.Set("roundtrip", fmt.Sprintf("%t", req.RoundTrip))
	query.Set("source", "first")
	query.Set("destination", "any")
	query.Set("geometries", "polyline")
	query.Set("overview", "full")
	query.Set("access_token", m.token)

	endpoint := fmt.Sprintf(
		"%s/optimized-trips/v1/mapbox/%s/%s?%s",
		m.baseURL, req.Profile, strings.Join(coords, ";"), query.Encode(),
	)

	resp, err := m.doWithRetry(ctx, func() (*http.Request, error) {
		return m.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("mapbox optimize: request: %w", err)
	}
	defer resp.Body.Close()

	var tr tripsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("mapbox optimize: decode response: %w", err)
	}

	return toOptimizeResult(&tr)
}

// toOptimizeResult validates the decoded payload and converts it to
// the port contract.
func toOptimizeResult(tr *tripsResponse) (*ports.OptimizeResult, error) {
	if tr.Code != "Ok" {
		return nil, fmt.Errorf("mapbox optimize: provider responded code=%q", tr.Code)
	}
	if len(tr.Trips) == 0 {
		return nil, errors.New("mapbox optimize: provider returned no trips")
	}

	trip := tr.Trips[0]

	legs := make([]ports.Leg, 0, len(trip.Legs))
	for _, l := range trip.Legs {
		legs = append(legs, ports.Leg{
			DistanceMeters:  l.Distance,
			DurationSeconds: l.Duration,
		})
	}

	waypoints := make([]ports.Waypoint, 0, len(tr.Waypoints))
	for i, w := range tr.Waypoints {
		if len(w.Location) != 2 {
			return nil, fmt.Errorf("mapbox optimize: waypoint %d has malformed location", i)
		}
		loc := domain.Coordinate{Lat: w.Location[1], Lng: w.Location[0]}
		if !loc.IsFinite() {
			return nil, fmt.Errorf("mapbox optimize: waypoint %d has non-finite location", i)
		}
		waypoints = append(waypoints, ports.Waypoint{
			Location:      loc,
			WaypointIndex: w.WaypointIndex,
			OriginalIndex: w.OriginalIndex,
		})
	}

	return &ports.OptimizeResult{
		Waypoints:   waypoints,
		Legs:        legs,
		DistanceKm:  math.Round(trip.Distance/1000*100) / 100,
		DurationMin: math.Round(trip.Duration/60*100) / 100,
		Geometry:    trip.Geometry,
		RequestID:   tr.UUID,
	}, nil
}
