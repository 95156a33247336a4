package optimizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/platform/obs"
	"lastmile-routing-service/internal/ports"
)

type directionsResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Distance returns point-to-point travel metrics from the Directions
// endpoint, consulting the persistent cache first.
func (m *MapboxClient) Distance(ctx context.Context, from, to domain.Coordinate, profile string) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "mapbox.Distance")(&err)

	if !from.IsFinite() || !to.IsFinite() {
		return ports.DistanceResult{}, errors.New("mapbox distance: coordinates must be finite")
	}
	if profile == "" {
		profile = domain.DefaultProfile
	}

	if m.cache != nil {
		cached, ok, err := m.cache.Get(ctx, from, to, profile)
		if err != nil {
			return ports.DistanceResult{}, fmt.Errorf("mapbox distance: cache read: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	query := url.Values{}
	query.Set("overview", "false")
	query.Set("access_token", m.token)

	endpoint := fmt.Sprintf(
		"%s/directions/v5/mapbox/%s/%f,%f;%f,%f?%s",
		m.baseURL, profile, from.Lng, from.Lat, to.Lng, to.Lat, query.Encode(),
	)

	resp, err := m.doWithRetry(ctx, func() (*http.Request, error) {
		return m.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("mapbox distance: request: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.DistanceResult{}, fmt.Errorf("mapbox distance: decode response: %w", err)
	}

	if dr.Code != "Ok" {
		return ports.DistanceResult{}, fmt.Errorf("mapbox distance: provider responded code=%q", dr.Code)
	}
	if len(dr.Routes) == 0 {
		return ports.DistanceResult{}, errors.New("mapbox distance: provider returned no routes")
	}

	result := ports.DistanceResult{
		DistanceKm:  dr.Routes[0].Distance / 1000,
		DurationMin: dr.Routes[0].Duration / 60,
	}

	if m.cache != nil {
		if err := m.cache.Put(ctx, from, to, profile, result); err != nil {
			zap.L().Warn("distance cache write failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.Error(err),
			)
		}
	}

	return result, nil
}
