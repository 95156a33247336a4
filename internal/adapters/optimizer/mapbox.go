package optimizer

import (
	"errors"
	"net/http"
	"time"

	"lastmile-routing-service/internal/ports"
)

// MapboxClient implements RouteOptimizer and DistanceClient against the
// Mapbox Optimized Trips and Directions APIs.
//
// Point-to-point lookups consult a persistent distance cache before
// issuing external calls. The client is safe for concurrent use.
type MapboxClient struct {
	session *http.Client
	token   string
	baseURL string
	cache   ports.DistanceCache
}

// NewMapboxClient builds the provider client. cache may be nil to
// disable distance caching.
func NewMapboxClient(token string, cache ports.DistanceCache) (*MapboxClient, error) {
	if token == "" {
		return nil, errors.New("mapbox access token is empty")
	}

	return &MapboxClient{
		session: &http.Client{Timeout: 15 * time.Second},
		token:   token,
		baseURL: "https://api.mapbox.com",
		cache:   cache,
	}, nil
}
