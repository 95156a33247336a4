package services

import (
	"lastmile-routing-service/internal/domain"
)

// OriginResolver derives the route origin for a request: an explicit
// override wins, otherwise the process-wide configured default applies.
// It has no side effects.
type OriginResolver struct {
	defaultOrigin domain.Coordinate
}

// NewOriginResolver builds a resolver around the configured default
// origin. Pass NaN components when no default is configured; requests
// without an override will then fail with a ValidationError.
func NewOriginResolver(defaultLat, defaultLng float64) *OriginResolver {
	return &OriginResolver{
		defaultOrigin: domain.Coordinate{Lat: defaultLat, Lng: defaultLng},
	}
}

// Resolve returns the concrete origin for one route-creation call.
func (r *OriginResolver) Resolve(overrideLat, overrideLng *float64) (domain.Coordinate, error) {
	origin := r.defaultOrigin
	if overrideLat != nil {
		origin.Lat = *overrideLat
	}
	if overrideLng != nil {
		origin.Lng = *overrideLng
	}

	if !origin.IsFinite() {
		return domain.Coordinate{}, domain.NewValidationError(
			"no origin coordinate available: configure ROUTING_ORIGIN_LAT and ROUTING_ORIGIN_LNG or send an override in the request")
	}

	return origin, nil
}
