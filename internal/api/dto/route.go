package dto

import "time"

// CreateRouteRequest is the caller-facing payload for route creation.
// Origin overrides and courier assignment are optional; validation of
// coordinate ranges happens before any external call.
type CreateRouteRequest struct {
	Name        string     `json:"name" validate:"max=120"`
	CourierID   *int64     `json:"courier_id" validate:"omitempty,min=1"`
	OrderIDs    []int64    `json:"order_ids" validate:"required,min=1,dive,min=1"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Profile     string     `json:"profile" validate:"omitempty,oneof=driving driving-traffic walking cycling"`
	OriginLat   *float64   `json:"origin_lat" validate:"omitempty,gte=-90,lte=90"`
	OriginLng   *float64   `json:"origin_lng" validate:"omitempty,gte=-180,lte=180"`
	RoundTrip   bool       `json:"round_trip"`
}

type RouteStopResponse struct {
	OrderID      int64    `json:"order_id"`
	Sequence     int      `json:"sequence"`
	DistanceKm   *float64 `json:"distance_km"`
	DurationMin  *float64 `json:"duration_min"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	AddressLabel string   `json:"address_label"`
}

type RouteResponse struct {
	RouteID           int64               `json:"route_id"`
	Name              string              `json:"name"`
	CourierID         *int64              `json:"courier_id"`
	Status            string              `json:"status"`
	ScheduledAt       *time.Time          `json:"scheduled_at"`
	DistanceKm        float64             `json:"distance_km"`
	DurationMin       float64             `json:"duration_min"`
	Geometry          string              `json:"geometry"`
	ProviderRequestID string              `json:"provider_request_id"`
	Profile           string              `json:"profile"`
	OriginLat         float64             `json:"origin_lat"`
	OriginLng         float64             `json:"origin_lng"`
	CreatedAt         time.Time           `json:"created_at"`
	Stops             []RouteStopResponse `json:"stops"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}
