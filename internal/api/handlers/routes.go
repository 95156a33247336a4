package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"lastmile-routing-service/internal/api/dto"
	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/services"
)

// RouteHandler exposes the route optimization endpoints.
type RouteHandler struct {
	Service  *services.RouteService
	Validate *validator.Validate
}

func NewRouteHandler(service *services.RouteService) *RouteHandler {
	return &RouteHandler{
		Service:  service,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create runs the full optimization pipeline for the requested orders.
func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	route, err := h.Service.CreateRoute(r.Context(), services.CreateRouteRequest{
		Name:        strings.TrimSpace(req.Name),
		CourierID:   req.CourierID,
		OrderIDs:    req.OrderIDs,
		ScheduledAt: req.ScheduledAt,
		Profile:     req.Profile,
		OriginLat:   req.OriginLat,
		OriginLng:   req.OriginLng,
		RoundTrip:   req.RoundTrip,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toRouteResponse(route))
}

// Get returns one route; drivers may only fetch their own.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	routeID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "route id must be an integer")
		return
	}

	route, err := h.Service.GetRoute(r.Context(), routeID, identityFrom(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(route))
}

// List returns the routes visible to the requesting identity.
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Service.ListRoutes(r.Context(), identityFrom(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, route := range routes {
		res.Routes = append(res.Routes, toRouteResponse(route))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// identityFrom reads the identity asserted by the upstream auth
// gateway. Authentication itself is outside this service; only the
// ownership comparison lives here.
func identityFrom(r *http.Request) domain.Identity {
	identity := domain.Identity{Role: strings.TrimSpace(r.Header.Get("X-Role"))}
	if raw := strings.TrimSpace(r.Header.Get("X-Courier-ID")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			identity.CourierID = &id
		}
	}
	return identity
}

func toRouteResponse(route *domain.Route) dto.RouteResponse {
	stops := make([]dto.RouteStopResponse, 0, len(route.Stops))
	for _, s := range route.Stops {
		stops = append(stops, dto.RouteStopResponse{
			OrderID:      s.OrderID,
			Sequence:     s.Sequence,
			DistanceKm:   s.DistanceKm,
			DurationMin:  s.DurationMin,
			Lat:          s.Destination.Lat,
			Lng:          s.Destination.Lng,
			AddressLabel: s.AddressLabel,
		})
	}

	return dto.RouteResponse{
		RouteID:           route.RouteID,
		Name:              route.Name,
		CourierID:         route.CourierID,
		Status:            route.Status,
		ScheduledAt:       route.ScheduledAt,
		DistanceKm:        route.DistanceKm,
		DurationMin:       route.DurationMin,
		Geometry:          route.Geometry,
		ProviderRequestID: route.ProviderRequestID,
		Profile:           route.Profile,
		OriginLat:         route.Origin.Lat,
		OriginLng:         route.Origin.Lng,
		CreatedAt:         route.CreatedAt,
		Stops:             stops,
	}
}
