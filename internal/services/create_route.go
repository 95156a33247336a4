package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/platform/obs"
	"lastmile-routing-service/internal/ports"
)

// RouteService orchestrates the route optimization assignment engine:
// stop validation, the external optimization call, waypoint assignment,
// sequencing, persistence and shipment synchronization.
type RouteService struct {
	orders    ports.OrderRepository
	routes    ports.RouteRepository
	shipments ports.ShipmentRepository
	couriers  ports.CourierRepository
	optimizer ports.RouteOptimizer
	distance  ports.DistanceClient
	origin    *OriginResolver

	syncWorkers int
	logger      *zap.Logger
}

// NewRouteService wires the engine's collaborators. syncWorkers bounds
// the shipment synchronization fan-out (distance-provider rate limits).
func NewRouteService(
	orders ports.OrderRepository,
	routes ports.RouteRepository,
	shipments ports.ShipmentRepository,
	couriers ports.CourierRepository,
	optimizer ports.RouteOptimizer,
	distance ports.DistanceClient,
	origin *OriginResolver,
	syncWorkers int,
	logger *zap.Logger,
) *RouteService {
	if syncWorkers < 1 {
		syncWorkers = 1
	}
	return &RouteService{
		orders:      orders,
		routes:      routes,
		shipments:   shipments,
		couriers:    couriers,
		optimizer:   optimizer,
		distance:    distance,
		origin:      origin,
		syncWorkers: syncWorkers,
		logger:      logger,
	}
}

// CreateRouteRequest carries caller input for one route creation.
type CreateRouteRequest struct {
	Name        string
	CourierID   *int64
	OrderIDs    []int64
	ScheduledAt *time.Time
	Profile     string
	OriginLat   *float64
	OriginLng   *float64
	RoundTrip   bool
}

// CreateRoute runs the full pipeline and returns the persisted route.
//
// Validation and not-found failures abort before any external call.
// Provider-contract failures abort after the optimization call but
// before persistence. Shipment synchronization runs strictly after the
// route is durably persisted; its failures are logged per order and do
// not undo the already-successful creation.
func (s *RouteService) CreateRoute(ctx context.Context, req CreateRouteRequest) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "route.Create")(&err)

	profile := req.Profile
	if profile == "" {
		profile = domain.DefaultProfile
	}
	if !domain.ValidProfile(profile) {
		return nil, domain.NewValidationError("unsupported travel profile %q", req.Profile)
	}

	if req.CourierID != nil {
		courier, err := s.couriers.FindByID(ctx, *req.CourierID)
		if err != nil {
			return nil, fmt.Errorf("create route: find courier: %w", err)
		}
		if courier == nil {
			return nil, &domain.NotFoundError{Resource: "courier", IDs: []int64{*req.CourierID}}
		}
	}

	stops, err := ValidateStopSet(ctx, req.OrderIDs, s.orders)
	if err != nil {
		return nil, err
	}

	origin, err := s.origin.Resolve(req.OriginLat, req.OriginLng)
	if err != nil {
		return nil, err
	}

	optStops := make([]ports.OptimizeStop, 0, len(stops))
	for _, stop := range stops {
		optStops = append(optStops, ports.OptimizeStop{
			Lat:        stop.Destination.Lat,
			Lng:        stop.Destination.Lng,
			Label:      stop.Label,
			ExternalID: fmt.Sprintf("%d", stop.Order.OrderID),
		})
	}

	result, err := s.optimizer.Optimize(ctx, ports.OptimizeRequest{
		Origin:    origin,
		Stops:     optStops,
		Profile:   profile,
		RoundTrip: req.RoundTrip,
	})
	if err != nil {
		return nil, fmt.Errorf("create route: optimize: %w", err)
	}

	assignments, err := ResolveAssignments(origin, stops, result, s.logger)
	if err != nil {
		return nil, err
	}

	route := &domain.Route{
		Name:              req.Name,
		CourierID:         req.CourierID,
		Status:            domain.RouteStatusPending,
		ScheduledAt:       req.ScheduledAt,
		DistanceKm:        result.DistanceKm,
		DurationMin:       result.DurationMin,
		Geometry:          result.Geometry,
		ProviderRequestID: result.RequestID,
		Profile:           profile,
		Origin:            origin,
		Stops:             buildStops(assignments),
	}
	if err := route.ValidateStops(); err != nil {
		return nil, fmt.Errorf("create route: sequence invariant: %w", err)
	}

	saved, err := s.routes.SaveRoute(ctx, route)
	if err != nil {
		return nil, fmt.Errorf("create route: persist route: %w", err)
	}

	s.syncShipments(ctx, saved, assignments)

	return s.routes.FindRoute(ctx, saved.RouteID)
}

// buildStops assigns 1-based contiguous sequence numbers in optimized
// order and converts leg metrics to km and minutes. Stops without a
// matching leg keep nil metrics; zero would read as "no travel".
func buildStops(assignments []Assignment) []domain.RouteStop {
	out := make([]domain.RouteStop, 0, len(assignments))
	for i, a := range assignments {
		stop := domain.RouteStop{
			OrderID:      a.Stop.Order.OrderID,
			Sequence:     i + 1,
			Destination:  a.Stop.Destination,
			AddressLabel: a.Stop.Label,
		}
		if a.Leg != nil {
			km := round2(a.Leg.DistanceMeters / 1000)
			min := round2(a.Leg.DurationSeconds / 60)
			stop.DistanceKm = &km
			stop.DurationMin = &min
		}
		out = append(out, stop)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
