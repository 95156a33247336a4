package services

import (
	"context"
	"sort"
	"sync"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/ports"
)

type stubOrders struct {
	orders map[int64]*domain.DeliveryOrder
}

func (s *stubOrders) FindByIDs(_ context.Context, ids []int64) ([]*domain.DeliveryOrder, error) {
	out := make([]*domain.DeliveryOrder, 0, len(ids))
	for _, id := range ids {
		if o, ok := s.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

type memRoutes struct {
	mu     sync.Mutex
	nextID int64
	routes map[int64]*domain.Route
}

func newMemRoutes() *memRoutes {
	return &memRoutes{routes: make(map[int64]*domain.Route)}
}

func (m *memRoutes) SaveRoute(_ context.Context, route *domain.Route) (*domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	route.RouteID = m.nextID
	stored := *route
	stored.Stops = append([]domain.RouteStop(nil), route.Stops...)
	m.routes[route.RouteID] = &stored
	return route, nil
}

func (m *memRoutes) FindRoute(_ context.Context, id int64) (*domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	route, ok := m.routes[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "route", IDs: []int64{id}}
	}
	out := *route
	out.Stops = append([]domain.RouteStop(nil), route.Stops...)
	sort.Slice(out.Stops, func(i, j int) bool { return out.Stops[i].Sequence < out.Stops[j].Sequence })
	return &out, nil
}

func (m *memRoutes) ListRoutes(_ context.Context, filter ports.RouteFilter) ([]*domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Route, 0, len(m.routes))
	for _, route := range m.routes {
		if filter.CourierID != nil {
			if route.CourierID == nil || *route.CourierID != *filter.CourierID {
				continue
			}
		}
		out = append(out, route)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RouteID > out[j].RouteID })
	return out, nil
}

type memShipments struct {
	mu      sync.Mutex
	nextID  int64
	byOrder map[int64]*domain.Shipment
}

func newMemShipments() *memShipments {
	return &memShipments{byOrder: make(map[int64]*domain.Shipment)}
}

func (m *memShipments) FindByOrder(_ context.Context, orderID int64) (*domain.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byOrder[orderID]
	if !ok {
		return nil, nil
	}
	out := *s
	return &out, nil
}

func (m *memShipments) Upsert(_ context.Context, shipment *domain.Shipment) (*domain.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byOrder[shipment.OrderID]; ok {
		shipment.ShipmentID = existing.ShipmentID
	} else {
		m.nextID++
		shipment.ShipmentID = m.nextID
	}
	stored := *shipment
	m.byOrder[shipment.OrderID] = &stored
	return shipment, nil
}

func (m *memShipments) get(orderID int64) *domain.Shipment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byOrder[orderID]
}

func (m *memShipments) put(s *domain.Shipment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byOrder[s.OrderID] = s
}

type stubCouriers struct {
	couriers map[int64]*domain.Courier
}

func (s *stubCouriers) FindByID(_ context.Context, id int64) (*domain.Courier, error) {
	if s.couriers == nil {
		return nil, nil
	}
	return s.couriers[id], nil
}

type stubOptimizer struct {
	mu      sync.Mutex
	result  *ports.OptimizeResult
	err     error
	calls   int
	lastReq ports.OptimizeRequest
}

func (s *stubOptimizer) Optimize(_ context.Context, req ports.OptimizeRequest) (*ports.OptimizeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubDistance struct {
	mu     sync.Mutex
	result ports.DistanceResult
	err    error
	calls  int
}

func (s *stubDistance) Distance(_ context.Context, _, _ domain.Coordinate, _ string) (ports.DistanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return ports.DistanceResult{}, s.err
	}
	return s.result, nil
}

func intPtr(v int) *int           { return &v }
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }

// waypointAt builds a waypoint with an optional visit index and
// original-index hint (nil to omit).
func waypointAt(lat, lng float64, visit, hint *int) ports.Waypoint {
	return ports.Waypoint{
		Location:      domain.Coordinate{Lat: lat, Lng: lng},
		WaypointIndex: visit,
		OriginalIndex: hint,
	}
}
