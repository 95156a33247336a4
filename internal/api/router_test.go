package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lastmile-routing-service/internal/api"
	"lastmile-routing-service/internal/api/dto"
	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/ports"
	"lastmile-routing-service/internal/services"
)

type fakeOrders map[int64]*domain.DeliveryOrder

func (f fakeOrders) FindByIDs(_ context.Context, ids []int64) ([]*domain.DeliveryOrder, error) {
	out := make([]*domain.DeliveryOrder, 0, len(ids))
	for _, id := range ids {
		if o, ok := f[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeRoutes struct {
	nextID int64
	byID   map[int64]*domain.Route
}

func (f *fakeRoutes) SaveRoute(_ context.Context, route *domain.Route) (*domain.Route, error) {
	f.nextID++
	route.RouteID = f.nextID
	f.byID[route.RouteID] = route
	return route, nil
}

func (f *fakeRoutes) FindRoute(_ context.Context, id int64) (*domain.Route, error) {
	route, ok := f.byID[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "route", IDs: []int64{id}}
	}
	return route, nil
}

func (f *fakeRoutes) ListRoutes(_ context.Context, filter ports.RouteFilter) ([]*domain.Route, error) {
	out := make([]*domain.Route, 0, len(f.byID))
	for _, route := range f.byID {
		if filter.CourierID != nil {
			if route.CourierID == nil || *route.CourierID != *filter.CourierID {
				continue
			}
		}
		out = append(out, route)
	}
	return out, nil
}

type fakeShipments struct{}

func (fakeShipments) FindByOrder(context.Context, int64) (*domain.Shipment, error) { return nil, nil }
func (fakeShipments) Upsert(_ context.Context, s *domain.Shipment) (*domain.Shipment, error) {
	return s, nil
}

type fakeCouriers map[int64]*domain.Courier

func (f fakeCouriers) FindByID(_ context.Context, id int64) (*domain.Courier, error) {
	return f[id], nil
}

type fakeOptimizer struct{}

func (fakeOptimizer) Optimize(_ context.Context, req ports.OptimizeRequest) (*ports.OptimizeResult, error) {
	zero := 0
	waypoints := []ports.Waypoint{{
		Location:      req.Origin,
		WaypointIndex: &zero,
		OriginalIndex: &zero,
	}}
	legs := make([]ports.Leg, 0, len(req.Stops))
	for i, s := range req.Stops {
		visit := i + 1
		hint := i + 1
		waypoints = append(waypoints, ports.Waypoint{
			Location:      domain.Coordinate{Lat: s.Lat, Lng: s.Lng},
			WaypointIndex: &visit,
			OriginalIndex: &hint,
		})
		legs = append(legs, ports.Leg{DistanceMeters: 1000, DurationSeconds: 120})
	}
	return &ports.OptimizeResult{
		Waypoints:   waypoints,
		Legs:        legs,
		DistanceKm:  3.5,
		DurationMin: 12,
		Geometry:    "poly",
		RequestID:   "prov-1",
	}, nil
}

type fakeDistance struct{}

func (fakeDistance) Distance(context.Context, domain.Coordinate, domain.Coordinate, string) (ports.DistanceResult, error) {
	return ports.DistanceResult{DistanceKm: 2.1, DurationMin: 6.5}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeRoutes) {
	t.Helper()

	orders := fakeOrders{
		10: {OrderID: 10, Destination: &domain.Coordinate{Lat: 12.10, Lng: -86.20}, AddressLabel: "Main St 1"},
		20: {OrderID: 20, Destination: &domain.Coordinate{Lat: 12.11, Lng: -86.21}, AddressLabel: "Main St 2"},
	}
	routes := &fakeRoutes{byID: make(map[int64]*domain.Route)}

	svc := services.NewRouteService(
		orders, routes, fakeShipments{}, fakeCouriers{5: {CourierID: 5, FullName: "Ada"}},
		fakeOptimizer{}, fakeDistance{},
		services.NewOriginResolver(12.136389, -86.251389),
		1,
		zap.NewNop(),
	)

	srv := httptest.NewServer(api.NewRouter(svc, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv, routes
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestCreateRouteEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"name": "morning", "courier_id": 5, "order_ids": [10, 20]}`
	resp, err := http.Post(srv.URL+"/routes", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got dto.RouteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "morning", got.Name)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "prov-1", got.ProviderRequestID)
	require.Len(t, got.Stops, 2)
	assert.Equal(t, 1, got.Stops[0].Sequence)
	assert.Equal(t, 2, got.Stops[1].Sequence)
}

func TestCreateRouteRejectsUnknownFields(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"order_ids": [10], "surprise": true}`
	resp, err := http.Post(srv.URL+"/routes", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateRouteRejectsEmptyOrderList(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/routes", "application/json", strings.NewReader(`{"order_ids": []}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateRouteRejectsOutOfRangeOrigin(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"order_ids": [10], "origin_lat": 95.0, "origin_lng": 0}`
	resp, err := http.Post(srv.URL+"/routes", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateRouteUnknownOrderIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/routes", "application/json", strings.NewReader(`{"order_ids": [999]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetRouteDriverOwnership(t *testing.T) {
	srv, routes := newTestServer(t)

	five := int64(5)
	_, err := routes.SaveRoute(context.Background(), &domain.Route{Name: "owned", CourierID: &five})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/routes/1", nil)
	req.Header.Set("X-Role", "driver")
	req.Header.Set("X-Courier-ID", "5")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Same route, different driver.
	req.Header.Set("X-Courier-ID", "6")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetRouteInvalidID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/routes/abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRouteMissingIs404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/routes/12345")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListRoutesEndpoint(t *testing.T) {
	srv, routes := newTestServer(t)

	_, err := routes.SaveRoute(context.Background(), &domain.Route{Name: "a"})
	require.NoError(t, err)
	_, err = routes.SaveRoute(context.Background(), &domain.Route{Name: "b"})
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/routes")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.ListRoutesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got.Routes, 2)
}

func TestRequestIDPassthrough(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "upstream-77")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "upstream-77", resp.Header.Get("X-Request-ID"))
}
