package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastmile-routing-service/internal/domain"
)

func seededRoutes(t *testing.T) *memRoutes {
	t.Helper()
	routes := newMemRoutes()
	ctx := context.Background()

	_, err := routes.SaveRoute(ctx, &domain.Route{Name: "north", CourierID: int64Ptr(5)})
	require.NoError(t, err)
	_, err = routes.SaveRoute(ctx, &domain.Route{Name: "south", CourierID: int64Ptr(6)})
	require.NoError(t, err)
	_, err = routes.SaveRoute(ctx, &domain.Route{Name: "unassigned"})
	require.NoError(t, err)
	return routes
}

func TestGetRouteAdminReadsAny(t *testing.T) {
	svc := newTestService(threeOrders(), seededRoutes(t), newMemShipments(), &stubCouriers{}, happyOptimizer(), &stubDistance{})

	route, err := svc.GetRoute(context.Background(), 2, domain.Identity{Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "south", route.Name)
}

func TestGetRouteDriverReadsOwn(t *testing.T) {
	svc := newTestService(threeOrders(), seededRoutes(t), newMemShipments(), &stubCouriers{}, happyOptimizer(), &stubDistance{})

	route, err := svc.GetRoute(context.Background(), 1, domain.Identity{Role: domain.RoleDriver, CourierID: int64Ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, "north", route.Name)
}

func TestGetRouteDriverDeniedForeignRoute(t *testing.T) {
	svc := newTestService(threeOrders(), seededRoutes(t), newMemShipments(), &stubCouriers{}, happyOptimizer(), &stubDistance{})

	_, err := svc.GetRoute(context.Background(), 2, domain.Identity{Role: domain.RoleDriver, CourierID: int64Ptr(5)})

	var authErr *domain.AuthorizationError
	require.ErrorAs(t, err, &authErr)
}

func TestGetRouteDriverDeniedUnassignedRoute(t *testing.T) {
	svc := newTestService(threeOrders(), seededRoutes(t), newMemShipments(), &stubCouriers{}, happyOptimizer(), &stubDistance{})

	_, err := svc.GetRoute(context.Background(), 3, domain.Identity{Role: domain.RoleDriver, CourierID: int64Ptr(5)})

	var authErr *domain.AuthorizationError
	require.ErrorAs(t, err, &authErr)
}

func TestGetRouteUnknownID(t *testing.T) {
	svc := newTestService(threeOrders(), seededRoutes(t), newMemShipments(), &stubCouriers{}, happyOptimizer(), &stubDistance{})

	_, err := svc.GetRoute(context.Background(), 99, domain.Identity{Role: domain.RoleAdmin})

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListRoutesAdminSeesAll(t *testing.T) {
	svc := newTestService(threeOrders(), seededRoutes(t), newMemShipments(), &stubCouriers{}, happyOptimizer(), &stubDistance{})

	routes, err := svc.ListRoutes(context.Background(), domain.Identity{Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, routes, 3)
}

func TestListRoutesDriverScoped(t *testing.T) {
	svc := newTestService(threeOrders(), seededRoutes(t), newMemShipments(), &stubCouriers{}, happyOptimizer(), &stubDistance{})

	routes, err := svc.ListRoutes(context.Background(), domain.Identity{Role: domain.RoleDriver, CourierID: int64Ptr(6)})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "south", routes[0].Name)
}

func TestListRoutesDriverWithoutCourierSeesNothing(t *testing.T) {
	svc := newTestService(threeOrders(), seededRoutes(t), newMemShipments(), &stubCouriers{}, happyOptimizer(), &stubDistance{})

	routes, err := svc.ListRoutes(context.Background(), domain.Identity{Role: domain.RoleDriver})
	require.NoError(t, err)
	assert.Empty(t, routes)
}
