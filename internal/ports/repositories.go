package ports

import (
	"context"

	"lastmile-routing-service/internal/domain"
)

// Port: boundary for loading delivery orders eligible for routing.
type OrderRepository interface {
	// Return the orders matching ids. Orders that do not exist are
	// simply absent from the result; callers decide how to react.
	FindByIDs(ctx context.Context, ids []int64) ([]*domain.DeliveryOrder, error)
}

// RouteFilter narrows ListRoutes. A nil CourierID matches all routes.
type RouteFilter struct {
	CourierID *int64
}

// Port: persistence boundary for the Route aggregate. SaveRoute writes
// the route and its stops as a single unit.
type RouteRepository interface {
	SaveRoute(ctx context.Context, route *domain.Route) (*domain.Route, error)
	// FindRoute returns a domain.NotFoundError when no route matches
	// id. Stops come back sequence-ascending.
	FindRoute(ctx context.Context, id int64) (*domain.Route, error)
	ListRoutes(ctx context.Context, filter RouteFilter) ([]*domain.Route, error)
}

// Port: persistence boundary for per-order shipment records.
type ShipmentRepository interface {
	// FindByOrder returns (nil, nil) when the order has never been routed.
	FindByOrder(ctx context.Context, orderID int64) (*domain.Shipment, error)
	Upsert(ctx context.Context, shipment *domain.Shipment) (*domain.Shipment, error)
}

// Port: boundary for resolving couriers referenced by a route request.
type CourierRepository interface {
	// FindByID returns (nil, nil) when no courier matches id.
	FindByID(ctx context.Context, id int64) (*domain.Courier, error)
}
