package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"lastmile-routing-service/internal/domain"
)

// syncShipments projects a freshly persisted route onto each stop's
// shipment record. Per-stop units touch distinct order rows and run on
// a fixed pool of workers pulling from a shared index cursor; the pool
// size respects the distance provider's rate limits.
//
// The route is already committed when this runs. Failures here are
// logged per order and never abort the creation: route and shipment
// state are separate consistency domains.
func (s *RouteService) syncShipments(ctx context.Context, route *domain.Route, assignments []Assignment) {
	if len(assignments) == 0 {
		return
	}

	scheduledAt := time.Now()
	if route.ScheduledAt != nil {
		scheduledAt = *route.ScheduledAt
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := s.syncWorkers
	if workers > len(assignments) {
		workers = len(assignments)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				a := assignments[idx]
				if err := s.syncOne(ctx, route, a.Stop, scheduledAt); err != nil {
					s.logger.Error("shipment synchronization failed",
						zap.Int64("order_id", a.Stop.Order.OrderID),
						zap.Int64("route_id", route.RouteID),
						zap.Error(err),
					)
				}
			}
		}()
	}

	for i := range assignments {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// syncOne upserts one order's shipment for the new route.
//
// No shipment yet: create it as "programmed" with a fresh distance
// lookup. Terminal shipment: only the route linkage may move; a
// delivered shipment is never reprogrammed. Anything else: the order
// is re-routed, so status, schedule, coordinates, courier, linkage and
// distance are all overwritten.
func (s *RouteService) syncOne(ctx context.Context, route *domain.Route, stop StopInfo, scheduledAt time.Time) error {
	orderID := stop.Order.OrderID

	shipment, err := s.shipments.FindByOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("sync shipment: find by order %d: %w", orderID, err)
	}

	if shipment != nil && shipment.IsTerminal() {
		if shipment.RouteID == route.RouteID {
			return nil
		}
		shipment.RouteID = route.RouteID
		if _, err := s.shipments.Upsert(ctx, shipment); err != nil {
			return fmt.Errorf("sync shipment: relink terminal shipment for order %d: %w", orderID, err)
		}
		return nil
	}

	metrics, err := s.distance.Distance(ctx, route.Origin, stop.Destination, route.Profile)
	if err != nil {
		return fmt.Errorf("sync shipment: distance lookup for order %d: %w", orderID, err)
	}
	distanceKm := round2(metrics.DistanceKm)

	courierID := route.CourierID
	if courierID == nil {
		courierID = stop.Order.CourierID
	}

	if shipment == nil {
		shipment = &domain.Shipment{OrderID: orderID}
	}
	shipment.Status = domain.ShipmentStatusProgrammed
	shipment.ScheduledAt = scheduledAt
	shipment.Origin = route.Origin
	shipment.Destination = stop.Destination
	shipment.RouteID = route.RouteID
	shipment.DistanceKm = distanceKm
	if courierID != nil {
		shipment.CourierID = courierID
	}

	if _, err := s.shipments.Upsert(ctx, shipment); err != nil {
		return fmt.Errorf("sync shipment: upsert for order %d: %w", orderID, err)
	}
	return nil
}
