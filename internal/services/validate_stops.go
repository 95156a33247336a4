package services

import (
	"context"
	"fmt"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/ports"
)

// StopInfo is one validated delivery stop in submission order. The
// submission order is the basis for the resolver's index-based
// matching, so it must mirror the caller's requested order exactly.
type StopInfo struct {
	Order       *domain.DeliveryOrder
	Destination domain.Coordinate
	Label       string
}

// ValidateStopSet loads the candidate orders and confirms each one can
// be routed. The whole batch is rejected on the first defect; partial
// routes are never produced.
//
// The returned slice preserves the order of orderIDs.
func ValidateStopSet(
	ctx context.Context,
	orderIDs []int64,
	orders ports.OrderRepository,
) ([]StopInfo, error) {
	if len(orderIDs) == 0 {
		return nil, domain.NewValidationError("at least one order is required to create a route")
	}

	seen := make(map[int64]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if _, ok := seen[id]; ok {
			return nil, domain.NewValidationError("order %d appears more than once in the request", id)
		}
		seen[id] = struct{}{}
	}

	loaded, err := orders.FindByIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("validate stop set: load orders: %w", err)
	}

	byID := make(map[int64]*domain.DeliveryOrder, len(loaded))
	for _, o := range loaded {
		byID[o.OrderID] = o
	}

	missing := make([]int64, 0)
	for _, id := range orderIDs {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.NotFoundError{Resource: "orders", IDs: missing}
	}

	invalid := make([]int64, 0)
	for _, id := range orderIDs {
		o := byID[id]
		if o.Destination == nil || !o.Destination.IsFinite() {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return nil, domain.NewValidationError(
			"orders %v have no valid delivery coordinates registered", invalid)
	}

	stops := make([]StopInfo, 0, len(orderIDs))
	for _, id := range orderIDs {
		o := byID[id]
		label := o.AddressLabel
		if label == "" {
			label = fmt.Sprintf("Order %d", o.OrderID)
		}
		stops = append(stops, StopInfo{
			Order:       o,
			Destination: *o.Destination,
			Label:       label,
		})
	}

	return stops, nil
}
