package domain

import (
	"strings"
	"time"
)

// Shipment statuses. A terminal status freezes every field except the
// route linkage against further mutation by route recomputation.
const (
	ShipmentStatusProgrammed = "programmed"
	ShipmentStatusDelivered  = "delivered"
)

// Shipment is the per-order delivery-tracking record, distinct from
// the Route that most recently scheduled it. One shipment exists per
// order once that order has been routed at least once.
type Shipment struct {
	ShipmentID  int64
	OrderID     int64
	CourierID   *int64
	Status      string
	ScheduledAt time.Time
	Origin      Coordinate
	Destination Coordinate
	RouteID     int64
	DistanceKm  float64
}

// IsTerminal reports whether the shipment has reached a state routing
// must no longer reprogram.
func (s *Shipment) IsTerminal() bool {
	return strings.EqualFold(s.Status, ShipmentStatusDelivered)
}
