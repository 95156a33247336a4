package domain

// DeliveryOrder is an order eligible for routing. It is immutable for
// the duration of one route-creation request.
//
// Destination is nil when the order has no registered coordinate; such
// orders cannot be routed.
type DeliveryOrder struct {
	OrderID      int64
	Destination  *Coordinate
	AddressLabel string
	CourierID    *int64
}
