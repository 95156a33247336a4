package domain

// Courier is a delivery handler a route or shipment may be assigned to.
type Courier struct {
	CourierID int64
	FullName  string
	Active    bool
}

// Identity roles recognized by route read operations. Authentication
// itself is an external collaborator; this core only enforces the
// ownership comparison for drivers.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleDriver = "driver"
)

// Identity is the requesting caller as asserted by the identity
// collaborator. CourierID is nil for identities not linked to a courier.
type Identity struct {
	Role      string
	CourierID *int64
}

// IsDriver reports whether route reads must be scoped to the
// identity's own courier.
func (i Identity) IsDriver() bool { return i.Role == RoleDriver }
