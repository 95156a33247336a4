package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShipmentIsTerminal(t *testing.T) {
	assert.True(t, (&Shipment{Status: "delivered"}).IsTerminal())
	assert.True(t, (&Shipment{Status: "Delivered"}).IsTerminal())
	assert.True(t, (&Shipment{Status: "DELIVERED"}).IsTerminal())

	assert.False(t, (&Shipment{Status: "programmed"}).IsTerminal())
	assert.False(t, (&Shipment{Status: "in_transit"}).IsTerminal())
	assert.False(t, (&Shipment{Status: "cancelled"}).IsTerminal())
	assert.False(t, (&Shipment{Status: ""}).IsTerminal())
}
