package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastmile-routing-service/internal/domain"
)

func TestValidateStopSetPreservesSubmissionOrder(t *testing.T) {
	stops, err := ValidateStopSet(context.Background(), []int64{30, 10, 20}, threeOrders())
	require.NoError(t, err)

	require.Len(t, stops, 3)
	assert.Equal(t, int64(30), stops[0].Order.OrderID)
	assert.Equal(t, int64(10), stops[1].Order.OrderID)
	assert.Equal(t, int64(20), stops[2].Order.OrderID)
	assert.Equal(t, "Main St 3", stops[0].Label)
}

func TestValidateStopSetEmpty(t *testing.T) {
	_, err := ValidateStopSet(context.Background(), nil, threeOrders())

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestValidateStopSetDuplicateOrder(t *testing.T) {
	_, err := ValidateStopSet(context.Background(), []int64{10, 20, 10}, threeOrders())

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "10")
}

func TestValidateStopSetMissingOrders(t *testing.T) {
	_, err := ValidateStopSet(context.Background(), []int64{10, 77, 88}, threeOrders())

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "orders", notFound.Resource)
	assert.Equal(t, []int64{77, 88}, notFound.IDs)
}

func TestValidateStopSetRejectsUnroutableDestinations(t *testing.T) {
	orders := threeOrders()
	orders.orders[10].Destination = nil
	orders.orders[20].Destination = &domain.Coordinate{Lat: math.NaN(), Lng: -86.21}

	_, err := ValidateStopSet(context.Background(), []int64{10, 20, 30}, orders)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "[10 20]")
}

func TestValidateStopSetLabelFallback(t *testing.T) {
	orders := threeOrders()
	orders.orders[10].AddressLabel = ""

	stops, err := ValidateStopSet(context.Background(), []int64{10}, orders)
	require.NoError(t, err)
	assert.Equal(t, "Order 10", stops[0].Label)
}
