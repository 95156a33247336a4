package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastmile-routing-service/internal/domain"
)

func TestOriginResolverDefault(t *testing.T) {
	r := NewOriginResolver(12.136389, -86.251389)

	origin, err := r.Resolve(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: 12.136389, Lng: -86.251389}, origin)
}

func TestOriginResolverOverrideWins(t *testing.T) {
	r := NewOriginResolver(12.136389, -86.251389)

	origin, err := r.Resolve(floatPtr(13.5), floatPtr(-87.5))
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: 13.5, Lng: -87.5}, origin)
}

func TestOriginResolverPartialOverride(t *testing.T) {
	r := NewOriginResolver(12.136389, -86.251389)

	origin, err := r.Resolve(floatPtr(13.5), nil)
	require.NoError(t, err)
	assert.Equal(t, 13.5, origin.Lat)
	assert.Equal(t, -86.251389, origin.Lng)
}

func TestOriginResolverUnconfiguredWithoutOverride(t *testing.T) {
	r := NewOriginResolver(math.NaN(), math.NaN())

	_, err := r.Resolve(nil, nil)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestOriginResolverUnconfiguredWithFullOverride(t *testing.T) {
	r := NewOriginResolver(math.NaN(), math.NaN())

	origin, err := r.Resolve(floatPtr(13.5), floatPtr(-87.5))
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: 13.5, Lng: -87.5}, origin)
}
