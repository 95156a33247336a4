package services

import (
	"context"
	"fmt"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/ports"
)

// GetRoute fetches one route. A driver identity may only read routes
// assigned to their own courier; the ownership comparison happens here,
// authentication itself belongs to the identity collaborator.
func (s *RouteService) GetRoute(ctx context.Context, routeID int64, identity domain.Identity) (*domain.Route, error) {
	route, err := s.routes.FindRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}

	if identity.IsDriver() {
		if identity.CourierID == nil || route.CourierID == nil || *route.CourierID != *identity.CourierID {
			return nil, &domain.AuthorizationError{
				Msg: fmt.Sprintf("route %d is not assigned to the requesting courier", routeID),
			}
		}
	}

	return route, nil
}

// ListRoutes returns routes visible to the identity, newest first.
// Drivers see only their own.
func (s *RouteService) ListRoutes(ctx context.Context, identity domain.Identity) ([]*domain.Route, error) {
	filter := ports.RouteFilter{}
	if identity.IsDriver() {
		if identity.CourierID == nil {
			return []*domain.Route{}, nil
		}
		filter.CourierID = identity.CourierID
	}

	routes, err := s.routes.ListRoutes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}
