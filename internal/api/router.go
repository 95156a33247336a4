package api

import (
	"net/http"

	"go.uber.org/zap"

	"lastmile-routing-service/internal/api/handlers"
	"lastmile-routing-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay
// unaware of concrete adapters).
func NewRouter(routeService *services.RouteService, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	routeHandler := handlers.NewRouteHandler(routeService)

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /routes", routeHandler.Create)
	mux.HandleFunc("GET /routes", routeHandler.List)
	mux.HandleFunc("GET /routes/{id}", routeHandler.Get)

	return requestIDMiddleware(loggingMiddleware(logger, mux))
}
