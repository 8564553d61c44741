// Package identity resolves customers across the storefront, bookings and support systems
// into canonical, annotated views. It never writes to a source and never merges records.
package identity

import (
	"log/slog"

	"custid/internal/identity/handler"
	"custid/internal/identity/models"
	"custid/internal/identity/service"
	"custid/internal/identity/sources"
)

// Service exposes customer resolution.
type Service = service.Service

// Handler wires HTTP endpoints to the resolution service.
type Handler = handler.Handler

// Resolution is the result of an email or phone lookup.
type Resolution = models.Resolution

// NewService constructs the resolution service over the registered adapters.
func NewService(registry *sources.Registry, opts ...service.Option) (*Service, error) {
	return service.New(registry, opts...)
}

// NewHandler constructs an HTTP handler for the customer resolution routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
