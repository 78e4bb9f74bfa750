package api

import (
	"pavilion-status-backend/internal/booking"
	"pavilion-status-backend/internal/catalog"
	"pavilion-status-backend/internal/watch"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    *catalog.Store
	registry *watch.Registry
	links    *booking.LinkBuilder
}

// NewHandler creates a new API handler.
func NewHandler(store *catalog.Store, registry *watch.Registry, links *booking.LinkBuilder) *Handler {
	return &Handler{
		store:    store,
		registry: registry,
		links:    links,
	}
}
