package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"pavilion-status-backend/config"
	"pavilion-status-backend/internal/booking"
	"pavilion-status-backend/internal/catalog"
	"pavilion-status-backend/internal/metrics"
	"pavilion-status-backend/internal/mw"
	"pavilion-status-backend/internal/watch"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(
	cfg *config.ServerConfig,
	store *catalog.Store,
	registry *watch.Registry,
	links *booking.LinkBuilder,
	met *metrics.Metrics,
) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(store, registry, links)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/metrics", gin.WrapH(met.Handler(func() {
		met.SetKnownPavilions(store.Len())
		met.SetWatchedPavilions(len(registry.List()))
	})))

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Catalog reads are cacheable; everything touching the watch
		// registry or subscriber state must stay fresh.
		api.GET("/pavilions", caching, handler.ListPavilions)
		api.GET("/pavilions/search", caching, handler.SearchPavilions)
		api.GET("/pavilions/:code", handler.ShowPavilion)

		api.GET("/watches", handler.ListWatches)
		api.PUT("/watches/:code", handler.AddWatch)
		api.DELETE("/watches/:code", handler.RemoveWatch)

		api.GET("/subscribers/:id/ticket-ids", handler.GetTicketIDs)
		api.PUT("/subscribers/:id/ticket-ids", handler.PutTicketIDs)
	}

	return r
}
