package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"pavilion-status-backend/internal/catalog"
)

// ListPavilions handles GET /api/pavilions.
func (h *Handler) ListPavilions(c *gin.Context) {
	pavilions := h.store.ListAll()
	sort.Slice(pavilions, func(i, j int) bool { return pavilions[i].Name < pavilions[j].Name })
	c.JSON(http.StatusOK, pavilions)
}

// SearchPavilions handles GET /api/pavilions/search?q=. An empty query
// returns an empty list rather than an error.
func (h *Handler) SearchPavilions(c *gin.Context) {
	results := h.store.SearchByName(c.Query("q"))
	if results == nil {
		results = []catalog.Summary{}
	}
	c.JSON(http.StatusOK, results)
}

// pavilionStatusResponse is the response body for a single pavilion's
// current availability.
type pavilionStatusResponse struct {
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	URL        string         `json:"url,omitempty"`
	Slots      map[string]int `json:"slots"`
	BookingURL string         `json:"bookingUrl"`
	Watched    bool           `json:"watched"`
}

// ShowPavilion handles GET /api/pavilions/:code. The booking link is
// personalized with the caller's ticket IDs when an X-Subscriber-ID
// header is present.
func (h *Handler) ShowPavilion(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	pavilion, ok := h.store.Get(code)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "pavilion not found"})
		return
	}

	slots := make(map[string]int, len(pavilion.Schedules))
	for slot, status := range pavilion.Schedules {
		slots[slot] = int(status)
	}

	var ticketIDs []string
	if subscriberID := c.GetHeader("X-Subscriber-ID"); subscriberID != "" {
		ticketIDs = h.registry.TicketIDs(subscriberID)
	}

	c.JSON(http.StatusOK, pavilionStatusResponse{
		Code:       code,
		Name:       pavilion.Name,
		URL:        pavilion.URL,
		Slots:      slots,
		BookingURL: h.links.TicketURL(code, ticketIDs),
		Watched:    h.registry.IsWatched(code),
	})
}
