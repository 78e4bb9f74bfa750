package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type putTicketIDsRequest struct {
	// IDs is a comma-separated list. Whitespace around entries is
	// trimmed and empty entries are dropped; an empty string clears the
	// subscriber's IDs.
	IDs string `json:"ids"`
}

// PutTicketIDs handles PUT /api/subscribers/:id/ticket-ids.
func (h *Handler) PutTicketIDs(c *gin.Context) {
	subscriberID := c.Param("id")

	var req putTicketIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.registry.SetTicketIDs(subscriberID, strings.Split(req.IDs, ","))
	c.JSON(http.StatusOK, gin.H{"ids": h.registry.TicketIDs(subscriberID)})
}

// GetTicketIDs handles GET /api/subscribers/:id/ticket-ids.
func (h *Handler) GetTicketIDs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ids": h.registry.TicketIDs(c.Param("id"))})
}
