package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pavilion-status-backend/internal/catalog"
)

// ListWatches handles GET /api/watches, resolving watched codes to names.
func (h *Handler) ListWatches(c *gin.Context) {
	codes := h.registry.List()
	watches := make([]catalog.Summary, 0, len(codes))
	for _, code := range codes {
		watches = append(watches, catalog.Summary{Code: code, Name: h.store.Name(code)})
	}
	c.JSON(http.StatusOK, watches)
}

// AddWatch handles PUT /api/watches/:code. Codes not resolvable to a
// known pavilion are rejected.
func (h *Handler) AddWatch(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	name := h.store.Name(code)
	if name == code {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "pavilion not found"})
		return
	}

	added := h.registry.Add(code)
	c.JSON(http.StatusOK, gin.H{
		"code":  code,
		"name":  name,
		"added": added,
	})
}

// RemoveWatch handles DELETE /api/watches/:code.
func (h *Handler) RemoveWatch(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	if !h.registry.Remove(code) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "pavilion is not watched"})
		return
	}
	c.Status(http.StatusNoContent)
}
