package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patilmayur526/Sodexo-nikos-dashboard/internal/merge"
)

// ListDaily returns the unified daily records of the requested range in
// ascending date order.
// GET /api/daily?from=&to=
func (h *Handler) ListDaily(c *gin.Context) {
	opts, ok := dayOptions(c)
	if !ok {
		return
	}

	unified, err := h.unified(opts)
	if err != nil {
		h.serverError(c, err)
		return
	}

	days := merge.Sorted(unified)
	c.JSON(http.StatusOK, gin.H{"days": days, "count": len(days)})
}
