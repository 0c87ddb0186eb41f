package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getSummary returns per-category totals, optionally bounded by ?from= and ?to=.
func (h *Handler) getSummary(c *gin.Context) {
	from, to, ok := queryRange(c)
	if !ok {
		return
	}
	sum, err := h.services.Summary(c.Request.Context(), callerID(c), from, to)
	if err != nil {
		h.respondError(c, "summary_failed", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
