package handlers

import (
	"net/http"

	"secure_finance_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// getLogs lists the caller's audit events. Filters: from, to (RFC3339,
// 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'), type (CREATE, UPDATE, DELETE)
// and entity (CATEGORY, ENTRY, ...).
func (h *Handler) getLogs(c *gin.Context) {
	from, to, ok := queryRange(c)
	if !ok {
		return
	}
	filter := service.LogFilter{
		From:   from,
		To:     to,
		Type:   c.Query("type"),
		Entity: c.Query("entity"),
	}
	events, err := h.services.EventLog.List(c.Request.Context(), callerID(c), filter)
	if err != nil {
		h.respondError(c, "logs_list_failed", err, "from", from, "to", to, "type", filter.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}
