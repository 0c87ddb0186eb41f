package handlers

import (
	"net/http"

	"secure_finance_manager/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getMe(c *gin.Context) {
	u, err := h.services.Me(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, "user_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) updateMe(c *gin.Context) {
	var patch models.UserPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}
	u, err := h.services.UpdateMe(c.Request.Context(), callerID(c), patch)
	if err != nil {
		h.respondError(c, "user_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) deleteMe(c *gin.Context) {
	if err := h.services.DeleteMe(c.Request.Context(), callerID(c)); err != nil {
		h.respondError(c, "user_delete_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
