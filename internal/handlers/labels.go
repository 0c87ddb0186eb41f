package handlers

import (
	"net/http"

	"secure_finance_manager/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listLabels(c *gin.Context) {
	labels, err := h.services.Labels.List(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, "label_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func (h *Handler) getLabel(c *gin.Context) {
	id, ok := pathID(c, "labelId")
	if !ok {
		return
	}
	label, err := h.services.Labels.Get(c.Request.Context(), callerID(c), id)
	if err != nil {
		h.respondError(c, "label_get_failed", err, "label_id", id)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (h *Handler) createLabel(c *gin.Context) {
	var input models.Label
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	label, err := h.services.Labels.Create(c.Request.Context(), callerID(c), input)
	if err != nil {
		h.respondError(c, "label_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, label)
}

func (h *Handler) updateLabel(c *gin.Context) {
	id, ok := pathID(c, "labelId")
	if !ok {
		return
	}
	var patch models.GroupPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}
	label, err := h.services.Labels.Update(c.Request.Context(), callerID(c), id, patch)
	if err != nil {
		h.respondError(c, "label_update_failed", err, "label_id", id)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (h *Handler) deleteLabel(c *gin.Context) {
	id, ok := pathID(c, "labelId")
	if !ok {
		return
	}
	if err := h.services.Labels.Delete(c.Request.Context(), callerID(c), id); err != nil {
		h.respondError(c, "label_delete_failed", err, "label_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
