package handlers

import (
	"net/http"

	"secure_finance_manager/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listColours(c *gin.Context) {
	colours, err := h.services.Colours.List(c.Request.Context())
	if err != nil {
		h.respondError(c, "colour_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, colours)
}

func (h *Handler) getColour(c *gin.Context) {
	id, ok := pathID(c, "colourId")
	if !ok {
		return
	}
	colour, err := h.services.Colours.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "colour_get_failed", err, "colour_id", id)
		return
	}
	c.JSON(http.StatusOK, colour)
}

func (h *Handler) createColour(c *gin.Context) {
	var input models.Colour
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	colour, err := h.services.Colours.Create(c.Request.Context(), callerID(c), input)
	if err != nil {
		h.respondError(c, "colour_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, colour)
}

func (h *Handler) updateColour(c *gin.Context) {
	id, ok := pathID(c, "colourId")
	if !ok {
		return
	}
	var patch models.ColourPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}
	colour, err := h.services.Colours.Update(c.Request.Context(), callerID(c), id, patch)
	if err != nil {
		h.respondError(c, "colour_update_failed", err, "colour_id", id)
		return
	}
	c.JSON(http.StatusOK, colour)
}

func (h *Handler) deleteColour(c *gin.Context) {
	id, ok := pathID(c, "colourId")
	if !ok {
		return
	}
	if err := h.services.Colours.Delete(c.Request.Context(), callerID(c), id); err != nil {
		h.respondError(c, "colour_delete_failed", err, "colour_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
