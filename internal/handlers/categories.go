package handlers

import (
	"net/http"

	"secure_finance_manager/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.services.Categories.List(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, "category_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) getCategory(c *gin.Context) {
	id, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	category, err := h.services.Categories.Get(c.Request.Context(), callerID(c), id)
	if err != nil {
		h.respondError(c, "category_get_failed", err, "category_id", id)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) createCategory(c *gin.Context) {
	var input models.Category
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	category, err := h.services.Categories.Create(c.Request.Context(), callerID(c), input)
	if err != nil {
		h.respondError(c, "category_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	var patch models.GroupPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}
	category, err := h.services.Categories.Update(c.Request.Context(), callerID(c), id, patch)
	if err != nil {
		h.respondError(c, "category_update_failed", err, "category_id", id)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	if err := h.services.Categories.Delete(c.Request.Context(), callerID(c), id); err != nil {
		h.respondError(c, "category_delete_failed", err, "category_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
