package handlers

import (
	"net/http"

	"secure_finance_manager/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listSubcategories(c *gin.Context) {
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	subs, err := h.services.Subcategories.List(c.Request.Context(), callerID(c), categoryID)
	if err != nil {
		h.respondError(c, "subcategory_list_failed", err, "category_id", categoryID)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// subcategoryIDs reads both ids of a /categories/:categoryId/subcategories/:subcategoryId path.
func subcategoryIDs(c *gin.Context) (categoryID, id int, ok bool) {
	if categoryID, ok = pathID(c, "categoryId"); !ok {
		return 0, 0, false
	}
	if id, ok = pathID(c, "subcategoryId"); !ok {
		return 0, 0, false
	}
	return categoryID, id, true
}

func (h *Handler) getSubcategory(c *gin.Context) {
	categoryID, id, ok := subcategoryIDs(c)
	if !ok {
		return
	}
	sub, err := h.services.Subcategories.Get(c.Request.Context(), callerID(c), categoryID, id)
	if err != nil {
		h.respondError(c, "subcategory_get_failed", err, "subcategory_id", id)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) createSubcategory(c *gin.Context) {
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	var input models.Subcategory
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	sub, err := h.services.Subcategories.Create(c.Request.Context(), callerID(c), categoryID, input)
	if err != nil {
		h.respondError(c, "subcategory_create_failed", err, "category_id", categoryID)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) updateSubcategory(c *gin.Context) {
	categoryID, id, ok := subcategoryIDs(c)
	if !ok {
		return
	}
	var patch models.GroupPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}
	sub, err := h.services.Subcategories.Update(c.Request.Context(), callerID(c), categoryID, id, patch)
	if err != nil {
		h.respondError(c, "subcategory_update_failed", err, "subcategory_id", id)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *Handler) deleteSubcategory(c *gin.Context) {
	categoryID, id, ok := subcategoryIDs(c)
	if !ok {
		return
	}
	if err := h.services.Subcategories.Delete(c.Request.Context(), callerID(c), categoryID, id); err != nil {
		h.respondError(c, "subcategory_delete_failed", err, "subcategory_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
