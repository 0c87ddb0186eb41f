package handlers

import (
	"net/http"

	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// entryCreateRequest requires an amount and optionally links existing labels.
type entryCreateRequest struct {
	models.Entry
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Labels []int            `json:"labels"`
}

// entryPath reads the category and subcategory ids the entry is filed under.
func entryPath(c *gin.Context) (service.EntryPath, bool) {
	categoryID, subcategoryID, ok := subcategoryIDs(c)
	if !ok {
		return service.EntryPath{}, false
	}
	return service.EntryPath{CategoryID: categoryID, SubcategoryID: subcategoryID}, true
}

func entryPathAndID(c *gin.Context) (service.EntryPath, int, bool) {
	path, ok := entryPath(c)
	if !ok {
		return path, 0, false
	}
	id, ok := pathID(c, "entryId")
	return path, id, ok
}

func (h *Handler) listEntries(c *gin.Context) {
	path, ok := entryPath(c)
	if !ok {
		return
	}
	entries, err := h.services.Entries.List(c.Request.Context(), callerID(c), path)
	if err != nil {
		h.respondError(c, "entry_list_failed", err, "subcategory_id", path.SubcategoryID)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) getEntry(c *gin.Context) {
	path, id, ok := entryPathAndID(c)
	if !ok {
		return
	}
	entry, err := h.services.Entries.Get(c.Request.Context(), callerID(c), path, id)
	if err != nil {
		h.respondError(c, "entry_get_failed", err, "entry_id", id)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) createEntry(c *gin.Context) {
	path, ok := entryPath(c)
	if !ok {
		return
	}
	var input entryCreateRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	input.Entry.Amount = *input.Amount

	entry, err := h.services.Entries.Create(c.Request.Context(), callerID(c), path, input.Entry, input.Labels)
	if err != nil {
		h.respondError(c, "entry_create_failed", err, "subcategory_id", path.SubcategoryID)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) updateEntry(c *gin.Context) {
	path, id, ok := entryPathAndID(c)
	if !ok {
		return
	}
	var patch models.EntryPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}
	entry, err := h.services.Entries.Update(c.Request.Context(), callerID(c), path, id, patch)
	if err != nil {
		h.respondError(c, "entry_update_failed", err, "entry_id", id)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) deleteEntry(c *gin.Context) {
	path, id, ok := entryPathAndID(c)
	if !ok {
		return
	}
	if err := h.services.Entries.Delete(c.Request.Context(), callerID(c), path, id); err != nil {
		h.respondError(c, "entry_delete_failed", err, "entry_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listEntryLabels(c *gin.Context) {
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}
	labels, err := h.services.Entries.Labels(c.Request.Context(), callerID(c), entryID)
	if err != nil {
		h.respondError(c, "entry_labels_list_failed", err, "entry_id", entryID)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func (h *Handler) attachLabel(c *gin.Context) {
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}
	labelID, ok := pathID(c, "labelId")
	if !ok {
		return
	}
	if err := h.services.Entries.AttachLabel(c.Request.Context(), callerID(c), entryID, labelID); err != nil {
		h.respondError(c, "entry_label_attach_failed", err, "entry_id", entryID, "label_id", labelID)
		return
	}
	c.JSON(http.StatusCreated, models.EntryLabel{EntryID: entryID, LabelID: labelID})
}

func (h *Handler) detachLabel(c *gin.Context) {
	entryID, ok := pathID(c, "entryId")
	if !ok {
		return
	}
	labelID, ok := pathID(c, "labelId")
	if !ok {
		return
	}
	if err := h.services.Entries.DetachLabel(c.Request.Context(), callerID(c), entryID, labelID); err != nil {
		h.respondError(c, "entry_label_detach_failed", err, "entry_id", entryID, "label_id", labelID)
		return
	}
	c.Status(http.StatusNoContent)
}
