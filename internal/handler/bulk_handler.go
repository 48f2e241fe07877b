package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/leaf_api/internal/models"
	"github.com/greenleaf/leaf_api/internal/service"
	"github.com/greenleaf/leaf_api/internal/utils"
)

// BulkHandler exposes the multi-select operations of the product list:
// deleting a selection or stamping a flag across it, each as a single
// statement against the store.
type BulkHandler struct {
	bulk *service.BulkService
}

// NewBulkHandler constructs a BulkHandler.
func NewBulkHandler(bulk *service.BulkService) *BulkHandler {
	return &BulkHandler{bulk: bulk}
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type bulkFlagRequest struct {
	IDs   []string `json:"ids" binding:"required"`
	Flag  string   `json:"flag" binding:"required"`
	Value *bool    `json:"value" binding:"required"`
}

// DeleteSelected handles POST /admin/products/bulk-delete.
func (h *BulkHandler) DeleteSelected(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "ids are required")
		return
	}

	if err := h.bulk.DeleteSelected(req.IDs); err != nil {
		if errors.Is(err, utils.ErrEmptySelection) {
			utils.Error(c, http.StatusBadRequest, "EMPTY_SELECTION", "No products selected")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Bulk delete failed")
		return
	}
	utils.Success(c, http.StatusOK, "Products deleted", gin.H{"count": len(req.IDs)})
}

// SetFlag handles POST /admin/products/bulk-flag: marks or unmarks every
// selected product as new or popular in one statement.
func (h *BulkHandler) SetFlag(c *gin.Context) {
	var req bulkFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "ids, flag and value are required")
		return
	}

	if err := h.bulk.SetFlag(req.IDs, models.ProductFlag(req.Flag), *req.Value); err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.Is(err, utils.ErrEmptySelection):
			utils.Error(c, http.StatusBadRequest, "EMPTY_SELECTION", "No products selected")
		case errors.As(err, &vErr):
			utils.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Error())
		default:
			utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Bulk update failed")
		}
		return
	}
	utils.Success(c, http.StatusOK, "Products updated", gin.H{
		"count": len(req.IDs),
		"flag":  req.Flag,
		"value": *req.Value,
	})
}
