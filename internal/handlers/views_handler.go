package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

// maxRecentViews is how many recently-viewed products we keep per user.
const maxRecentViews = 10

type viewRequest struct {
	UserID    uint `json:"userId"`
	ProductID uint `json:"productId"`
}

// RecordView handles POST /api/views. Re-viewing a product moves it to the
// front of the user's history; older entries beyond the cap are trimmed.
func (h *Handler) RecordView(c *gin.Context) {
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.ProductID == 0 {
		response.Fail(c, http.StatusBadRequest, "User ID and Product ID are required")
		return
	}

	if err := h.db.Where("user_id = ? AND product_id = ?", req.UserID, req.ProductID).
		Delete(&models.View{}).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	view := models.View{UserID: req.UserID, ProductID: req.ProductID}
	if err := h.db.Create(&view).Error; err != nil {
		h.log.Error("view create failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	h.trimViews(req.UserID)

	response.Created(c, view)
}

// GetViews handles GET /api/views?userId=.
func (h *Handler) GetViews(c *gin.Context) {
	userID, ok := queryUint(c, "userId")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "User ID is required")
		return
	}

	var views []models.View
	if err := h.db.Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(maxRecentViews).
		Preload("Product").
		Find(&views).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, views)
}

// DeleteView handles DELETE /api/views.
func (h *Handler) DeleteView(c *gin.Context) {
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.ProductID == 0 {
		response.Fail(c, http.StatusBadRequest, "User ID and Product ID are required")
		return
	}

	if err := h.db.Where("user_id = ? AND product_id = ?", req.UserID, req.ProductID).
		Delete(&models.View{}).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "View deleted")
}

// trimViews deletes everything past the most recent maxRecentViews entries.
// Trimming is best-effort; a failure leaves stale rows that the next write
// will catch.
func (h *Handler) trimViews(userID uint) {
	var keep []uint
	if err := h.db.Model(&models.View{}).
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(maxRecentViews).
		Pluck("id", &keep).Error; err != nil {
		h.log.Warn("view trim lookup failed", zap.Uint("userId", userID), zap.Error(err))
		return
	}
	if len(keep) < maxRecentViews {
		return
	}
	if err := h.db.Where("user_id = ? AND id NOT IN ?", userID, keep).
		Delete(&models.View{}).Error; err != nil {
		h.log.Warn("view trim failed", zap.Uint("userId", userID), zap.Error(err))
	}
}
