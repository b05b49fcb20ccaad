package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

type favoriteRequest struct {
	UserID    uint `json:"userId"`
	ProductID uint `json:"productId"`
}

// AddFavorite handles POST /api/favorites.
func (h *Handler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.ProductID == 0 {
		response.Fail(c, http.StatusBadRequest, "User ID and Product ID are required")
		return
	}

	favorite := models.Favorite{UserID: req.UserID, ProductID: req.ProductID}
	if err := h.db.Create(&favorite).Error; err != nil {
		h.log.Error("favorite create failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Created(c, favorite)
}

// GetFavorites handles GET /api/favorites?userId=.
func (h *Handler) GetFavorites(c *gin.Context) {
	userID, ok := queryUint(c, "userId")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "User ID is required")
		return
	}

	var favorites []models.Favorite
	if err := h.db.Where("user_id = ?", userID).Preload("Product").Find(&favorites).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, favorites)
}

// DeleteFavorite handles DELETE /api/favorites.
func (h *Handler) DeleteFavorite(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "ID is required")
		return
	}

	if err := h.db.Delete(&models.Favorite{}, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Item removed")
}
