package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

type addCartItemRequest struct {
	UserID    uint `json:"userId"`
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// AddCartItem handles POST /api/cart. Adding an existing (user, product) pair
// replaces the quantity. Inventory is validated here, and only here; order
// placement trusts the cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.ProductID == 0 || req.Quantity < 1 {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var product models.Product
	if err := h.db.First(&product, req.ProductID).Error; err != nil || product.Inventory < req.Quantity {
		response.Fail(c, http.StatusNotFound, "Product not found or insufficient inventory")
		return
	}

	var existing models.CartItem
	err := h.db.Where("user_id = ? AND product_id = ?", req.UserID, req.ProductID).First(&existing).Error
	switch {
	case err == nil:
		if err := h.db.Model(&existing).Update("quantity", req.Quantity).Error; err != nil {
			h.log.Error("cart update failed", zap.Error(err))
			response.Error(c, apperrors.Persistence(err))
			return
		}
		existing.Quantity = req.Quantity
		existing.Product = &product
		response.OK(c, existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := models.CartItem{UserID: req.UserID, ProductID: req.ProductID, Quantity: req.Quantity}
		if err := h.db.Create(&item).Error; err != nil {
			h.log.Error("cart insert failed", zap.Error(err))
			response.Error(c, apperrors.Persistence(err))
			return
		}
		item.Product = &product
		response.Created(c, item)
	default:
		response.Error(c, apperrors.Persistence(err))
	}
}

// GetCartItems handles GET /api/cart?userId=.
func (h *Handler) GetCartItems(c *gin.Context) {
	userID, ok := queryUint(c, "userId")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "User ID is required")
		return
	}

	var items []models.CartItem
	if err := h.db.Where("user_id = ?", userID).Preload("Product").Find(&items).Error; err != nil {
		h.log.Error("cart listing failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, items)
}

type deleteCartItemRequest struct {
	UserID    uint `json:"userId"`
	ProductID uint `json:"productId"`
}

// DeleteCartItem handles DELETE /api/cart.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	var req deleteCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.ProductID == 0 {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var item models.CartItem
	err := h.db.Where("user_id = ? AND product_id = ?", req.UserID, req.ProductID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "Cart item not found")
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Cart item deleted")
}
