package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/orders"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

// CreateOrder handles POST /api/order.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req orders.PlaceOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			h.log.Error("order placement failed", zap.Uint("user_id", req.UserID), zap.Error(err))
		}
		response.Error(c, err)
		return
	}

	response.Created(c, order)
}

// GetUserOrders handles GET /api/order.
func (h *Handler) GetUserOrders(c *gin.Context) {
	userID, ok := queryUint(c, "userId")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	page, limit, offset := pageParams(c, 20)

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&totalOrders).Error; err != nil {
		h.log.Error("count orders failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var userOrders []models.Order
	err := h.db.Where("user_id = ?", userID).
		Preload("OrderItems.Product").
		Limit(limit).Offset(offset).
		Find(&userOrders).Error
	if err != nil {
		h.log.Error("list orders failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"orders":     userOrders,
		"totalPages": paginate(totalOrders, page, limit).TotalPages,
	})
}

// GetOrders handles GET /api/admin/order, listing across all users.
func (h *Handler) GetOrders(c *gin.Context) {
	page, limit, offset := pageParams(c, 5)

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var allOrders []models.Order
	err := h.db.Preload("OrderItems.Product").
		Limit(limit).Offset(offset).
		Find(&allOrders).Error
	if err != nil {
		h.log.Error("list all orders failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"orders":     allOrders,
		"totalPages": paginate(totalOrders, page, limit).TotalPages,
	})
}

// UpdateOrder handles PATCH /api/admin/order/:id, the status/fulfillment
// transition, including the delivered ledger entry.
func (h *Handler) UpdateOrder(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "Order ID is required")
		return
	}

	var req orders.UpdateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), orderID, req)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			h.log.Error("order update failed", zap.Uint("order_id", orderID), zap.Error(err))
		}
		response.Error(c, err)
		return
	}

	response.MessageData(c, http.StatusOK, "Order updated successfully", order)
}
