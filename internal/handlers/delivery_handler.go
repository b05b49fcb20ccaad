package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

// GetDeliveryCharges handles GET /api/delivery-charges.
func (h *Handler) GetDeliveryCharges(c *gin.Context) {
	var rules []models.DeliveryChargeRule
	if err := h.db.Order("min_order_total ASC").Find(&rules).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, rules)
}

// CreateDeliveryCharge handles POST /api/admin/delivery-charges.
func (h *Handler) CreateDeliveryCharge(c *gin.Context) {
	var rule models.DeliveryChargeRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid delivery charge payload")
		return
	}
	if rule.DeliveryType == "" || rule.Charge < 0 {
		response.Fail(c, http.StatusBadRequest, "Delivery type and a non-negative charge are required")
		return
	}

	if err := h.db.Create(&rule).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Created(c, rule)
}

// DeleteDeliveryCharge handles DELETE /api/admin/delivery-charges.
func (h *Handler) DeleteDeliveryCharge(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "ID is required")
		return
	}

	if err := h.db.Delete(&models.DeliveryChargeRule{}, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Delivery charge removed")
}
