package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

// GetVoucherByCode handles GET /api/voucher?code=. Expired or disabled
// vouchers are reported as not found so the storefront shows a single
// "invalid voucher" message.
func (h *Handler) GetVoucherByCode(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		response.Fail(c, http.StatusBadRequest, "Voucher code is required")
		return
	}

	var voucher models.Voucher
	err := h.db.Where("code = ? AND is_active = ?", code, true).First(&voucher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, apperrors.NotFound("voucher not found"))
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if voucher.ExpiresAt != nil && voucher.ExpiresAt.Before(time.Now()) {
		response.Error(c, apperrors.NotFound("voucher expired"))
		return
	}

	response.OK(c, voucher)
}

// GetVouchers handles GET /api/admin/voucher with pagination.
func (h *Handler) GetVouchers(c *gin.Context) {
	page, limit, offset := pageParams(c, 10)

	var total int64
	if err := h.db.Model(&models.Voucher{}).Count(&total).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var vouchers []models.Voucher
	if err := h.db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&vouchers).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"vouchers":   vouchers,
		"pagination": paginate(total, page, limit),
	})
}

// CreateVoucher handles POST /api/admin/voucher.
func (h *Handler) CreateVoucher(c *gin.Context) {
	var voucher models.Voucher
	if err := c.ShouldBindJSON(&voucher); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid voucher payload")
		return
	}
	voucher.Code = strings.TrimSpace(voucher.Code)
	if voucher.Code == "" || voucher.Amount <= 0 {
		response.Fail(c, http.StatusBadRequest, "Code and a positive amount are required")
		return
	}

	var count int64
	if err := h.db.Model(&models.Voucher{}).Where("code = ?", voucher.Code).Count(&count).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}
	if count > 0 {
		response.Error(c, apperrors.Conflict("voucher code already exists"))
		return
	}

	if err := h.db.Create(&voucher).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Created(c, voucher)
}

// UpdateVoucher handles PATCH /api/admin/voucher/:id.
func (h *Handler) UpdateVoucher(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "Invalid voucher ID")
		return
	}

	var voucher models.Voucher
	if err := h.db.First(&voucher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, apperrors.NotFound("voucher not found"))
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var req struct {
		Code        *string    `json:"code"`
		Amount      *float64   `json:"amount"`
		IsActive    *bool      `json:"isActive"`
		ExpiresAt   *time.Time `json:"expiresAt"`
		Description *string    `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid voucher payload")
		return
	}

	assignIf(&voucher.Code, req.Code)
	assignIf(&voucher.Amount, req.Amount)
	assignIf(&voucher.IsActive, req.IsActive)
	assignIf(&voucher.Description, req.Description)
	if req.ExpiresAt != nil {
		voucher.ExpiresAt = req.ExpiresAt
	}

	if err := h.db.Save(&voucher).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, voucher)
}

// DeleteVoucher handles DELETE /api/admin/voucher.
func (h *Handler) DeleteVoucher(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "ID is required")
		return
	}

	if err := h.db.Delete(&models.Voucher{}, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Voucher deleted")
}
