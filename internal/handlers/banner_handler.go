package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

// GetBanners handles GET /api/banners. Public callers only see active
// banners; pass all=true for the admin listing.
func (h *Handler) GetBanners(c *gin.Context) {
	q := h.db.Model(&models.Banner{}).Order("display_order ASC")
	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	var banners []models.Banner
	if err := q.Find(&banners).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, banners)
}

// CreateBanner handles POST /api/banners.
func (h *Handler) CreateBanner(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid banner payload")
		return
	}
	if banner.Name == "" || banner.URL == "" {
		response.Fail(c, http.StatusBadRequest, "Name and URL are required")
		return
	}

	if err := h.db.Create(&banner).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Created(c, banner)
}

// UpdateBanner handles PATCH /api/banners/:id.
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "Invalid banner ID")
		return
	}

	var banner models.Banner
	if err := h.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, apperrors.NotFound("banner not found"))
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var req struct {
		Name       *string `json:"name"`
		Slug       *string `json:"slug"`
		URL        *string `json:"url"`
		Active     *bool   `json:"active"`
		Order      *int    `json:"order"`
		ProductID  *uint   `json:"productId"`
		BannerType *int    `json:"bannerType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid banner payload")
		return
	}

	assignIf(&banner.Name, req.Name)
	assignIf(&banner.Slug, req.Slug)
	assignIf(&banner.URL, req.URL)
	assignIf(&banner.Active, req.Active)
	assignIf(&banner.Order, req.Order)
	assignIf(&banner.BannerType, req.BannerType)
	if req.ProductID != nil {
		banner.ProductID = req.ProductID
	}

	if err := h.db.Save(&banner).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, banner)
}

// DeleteBanner handles DELETE /api/banners.
func (h *Handler) DeleteBanner(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "ID is required")
		return
	}

	if err := h.db.Delete(&models.Banner{}, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Banner deleted")
}
