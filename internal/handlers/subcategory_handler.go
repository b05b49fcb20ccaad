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

// GetSubCategories handles GET /api/sub-categories. Without an id the result
// is shaped as select-box options.
func (h *Handler) GetSubCategories(c *gin.Context) {
	if id, ok := queryUint(c, "subCatId"); ok {
		var sub models.SubCategory
		if err := h.db.First(&sub, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Fail(c, http.StatusNotFound, "Sub-category not found")
				return
			}
			response.Error(c, apperrors.Persistence(err))
			return
		}
		response.OK(c, sub)
		return
	}

	var subs []models.SubCategory
	if err := h.db.Find(&subs).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	options := make([]optionItem, 0, len(subs))
	for _, sub := range subs {
		options = append(options, optionItem{Label: sub.Name, Value: sub.ID})
	}
	response.OK(c, options)
}

// GetAllSubCategories handles GET /api/sub-categories/get-all.
func (h *Handler) GetAllSubCategories(c *gin.Context) {
	page, limit, offset := pageParams(c, 10)

	var subs []models.SubCategory
	if err := h.db.Limit(limit).Offset(offset).Find(&subs).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var totalCount int64
	if err := h.db.Model(&models.SubCategory{}).Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"subCategories": subs,
		"pagination":    paginate(totalCount, page, limit),
	})
}

// GetSubCategoriesByCategory handles GET /api/sub-categories/category/:id.
func (h *Handler) GetSubCategoriesByCategory(c *gin.Context) {
	categoryID, ok := paramUint(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "category id is required")
		return
	}

	var subs []models.SubCategory
	if err := h.db.Where("category_id = ?", categoryID).Find(&subs).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, subs)
}

type subCategoryRequest struct {
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug" binding:"required"`
	CategoryID uint   `json:"categoryId" binding:"required"`
}

// CreateSubCategory handles POST /api/sub-categories.
func (h *Handler) CreateSubCategory(c *gin.Context) {
	var req subCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if h.slugTaken(&models.SubCategory{}, req.Slug) {
		response.Fail(c, http.StatusBadRequest, "Slug already in use")
		return
	}

	sub := models.SubCategory{Name: req.Name, Slug: req.Slug, CategoryID: req.CategoryID}
	if err := h.db.Create(&sub).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Created(c, sub)
}

type updateSubCategoryRequest struct {
	ID         uint    `json:"id" binding:"required"`
	Name       *string `json:"name"`
	Slug       *string `json:"slug"`
	CategoryID *uint   `json:"categoryId"`
}

// UpdateSubCategory handles PATCH /api/sub-categories.
func (h *Handler) UpdateSubCategory(c *gin.Context) {
	var req updateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "id is required")
		return
	}

	var sub models.SubCategory
	if err := h.db.First(&sub, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "Sub-category not found")
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if req.Slug != nil && *req.Slug != sub.Slug && h.slugTaken(&models.SubCategory{}, *req.Slug) {
		response.Fail(c, http.StatusBadRequest, "Slug already in use")
		return
	}

	updates := map[string]any{}
	setIf(updates, "name", req.Name)
	setIf(updates, "slug", req.Slug)
	setIf(updates, "category_id", req.CategoryID)

	if len(updates) > 0 {
		if err := h.db.Model(&sub).Updates(updates).Error; err != nil {
			response.Error(c, apperrors.Persistence(err))
			return
		}
	}

	response.OK(c, sub)
}

// DeleteSubCategory handles DELETE /api/sub-categories.
func (h *Handler) DeleteSubCategory(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.db.Delete(&models.SubCategory{}, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Sub-category deleted")
}
