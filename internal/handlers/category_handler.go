package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

type optionItem struct {
	Label string `json:"label"`
	Value uint   `json:"value"`
}

// GetCategories handles GET /api/category. Without ?menu=true the result is
// shaped as select-box options; with an id it returns one category with its
// sub-categories.
func (h *Handler) GetCategories(c *gin.Context) {
	if id, ok := queryUint(c, "id"); ok {
		var category models.Category
		err := h.db.Preload("SubCategories").First(&category, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Fail(c, http.StatusNotFound, "Category not found")
				return
			}
			response.Error(c, apperrors.Persistence(err))
			return
		}
		response.OK(c, category)
		return
	}

	var categories []models.Category
	if err := h.db.Preload("SubCategories").Find(&categories).Error; err != nil {
		h.log.Error("category listing failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if c.Query("menu") == "" && len(categories) > 0 {
		options := make([]optionItem, 0, len(categories))
		for _, cat := range categories {
			options = append(options, optionItem{Label: cat.Name, Value: cat.ID})
		}
		response.OK(c, options)
		return
	}

	response.OK(c, categories)
}

// GetAllCategories handles GET /api/category/get-all with pagination.
func (h *Handler) GetAllCategories(c *gin.Context) {
	page, limit, offset := pageParams(c, 10)

	var categories []models.Category
	if err := h.db.Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var totalCount int64
	if err := h.db.Model(&models.Category{}).Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"categories": categories,
		"pagination": paginate(totalCount, page, limit),
	})
}

type categoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

// CreateCategory handles POST /api/category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Slug == "" {
		response.Fail(c, http.StatusBadRequest, "name and slug are required")
		return
	}

	if h.slugTaken(&models.Category{}, req.Slug) {
		response.Fail(c, http.StatusOK, "Slug already in use")
		return
	}

	category := models.Category{Name: req.Name, Slug: req.Slug, URL: req.URL}
	if err := h.db.Create(&category).Error; err != nil {
		h.log.Error("category create failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Created(c, category)
}

type updateCategoryRequest struct {
	ID   uint    `json:"id" binding:"required"`
	Name *string `json:"name"`
	Slug *string `json:"slug"`
	URL  *string `json:"url"`
}

// UpdateCategory handles PATCH /api/category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "id is required")
		return
	}

	var category models.Category
	if err := h.db.First(&category, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "Category not found")
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if req.Slug != nil && *req.Slug != category.Slug && h.slugTaken(&models.Category{}, *req.Slug) {
		response.Fail(c, http.StatusBadRequest, "Slug already in use")
		return
	}

	updates := map[string]any{}
	setIf(updates, "name", req.Name)
	setIf(updates, "slug", req.Slug)
	setIf(updates, "url", req.URL)

	if len(updates) > 0 {
		if err := h.db.Model(&category).Updates(updates).Error; err != nil {
			response.Error(c, apperrors.Persistence(err))
			return
		}
	}

	response.OK(c, category)
}

type deleteByIDRequest struct {
	ID uint `json:"id" binding:"required"`
}

// DeleteCategory handles DELETE /api/category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.db.Delete(&models.Category{}, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Category deleted")
}

// CheckCategorySlug handles POST /api/category/slug-checker.
func (h *Handler) CheckCategorySlug(c *gin.Context) {
	var req slugCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Slug == "" {
		response.Fail(c, http.StatusBadRequest, "slug is required")
		return
	}

	slug := strings.ToLower(req.Slug)
	if h.slugTaken(&models.Category{}, slug) {
		response.Fail(c, http.StatusOK, slug+" already in use")
		return
	}
	response.Message(c, http.StatusOK, slug+" Slug is available")
}
