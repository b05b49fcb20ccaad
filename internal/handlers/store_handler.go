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

// CreateStore handles POST /api/store.
func (h *Handler) CreateStore(c *gin.Context) {
	var store models.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid store payload")
		return
	}
	if store.Name == "" || store.Email == "" || store.PhoneNumber == "" {
		response.Fail(c, http.StatusBadRequest, "Name, email and phone number are required")
		return
	}

	var count int64
	if err := h.db.Model(&models.Store{}).Where("email = ?", store.Email).Count(&count).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}
	if count > 0 {
		response.Error(c, apperrors.Conflict("store with this email already exists"))
		return
	}

	if err := h.db.Create(&store).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Created(c, store)
}

// GetStores handles GET /api/store.
func (h *Handler) GetStores(c *gin.Context) {
	var stores []models.Store
	if err := h.db.Order("created_at DESC").Find(&stores).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, stores)
}

// UpdateStore handles PATCH /api/store/:id.
func (h *Handler) UpdateStore(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "Invalid store ID")
		return
	}

	var store models.Store
	if err := h.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, apperrors.NotFound("store not found"))
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var req struct {
		Name        *string `json:"name"`
		PhoneNumber *string `json:"phoneNumber"`
		Address     *string `json:"address"`
		City        *string `json:"city"`
		State       *string `json:"state"`
		ZipCode     *string `json:"zipCode"`
		Country     *string `json:"country"`
		CompanyName *string `json:"companyName"`
		TaxID       *string `json:"taxId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid store payload")
		return
	}

	assignIf(&store.Name, req.Name)
	assignIf(&store.PhoneNumber, req.PhoneNumber)
	assignIf(&store.Address, req.Address)
	assignIf(&store.City, req.City)
	assignIf(&store.State, req.State)
	assignIf(&store.ZipCode, req.ZipCode)
	assignIf(&store.Country, req.Country)
	assignIf(&store.CompanyName, req.CompanyName)
	assignIf(&store.TaxID, req.TaxID)

	if err := h.db.Save(&store).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, store)
}

// DeleteStore handles DELETE /api/store.
func (h *Handler) DeleteStore(c *gin.Context) {
	var req deleteByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "ID is required")
		return
	}

	if err := h.db.Delete(&models.Store{}, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Store deleted")
}
