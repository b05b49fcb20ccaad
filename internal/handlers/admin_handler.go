package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/auth"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

// AdminLogin handles POST /api/admin/user/login.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		response.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var admin models.Admin
	if err := h.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		response.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !auth.CheckPassword(admin.Password, req.Password, req.Email) {
		response.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.MintToken([]byte(h.cfg.Auth.JWTSecret), admin.Email, admin.FirstName, admin.LastName)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.db.Model(&admin).Update("token", token).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	admin.Token = token
	response.OK(c, admin)
}

type createAdminRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	PhoneNumber string  `json:"phoneNumber"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	ZipCode     string  `json:"zipCode"`
	Country     string  `json:"country"`
	DateOfBirth *string `json:"dateOfBirth"`
	StoreID     *uint   `json:"storeId"`
}

// CreateAdmin handles POST /api/admin/user.
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	for field, value := range map[string]string{
		"email": req.Email, "password": req.Password, "firstName": req.FirstName,
	} {
		if value == "" {
			response.Fail(c, http.StatusBadRequest, field+" is required")
			return
		}
	}

	var existingCount int64
	h.db.Model(&models.Admin{}).Where("email = ?", req.Email).Count(&existingCount)
	if existingCount > 0 {
		response.Fail(c, http.StatusBadRequest, "Email already in use")
		return
	}

	hashed, err := auth.HashPassword(req.Password, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	admin := models.Admin{
		Email:       req.Email,
		Password:    hashed,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		StoreID:     req.StoreID,
		IsActive:    true,
	}
	if req.Country != "" {
		admin.Country = req.Country
	}
	if req.DateOfBirth != nil {
		if dob, err := time.Parse(time.RFC3339, *req.DateOfBirth); err == nil {
			admin.DateOfBirth = &dob
		}
	}

	if err := h.db.Create(&admin).Error; err != nil {
		h.log.Error("admin create failed", zap.String("email", req.Email), zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Created(c, admin)
}

type updateAdminRequest struct {
	ID          uint    `json:"id" binding:"required"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zipCode"`
	Country     *string `json:"country"`
	IsActive    *bool   `json:"isActive"`
	StoreID     *uint   `json:"storeId"`
}

// UpdateAdmin handles PATCH /api/admin/user.
func (h *Handler) UpdateAdmin(c *gin.Context) {
	var req updateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "id is required")
		return
	}

	var admin models.Admin
	if err := h.db.First(&admin, req.ID).Error; err != nil {
		response.Fail(c, http.StatusBadRequest, "Admin not found")
		return
	}

	updates := map[string]any{}
	setIf(updates, "first_name", req.FirstName)
	setIf(updates, "last_name", req.LastName)
	setIf(updates, "phone_number", req.PhoneNumber)
	setIf(updates, "address", req.Address)
	setIf(updates, "city", req.City)
	setIf(updates, "state", req.State)
	setIf(updates, "zip_code", req.ZipCode)
	setIf(updates, "country", req.Country)
	setIf(updates, "is_active", req.IsActive)
	setIf(updates, "store_id", req.StoreID)

	if len(updates) > 0 {
		if err := h.db.Model(&admin).Updates(updates).Error; err != nil {
			response.Error(c, apperrors.Persistence(err))
			return
		}
	}

	if err := h.db.First(&admin, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}
	response.OK(c, admin)
}

// GetAdminUsers handles GET /api/admin/user.
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, limit, offset := pageParams(c, 50)

	var admins []models.Admin
	if err := h.db.Limit(limit).Offset(offset).Find(&admins).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var totalCount int64
	if err := h.db.Model(&models.Admin{}).Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"admins":     admins,
		"pagination": paginate(totalCount, page, limit),
	})
}

// GetAllUsers handles GET /api/admin/users, listing storefront
// accounts for the back office.
func (h *Handler) GetAllUsers(c *gin.Context) {
	h.GetUsers(c)
}
