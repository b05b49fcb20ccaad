package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/auth"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/user/login. Only verified accounts may log in; the
// minted token is persisted on the user row and returned.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		response.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		response.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.IsVerified {
		response.Fail(c, http.StatusUnauthorized, "Email is not verified")
		return
	}
	if !auth.CheckPassword(user.Password, req.Password, req.Email) {
		response.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.MintToken([]byte(h.cfg.Auth.JWTSecret), user.Email, user.FirstName, user.LastName)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.db.Model(&user).Update("token", token).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	user.Token = token
	response.OK(c, user)
}

type signupRequest struct {
	Username    *string `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	SocialToken *string `json:"socialToken"`
	PhoneNumber string  `json:"phoneNumber"`
}

// Signup handles POST /api/user/signup. The account starts unverified and a
// verification email goes out after the row is created.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	for field, value := range map[string]string{
		"email": req.Email, "password": req.Password,
		"firstName": req.FirstName, "lastName": req.LastName,
	} {
		if value == "" {
			response.Fail(c, http.StatusBadRequest, field+" is required")
			return
		}
	}

	var existingCount int64
	h.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&existingCount)
	if existingCount > 0 {
		response.Fail(c, http.StatusBadRequest, "Email already in use")
		return
	}

	hashed, err := auth.HashPassword(req.Password, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    hashed,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		SocialToken: req.SocialToken,
		IsVerified:  false,
	}
	if err := h.db.Create(&user).Error; err != nil {
		h.log.Error("signup failed", zap.String("email", req.Email), zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	h.sendVerificationCode(c, &user)

	response.Created(c, user)
}

// sendVerificationCode stores a fresh 5-digit code on the user and mails it.
// Mail failures are logged only.
func (h *Handler) sendVerificationCode(c *gin.Context, user *models.User) {
	code := randomCode()
	if err := h.db.Model(user).Update("code", code).Error; err != nil {
		h.log.Warn("failed to store verification code", zap.Uint("user_id", user.ID), zap.Error(err))
		return
	}
	if h.mailer == nil {
		return
	}
	if err := h.mailer.SendVerificationEmail(c.Request.Context(), user.Email, code); err != nil {
		h.log.Warn("verification email failed", zap.String("email", user.Email), zap.Error(err))
	}
}

// GetUser handles GET /api/user?id=.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := queryUint(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "id is required")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, user)
}

type updateUserRequest struct {
	ID          uint    `json:"id" binding:"required"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Role        *string `json:"role"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	ZipCode     *string `json:"zipCode"`
	Country     *string `json:"country"`
	PhoneNumber *string `json:"phoneNumber"`
	IsVerified  *bool   `json:"isVerified"`
}

// UpdateUser handles PATCH /api/user. Changing the phone number drops the
// verified flag until the new number is confirmed.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "id is required")
		return
	}

	var user models.User
	if err := h.db.First(&user, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusBadRequest, "User Not found")
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	updates := map[string]any{}
	setIf(updates, "first_name", req.FirstName)
	setIf(updates, "last_name", req.LastName)
	setIf(updates, "role", req.Role)
	setIf(updates, "address", req.Address)
	setIf(updates, "city", req.City)
	setIf(updates, "state", req.State)
	setIf(updates, "zip_code", req.ZipCode)
	setIf(updates, "country", req.Country)
	setIf(updates, "is_verified", req.IsVerified)
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
		updates["is_verified"] = false
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			response.Error(c, apperrors.Persistence(err))
			return
		}
	}

	if err := h.db.First(&user, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}
	response.Created(c, user)
}

type updatePasswordRequest struct {
	UserID      uint   `json:"userId"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdatePassword handles PATCH /api/user/password.
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.OldPassword == "" || req.NewPassword == "" {
		response.Fail(c, http.StatusBadRequest, "All fields are required.")
		return
	}

	var user models.User
	if err := h.db.First(&user, req.UserID).Error; err != nil {
		response.Fail(c, http.StatusNotFound, "User not found.")
		return
	}

	if !auth.CheckPassword(user.Password, req.OldPassword, user.Email) {
		response.Fail(c, http.StatusUnauthorized, "Old password is incorrect.")
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword, user.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.db.Model(&user).Update("password", hashed).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Password updated successfully.")
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyEmail handles POST /api/user/verify-email.
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		response.Fail(c, http.StatusBadRequest, "User Not found")
		return
	}
	if user.Code == nil || *user.Code != req.Code {
		response.Fail(c, http.StatusBadRequest, "Invalid verification code")
		return
	}

	if err := h.db.Model(&user).Update("is_verified", true).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "code verified")
}

// CheckUsername handles GET /api/user/check-username?username=.
func (h *Handler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Fail(c, http.StatusBadRequest, "Username is required")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{"available": count == 0})
}

// SearchUsers handles GET /api/users/search?query=.
func (h *Handler) SearchUsers(c *gin.Context) {
	query := c.Query("query")
	page, limit, offset := pageParams(c, 10)

	pattern := "%" + strings.ToLower(query) + "%"
	q := h.db.Model(&models.User{}).Where(
		"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
		pattern, pattern, pattern,
	)

	var users []models.User
	if err := q.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"users":      users,
		"pagination": paginate(totalCount, page, limit),
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /api/user/forgot-password.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		response.Fail(c, http.StatusBadRequest, "Email is required")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		response.Fail(c, http.StatusNotFound, "User with this email does not exist")
		return
	}

	code := randomCode()
	if err := h.db.Model(&user).Update("code", code).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}
	if h.mailer != nil {
		if err := h.mailer.SendPasswordResetEmail(c.Request.Context(), req.Email, code); err != nil {
			h.log.Warn("reset email failed", zap.String("email", req.Email), zap.Error(err))
		}
	}

	response.Message(c, http.StatusOK, "Password reset code has been sent to your email")
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword handles POST /api/user/reset-password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Code == "" || req.NewPassword == "" {
		response.Fail(c, http.StatusBadRequest, "Email, code, and new password are required")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		response.Fail(c, http.StatusNotFound, "User not found")
		return
	}
	if user.Code == nil || *user.Code != req.Code {
		response.Fail(c, http.StatusBadRequest, "Invalid or expired reset code")
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.db.Model(&user).Updates(map[string]any{"password": hashed, "code": nil}).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Message(c, http.StatusOK, "Password has been reset successfully")
}

// GetUsers handles GET /api/users, paginated at a fixed page size.
func (h *Handler) GetUsers(c *gin.Context) {
	page, _ := queryUint(c, "page")
	if page == 0 {
		page = 1
	}
	const limit = 50
	offset := (int(page) - 1) * limit

	var users []models.User
	if err := h.db.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users), "status": http.StatusOK})
}

// randomCode returns a 5-digit numeric code for email/OTP verification.
func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "10000"
	}
	return fmt.Sprintf("%05d", n.Int64()+10000)
}
