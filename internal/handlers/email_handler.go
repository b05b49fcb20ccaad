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

// SendVerificationEmail handles POST /api/email/verification. Re-issues the
// signup verification code for an account that has not verified yet.
func (h *Handler) SendVerificationEmail(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		response.Fail(c, http.StatusBadRequest, "Email is required")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, apperrors.NotFound("user not found"))
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if user.IsVerified {
		response.Fail(c, http.StatusBadRequest, "Email is already verified")
		return
	}

	h.sendVerificationCode(c, &user)

	response.Message(c, http.StatusOK, "Verification email sent")
}
