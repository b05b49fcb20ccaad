package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/auth"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

// Social accounts get an unusable sentinel password; they authenticate
// through the provider only.
const socialAccountPassword = "social-login-no-password"

type sendCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	ID          uint   `json:"id"`
}

// SendCode handles POST /api/user/send-code: store a fresh OTP on the user
// and push it over WhatsApp.
func (h *Handler) SendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PhoneNumber == "" {
		response.Fail(c, http.StatusBadRequest, "phoneNumber is required")
		return
	}

	code := randomCode()
	if req.ID != 0 {
		if err := h.db.Model(&models.User{}).Where("id = ?", req.ID).
			Update("verification_code", code).Error; err != nil {
			response.Error(c, apperrors.Persistence(err))
			return
		}
	}

	if h.whatsapp == nil {
		response.Fail(c, http.StatusInternalServerError, "WhatsApp sender is not configured")
		return
	}
	if err := h.whatsapp.SendCode(c.Request.Context(), req.PhoneNumber, code); err != nil {
		h.log.Warn("otp send failed", zap.String("phone", req.PhoneNumber), zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "Failed to send verification code")
		return
	}

	response.Message(c, http.StatusOK, "Verification code sent")
}

type verifyNumberRequest struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
}

// VerifyNumber handles POST /api/user/verify-number.
func (h *Handler) VerifyNumber(c *gin.Context) {
	var req verifyNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := h.db.First(&user, req.ID).Error; err != nil {
		response.Fail(c, http.StatusBadRequest, "User Not found")
		return
	}
	if user.VerificationCode == nil || *user.VerificationCode != req.Code {
		response.Fail(c, http.StatusBadRequest, "Invalid verification code")
		return
	}

	response.Message(c, http.StatusOK, "code verified")
}

type socialSigninRequest struct {
	Provider string         `json:"provider"`
	DataSet  map[string]any `json:"dataSet"`
}

// SocialSignin handles POST /api/user/social-signin. Google web logins carry
// an authorization code we exchange server-side; mobile Google and Facebook
// logins pass the already-fetched profile through.
func (h *Handler) SocialSignin(c *gin.Context) {
	var req socialSigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var profile models.User
	switch req.Provider {
	case "google":
		if h.google == nil {
			response.Fail(c, http.StatusInternalServerError, "Google sign-in is not configured")
			return
		}
		code, _ := req.DataSet["code"].(string)
		gp, err := h.google.Exchange(c.Request.Context(), code)
		if err != nil {
			h.log.Warn("google exchange failed", zap.Error(err))
			response.Fail(c, http.StatusInternalServerError, "Error while getting google user data")
			return
		}
		profile = models.User{
			SocialID:          &gp.Sub,
			FirstName:         gp.GivenName,
			LastName:          gp.FamilyName,
			Email:             gp.Email,
			ProfilePictureURL: gp.Picture,
		}
	case "googlemobile":
		profile = profileFromDataSet(req.DataSet, "socialId", "firstName", "lastName", "email", "profilePicture")
	case "facebook":
		profile = profileFromDataSet(req.DataSet, "id", "first_name", "last_name", "email", "picture")
	default:
		response.Fail(c, http.StatusBadRequest, "Invalid provider")
		return
	}
	if profile.Email == "" {
		response.Fail(c, http.StatusBadRequest, "Provider did not return an email")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", profile.Email).First(&user).Error; err != nil {
		user = profile
		user.IsVerified = true
		user.Password = socialAccountPassword
		if err := h.db.Create(&user).Error; err != nil {
			h.log.Error("social signup failed", zap.String("email", profile.Email), zap.Error(err))
			response.Error(c, apperrors.Persistence(err))
			return
		}
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

func profileFromDataSet(dataSet map[string]any, idKey, firstKey, lastKey, emailKey, pictureKey string) models.User {
	str := func(key string) string {
		v, _ := dataSet[key].(string)
		return v
	}
	socialID := str(idKey)
	return models.User{
		SocialID:          &socialID,
		FirstName:         str(firstKey),
		LastName:          str(lastKey),
		Email:             str(emailKey),
		ProfilePictureURL: str(pictureKey),
	}
}
