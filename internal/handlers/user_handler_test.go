package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
)

func setupUserRouter(t *testing.T) (*gin.Engine, *testContext) {
	h, testDB := newTestHandler(t)

	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/api/user/signup", h.Signup)
	r.POST("/api/user/login", h.Login)
	r.POST("/api/user/verify-email", h.VerifyEmail)
	r.PATCH("/api/user", h.UpdateUser)
	r.POST("/api/user/forgot-password", h.ForgotPassword)
	r.POST("/api/user/reset-password", h.ResetPassword)

	return r, &testContext{db: testDB}
}

func signupBody(email string) gin.H {
	return gin.H{
		"email":     email,
		"password":  "secret123",
		"firstName": "Mina",
		"lastName":  "Kim",
	}
}

func TestSignupAndLoginFlow(t *testing.T) {
	router, tc := setupUserRouter(t)
	const email = "mina@example.com"

	t.Run("signup creates an unverified account", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/signup", signupBody(email)))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var user models.User
		require.NoError(t, tc.db.Where("email = ?", email).First(&user).Error)
		assert.False(t, user.IsVerified)
		assert.NotEqual(t, "secret123", user.Password, "password must be hashed")
		require.NotNil(t, user.Code, "verification code must be stored")
	})

	t.Run("duplicate signup is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/signup", signupBody(email)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login is refused before verification", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/login",
			gin.H{"email": email, "password": "secret123"}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("verify-email flips the flag", func(t *testing.T) {
		var user models.User
		require.NoError(t, tc.db.Where("email = ?", email).First(&user).Error)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/verify-email",
			gin.H{"email": email, "code": *user.Code}))

		assert.Equal(t, http.StatusOK, rec.Code)

		require.NoError(t, tc.db.Where("email = ?", email).First(&user).Error)
		assert.True(t, user.IsVerified)
	})

	t.Run("login succeeds after verification and returns a token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/login",
			gin.H{"email": email, "password": "secret123"}))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data models.User `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Data.Token)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/login",
			gin.H{"email": email, "password": "wrong"}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUpdateUserHandler(t *testing.T) {
	router, tc := setupUserRouter(t)

	user := models.User{Email: "joon@example.com", Password: "x", FirstName: "Joon", LastName: "Park", IsVerified: true}
	require.NoError(t, tc.db.Create(&user).Error)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPatch, "/api/user",
			gin.H{"id": user.ID, "city": "Busan"}))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var reloaded models.User
		require.NoError(t, tc.db.First(&reloaded, user.ID).Error)
		assert.Equal(t, "Busan", reloaded.City)
		assert.Equal(t, "Joon", reloaded.FirstName)
		assert.True(t, reloaded.IsVerified)
	})

	t.Run("phone number change drops the verified flag", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPatch, "/api/user",
			gin.H{"id": user.ID, "phoneNumber": "+92-300-0000000"}))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var reloaded models.User
		require.NoError(t, tc.db.First(&reloaded, user.ID).Error)
		assert.False(t, reloaded.IsVerified)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	router, tc := setupUserRouter(t)
	const email = "reset@example.com"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/signup", signupBody(email)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/forgot-password", gin.H{"email": email}))
	assert.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, tc.db.Where("email = ?", email).First(&user).Error)
	require.NotNil(t, user.Code)

	t.Run("wrong code is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/reset-password",
			gin.H{"email": email, "code": "00000", "newPassword": "newpass1"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reset succeeds and clears the code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/reset-password",
			gin.H{"email": email, "code": *user.Code, "newPassword": "newpass1"}))

		assert.Equal(t, http.StatusOK, rec.Code)

		var reloaded models.User
		require.NoError(t, tc.db.Where("email = ?", email).First(&reloaded).Error)
		assert.Nil(t, reloaded.Code)
	})
}
