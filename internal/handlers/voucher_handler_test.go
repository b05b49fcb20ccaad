package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
)

func setupVoucherRouter(t *testing.T) (*gin.Engine, *testContext) {
	h, testDB := newTestHandler(t)

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/api/voucher", h.GetVoucherByCode)
	r.POST("/api/admin/voucher", h.CreateVoucher)

	return r, &testContext{db: testDB}
}

func TestGetVoucherByCodeHandler(t *testing.T) {
	router, tc := setupVoucherRouter(t)

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, tc.db.Create(&models.Voucher{Code: "WELCOME10", Amount: 10, IsActive: true}).Error)
	require.NoError(t, tc.db.Create(&models.Voucher{Code: "OLD5", Amount: 5, IsActive: true, ExpiresAt: &expired}).Error)
	require.NoError(t, tc.db.Create(&models.Voucher{Code: "DISABLED", Amount: 5, IsActive: false}).Error)

	t.Run("active voucher resolves", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodGet, "/api/voucher?code=WELCOME10", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("expired voucher is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodGet, "/api/voucher?code=OLD5", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("disabled voucher is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodGet, "/api/voucher?code=DISABLED", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing code is a bad request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodGet, "/api/voucher", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateVoucherHandler(t *testing.T) {
	router, tc := setupVoucherRouter(t)
	require.NoError(t, tc.db.Create(&models.Voucher{Code: "TAKEN", Amount: 5, IsActive: true}).Error)

	t.Run("creates a voucher", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/admin/voucher",
			gin.H{"code": "SPRING20", "amount": 20}))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/admin/voucher",
			gin.H{"code": "TAKEN", "amount": 5}))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/admin/voucher",
			gin.H{"code": "ZERO", "amount": 0}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
