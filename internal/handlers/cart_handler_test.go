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

func setupCartRouter(t *testing.T) (*gin.Engine, *testContext) {
	h, testDB := newTestHandler(t)

	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/api/cart", h.AddCartItem)
	r.GET("/api/cart", h.GetCartItems)
	r.DELETE("/api/cart", h.DeleteCartItem)

	return r, &testContext{db: testDB}
}

func TestAddCartItemHandler(t *testing.T) {
	router, tc := setupCartRouter(t)
	product := seedTestProduct(t, tc.db, "sheet-mask", 5)

	t.Run("adds a new cart item", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/cart",
			gin.H{"userId": 7, "productId": product.ID, "quantity": 2}))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var count int64
		tc.db.Model(&models.CartItem{}).Where("user_id = ?", 7).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("re-adding the same product replaces the quantity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/cart",
			gin.H{"userId": 7, "productId": product.ID, "quantity": 4}))

		assert.Equal(t, http.StatusOK, rec.Code)

		var item models.CartItem
		require.NoError(t, tc.db.Where("user_id = ? AND product_id = ?", 7, product.ID).First(&item).Error)
		assert.Equal(t, 4, item.Quantity)

		var count int64
		tc.db.Model(&models.CartItem{}).Where("user_id = ?", 7).Count(&count)
		assert.Equal(t, int64(1), count, "still one row per (user, product)")
	})

	t.Run("rejects quantity above inventory", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/cart",
			gin.H{"userId": 7, "productId": product.ID, "quantity": 99}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/cart",
			gin.H{"userId": 7, "productId": 99999, "quantity": 1}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetCartItemsHandler(t *testing.T) {
	router, tc := setupCartRouter(t)
	product := seedTestProduct(t, tc.db, "lip-tint", 5)
	require.NoError(t, tc.db.Create(&models.CartItem{UserID: 7, ProductID: product.ID, Quantity: 1}).Error)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodGet, "/api/cart?userId=7", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.CartItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Data[0].Product)
	assert.Equal(t, product.Slug, resp.Data[0].Product.Slug)
}

func TestDeleteCartItemHandler(t *testing.T) {
	router, tc := setupCartRouter(t)
	product := seedTestProduct(t, tc.db, "sunscreen", 5)
	require.NoError(t, tc.db.Create(&models.CartItem{UserID: 7, ProductID: product.ID, Quantity: 1}).Error)

	t.Run("deletes an existing item", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := jsonRequest(http.MethodDelete, "/api/cart", gin.H{"userId": 7, "productId": product.ID})
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var count int64
		tc.db.Model(&models.CartItem{}).Where("user_id = ?", 7).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("missing item returns 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := jsonRequest(http.MethodDelete, "/api/cart", gin.H{"userId": 7, "productId": product.ID})
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
