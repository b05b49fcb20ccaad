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

func setupProductRouter(t *testing.T) (*gin.Engine, *testContext) {
	h, testDB := newTestHandler(t)

	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/api/product", h.CreateProduct)
	r.GET("/api/product", h.GetProducts)
	r.GET("/api/product/slug/:productSlug", h.GetProductBySlug)
	r.PATCH("/api/product", h.UpdateProduct)
	r.GET("/api/product/search", h.SearchProducts)
	r.GET("/api/tag", h.GetProductsByTag)

	return r, &testContext{db: testDB}
}

func productPayload(name, slug, sku string) gin.H {
	return gin.H{
		"name":        name,
		"slug":        slug,
		"description": "a product",
		"price":       49.99,
		"SKU":         sku,
		"inventory":   10,
		"categoryId":  1,
		"storeId":     1,
		"tags":        []string{"skincare"},
	}
}

func TestCreateProductHandler(t *testing.T) {
	router, tc := setupProductRouter(t)

	t.Run("creates a product", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/product",
			productPayload("Green Tea Serum", "green-tea-serum", "GTS-1")))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var count int64
		tc.db.Model(&models.Product{}).Where("slug = ?", "green-tea-serum").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects a duplicate slug", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/product",
			productPayload("Another Serum", "green-tea-serum", "GTS-2")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a duplicate SKU", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/product",
			productPayload("Third Serum", "third-serum", "GTS-1")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/product", gin.H{"name": "No Price"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetProductBySlugHandler(t *testing.T) {
	router, tc := setupProductRouter(t)
	seedTestProduct(t, tc.db, "rice-toner", 3)
	seedTestProduct(t, tc.db, "sold-out-toner", 0)

	t.Run("resolves an in-stock product", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodGet, "/api/product/slug/rice-toner", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data models.Product `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "rice-toner", resp.Data.Slug)
	})

	t.Run("out-of-stock product is not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, jsonRequest(http.MethodGet, "/api/product/slug/sold-out-toner", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateProductHandler(t *testing.T) {
	router, tc := setupProductRouter(t)
	product := seedTestProduct(t, tc.db, "mist", 5)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPatch, "/api/product",
		gin.H{"id": product.ID, "price": 75.0, "tags": []string{"hydrating", "mist"}}))

	assert.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Product
	require.NoError(t, tc.db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 75.0, reloaded.Price)
	assert.Equal(t, []string{"hydrating", "mist"}, reloaded.Tags)
	assert.Equal(t, product.Inventory, reloaded.Inventory, "omitted fields keep their values")
}

func TestSearchProductsHandler(t *testing.T) {
	router, tc := setupProductRouter(t)
	seedTestProduct(t, tc.db, "vitamin-drop", 5)
	seedTestProduct(t, tc.db, "carrot-cream", 5)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodGet, "/api/product/search?text=vitamin", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Products []models.Product `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "vitamin-drop", resp.Data.Products[0].Slug)
}

func TestGetProductsByTagHandler(t *testing.T) {
	router, tc := setupProductRouter(t)

	tagged := models.Product{
		Name: "mugwort-pack", Slug: "mugwort-pack", SKU: "mugwort-pack-sku",
		Price: 100, Inventory: 5, IsActive: true, CategoryID: 1, StoreID: 1,
		Tags: []string{"soothing"},
	}
	require.NoError(t, tc.db.Create(&tagged).Error)
	seedTestProduct(t, tc.db, "plain-pack", 5)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodGet, "/api/tag?tag=soothing&limit=10", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "mugwort-pack", resp.Data[0].Slug)
}
