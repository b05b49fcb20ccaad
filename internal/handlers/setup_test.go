package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	config "github.com/fiaz291/ecommerce-korean-backend/configs"
	"github.com/fiaz291/ecommerce-korean-backend/internal/db"
	"github.com/fiaz291/ecommerce-korean-backend/internal/handlers"
	"github.com/fiaz291/ecommerce-korean-backend/internal/metrics"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/orders"
)

type testContext struct {
	db *gorm.DB
}

// newTestHandler builds a Handler over an in-memory SQLite database. The
// optional integrations (email, WhatsApp, uploads, Google sign-in) stay nil;
// handlers treat them as unconfigured.
func newTestHandler(t *testing.T) (*handlers.Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect test database")
	require.NoError(t, db.Migrate(testDB), "failed to auto-migrate models")

	cfg := config.Config{DefaultCurrency: "PKR"}
	cfg.Auth.JWTSecret = "test-secret"

	log := zap.NewNop()
	orderSvc := orders.NewService(testDB, log, metrics.NewUnregistered(), cfg.DefaultCurrency)
	h := handlers.New(testDB, log, cfg, orderSvc, nil, nil, nil, nil)
	return h, testDB
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf []byte
	if body != nil {
		buf, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func seedTestProduct(t *testing.T, testDB *gorm.DB, slug string, inventory int) models.Product {
	t.Helper()
	product := models.Product{
		Name:       slug,
		Slug:       slug,
		SKU:        slug + "-sku",
		Price:      100,
		Inventory:  inventory,
		IsActive:   true,
		CategoryID: 1,
		StoreID:    1,
	}
	require.NoError(t, testDB.Create(&product).Error)
	return product
}
