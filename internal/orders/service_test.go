package orders_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/db"
	"github.com/fiaz291/ecommerce-korean-backend/internal/metrics"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/orders"
)

func setupService(t *testing.T) (*orders.Service, *gorm.DB) {
	t.Helper()

	testDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect test database")
	require.NoError(t, db.Migrate(testDB), "failed to migrate models")

	svc := orders.NewService(testDB, zap.NewNop(), metrics.NewUnregistered(), "PKR")
	return svc, testDB
}

func seedProduct(t *testing.T, testDB *gorm.DB, name string, totalSold int) models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		Slug:       name,
		SKU:        name + "-sku",
		Price:      100,
		Inventory:  50,
		TotalSold:  totalSold,
		IsActive:   true,
		CategoryID: 1,
		StoreID:    1,
	}
	require.NoError(t, testDB.Create(&product).Error)
	return product
}

func placeInput(userID uint, items ...orders.PlaceOrderItem) orders.PlaceOrderInput {
	return orders.PlaceOrderInput{
		UserID:       userID,
		OrderItems:   items,
		OrderAddress: map[string]any{"city": "Seoul", "street": "1-1"},
	}
}

func TestPlaceOrder(t *testing.T) {
	t.Run("creates order with items and exact total", func(t *testing.T) {
		svc, testDB := setupService(t)
		p1 := seedProduct(t, testDB, "serum", 0)
		p2 := seedProduct(t, testDB, "mask", 0)

		order, err := svc.PlaceOrder(context.Background(), placeInput(7,
			orders.PlaceOrderItem{ProductID: p1.ID, Quantity: 2, Price: 10.50, Slug: p1.Slug},
			orders.PlaceOrderItem{ProductID: p2.ID, Quantity: 1, Price: 4.00, Slug: p2.Slug},
		))
		require.NoError(t, err)

		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, 25.00, order.TotalAmount)
		assert.Len(t, order.OrderItems, 2)

		var persisted models.Order
		require.NoError(t, testDB.Preload("OrderItems").First(&persisted, order.ID).Error)
		assert.Equal(t, 25.00, persisted.TotalAmount)
		assert.Len(t, persisted.OrderItems, 2)
		assert.Equal(t, 10.50, persisted.OrderItems[0].Price)
	})

	t.Run("removes only the originating cart rows", func(t *testing.T) {
		svc, testDB := setupService(t)
		p := seedProduct(t, testDB, "toner", 0)

		mine := models.CartItem{UserID: 7, ProductID: p.ID, Quantity: 1}
		theirs := models.CartItem{UserID: 8, ProductID: p.ID, Quantity: 3}
		require.NoError(t, testDB.Create(&mine).Error)
		require.NoError(t, testDB.Create(&theirs).Error)

		_, err := svc.PlaceOrder(context.Background(), placeInput(7,
			orders.PlaceOrderItem{ProductID: p.ID, Quantity: 1, Price: 5, CartID: mine.ID},
		))
		require.NoError(t, err)

		var count int64
		testDB.Model(&models.CartItem{}).Where("id = ?", mine.ID).Count(&count)
		assert.Zero(t, count, "ordered cart row should be gone")
		testDB.Model(&models.CartItem{}).Where("id = ?", theirs.ID).Count(&count)
		assert.Equal(t, int64(1), count, "unrelated cart row must survive")
	})

	t.Run("bumps total_sold per item after commit", func(t *testing.T) {
		svc, testDB := setupService(t)
		p := seedProduct(t, testDB, "cleanser", 5)

		_, err := svc.PlaceOrder(context.Background(), placeInput(7,
			orders.PlaceOrderItem{ProductID: p.ID, Quantity: 3, Price: 9},
		))
		require.NoError(t, err)

		var after models.Product
		require.NoError(t, testDB.First(&after, p.ID).Error)
		assert.Equal(t, 8, after.TotalSold)
	})

	t.Run("rejects empty order items", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.PlaceOrder(context.Background(), placeInput(7))
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("rejects missing user and address before touching the store", func(t *testing.T) {
		svc, testDB := setupService(t)
		p := seedProduct(t, testDB, "ampoule", 0)
		item := orders.PlaceOrderItem{ProductID: p.ID, Quantity: 1, Price: 5}

		_, err := svc.PlaceOrder(context.Background(), orders.PlaceOrderInput{
			OrderItems:   []orders.PlaceOrderItem{item},
			OrderAddress: map[string]any{"city": "Seoul"},
		})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

		_, err = svc.PlaceOrder(context.Background(), orders.PlaceOrderInput{
			UserID:     7,
			OrderItems: []orders.PlaceOrderItem{item},
		})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

		var count int64
		testDB.Model(&models.Order{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.PlaceOrder(context.Background(), placeInput(7,
			orders.PlaceOrderItem{ProductID: 1, Quantity: 0, Price: 5},
		))
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("failed transaction leaves no partial state", func(t *testing.T) {
		svc, testDB := setupService(t)
		p := seedProduct(t, testDB, "essence", 0)
		cart := models.CartItem{UserID: 7, ProductID: p.ID, Quantity: 1}
		require.NoError(t, testDB.Create(&cart).Error)

		// Dropping the cart table makes the in-transaction delete fail after
		// the order insert, forcing a rollback.
		require.NoError(t, testDB.Migrator().DropTable(&models.CartItem{}))

		_, err := svc.PlaceOrder(context.Background(), placeInput(7,
			orders.PlaceOrderItem{ProductID: p.ID, Quantity: 1, Price: 5, CartID: cart.ID},
		))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrPersistence))

		var orderCount, itemCount int64
		testDB.Model(&models.Order{}).Count(&orderCount)
		testDB.Model(&models.OrderItem{}).Count(&itemCount)
		assert.Zero(t, orderCount, "order insert must roll back")
		assert.Zero(t, itemCount, "order items must roll back")
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	seedOrder := func(t *testing.T, testDB *gorm.DB, status string) models.Order {
		t.Helper()
		order := models.Order{
			UserID:       7,
			TotalAmount:  120,
			Status:       status,
			OrderAddress: map[string]any{"city": "Seoul"},
		}
		require.NoError(t, testDB.Create(&order).Error)
		return order
	}

	strPtr := func(s string) *string { return &s }

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		svc, testDB := setupService(t)
		order := seedOrder(t, testDB, models.OrderStatusPending)

		updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, orders.UpdateOrderInput{
			PaymentStatus: strPtr("paid"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, updated.Status)
		assert.Equal(t, "paid", updated.PaymentStatus)
	})

	t.Run("delivered transition records exactly one transaction", func(t *testing.T) {
		svc, testDB := setupService(t)
		order := seedOrder(t, testDB, models.OrderStatusShipped)

		updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, orders.UpdateOrderInput{
			Status: strPtr(models.OrderStatusDelivered),
		})
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusDelivered, updated.Status)

		var entries []models.FinancialTransaction
		require.NoError(t, testDB.Where("order_id = ?", order.ID).Find(&entries).Error)
		require.Len(t, entries, 1)
		assert.Equal(t, models.TransactionTypeOrder, entries[0].TransactionType)
		assert.Equal(t, 120.0, entries[0].Amount)
		assert.Equal(t, "PKR", entries[0].Currency)
		assert.Equal(t, fmt.Sprintf("Order #%d delivered", order.ID), entries[0].Description)
	})

	t.Run("combined status and payment update still records the ledger entry", func(t *testing.T) {
		svc, testDB := setupService(t)
		order := seedOrder(t, testDB, models.OrderStatusShipped)

		updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, orders.UpdateOrderInput{
			Status:        strPtr(models.OrderStatusDelivered),
			PaymentStatus: strPtr("paid"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusDelivered, updated.Status)
		assert.Equal(t, "paid", updated.PaymentStatus)

		var count int64
		testDB.Model(&models.FinancialTransaction{}).
			Where("order_id = ? AND transaction_type = ?", order.ID, models.TransactionTypeOrder).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("writes only the supplied columns", func(t *testing.T) {
		svc, testDB := setupService(t)
		order := seedOrder(t, testDB, models.OrderStatusPending)

		var captured []string
		require.NoError(t, testDB.Callback().Update().Before("gorm:update").
			Register("capture_update_columns", func(d *gorm.DB) {
				if m, ok := d.Statement.Dest.(map[string]any); ok {
					for col := range m {
						captured = append(captured, col)
					}
				}
			}))
		defer testDB.Callback().Update().Remove("capture_update_columns")

		_, err := svc.UpdateOrderStatus(context.Background(), order.ID, orders.UpdateOrderInput{
			Status: strPtr(models.OrderStatusShipped),
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"status"}, captured)
	})

	t.Run("repeated delivered update does not duplicate the transaction", func(t *testing.T) {
		svc, testDB := setupService(t)
		order := seedOrder(t, testDB, models.OrderStatusShipped)

		for i := 0; i < 3; i++ {
			_, err := svc.UpdateOrderStatus(context.Background(), order.ID, orders.UpdateOrderInput{
				Status: strPtr(models.OrderStatusDelivered),
			})
			require.NoError(t, err)
		}

		var count int64
		testDB.Model(&models.FinancialTransaction{}).
			Where("order_id = ? AND transaction_type = ?", order.ID, models.TransactionTypeOrder).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("non-delivered updates record nothing", func(t *testing.T) {
		svc, testDB := setupService(t)
		order := seedOrder(t, testDB, models.OrderStatusPending)

		_, err := svc.UpdateOrderStatus(context.Background(), order.ID, orders.UpdateOrderInput{
			Status: strPtr(models.OrderStatusShipped),
		})
		require.NoError(t, err)

		var count int64
		testDB.Model(&models.FinancialTransaction{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("missing order maps to not found", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.UpdateOrderStatus(context.Background(), 9999, orders.UpdateOrderInput{
			Status: strPtr(models.OrderStatusShipped),
		})
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("concurrent delivered transitions produce one ledger row", func(t *testing.T) {
		// File-backed sqlite so every goroutine shares the schema; the busy
		// timeout absorbs writer contention.
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "orders.db"))
		testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		require.NoError(t, err)
		require.NoError(t, db.Migrate(testDB))

		svc := orders.NewService(testDB, zap.NewNop(), metrics.NewUnregistered(), "PKR")

		order := models.Order{UserID: 7, TotalAmount: 99, Status: models.OrderStatusShipped}
		require.NoError(t, testDB.Create(&order).Error)

		const workers = 8
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				delivered := models.OrderStatusDelivered
				// Contending updates may fail on a busy database; the
				// invariant under test is the ledger row count.
				_, _ = svc.UpdateOrderStatus(context.Background(), order.ID, orders.UpdateOrderInput{
					Status: &delivered,
				})
			}()
		}
		wg.Wait()

		var count int64
		testDB.Model(&models.FinancialTransaction{}).
			Where("order_id = ? AND transaction_type = ?", order.ID, models.TransactionTypeOrder).
			Count(&count)
		assert.Equal(t, int64(1), count)
	})
}
