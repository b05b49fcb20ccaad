// Package orders implements the order placement and fulfillment workflows.
// Placement converts cart rows into an order atomically; fulfillment applies
// partial status updates and records the order's ledger entry exactly once
// when it first becomes delivered.
package orders

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/metrics"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
)

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	metrics  *metrics.StoreMetrics
	currency string
}

func NewService(db *gorm.DB, log *zap.Logger, m *metrics.StoreMetrics, currency string) *Service {
	return &Service{db: db, log: log, metrics: m, currency: currency}
}

type PlaceOrderItem struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Slug      string  `json:"slug"`
	CartID    uint    `json:"cartId"`
}

type VoucherInput struct {
	Amount float64 `json:"amount"`
}

type PlaceOrderInput struct {
	UserID            uint             `json:"userId"`
	OrderItems        []PlaceOrderItem `json:"orderItems"`
	OrderAddress      map[string]any   `json:"orderAddress"`
	BillingAddress    map[string]any   `json:"billingAddress"`
	Vouchers          *VoucherInput    `json:"vouchers"`
	DeliveryChargesID *uint            `json:"deliveryChargesId"`
}

// PlaceOrder validates the request, then creates the order with its line
// items and removes the originating cart rows in a single transaction. The
// commit is the atomicity boundary; the total_sold counters are bumped
// afterwards, best effort.
//
// Line-item prices are snapshots supplied by the caller and are written
// verbatim, without re-reading the product rows. Inventory is not decremented
// here either; it is checked on the cart-add path only.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if in.UserID == 0 {
		return nil, apperrors.InvalidInput("userId is required")
	}
	if len(in.OrderItems) == 0 {
		return nil, apperrors.InvalidInput("orderItems must not be empty")
	}
	if in.OrderAddress == nil {
		return nil, apperrors.InvalidInput("orderAddress is required")
	}
	for _, item := range in.OrderItems {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, apperrors.InvalidInput("each order item needs a productId and a positive quantity")
		}
	}

	var totalAmount float64
	for _, item := range in.OrderItems {
		totalAmount += item.Price * float64(item.Quantity)
	}

	var discount float64
	if in.Vouchers != nil {
		discount = in.Vouchers.Amount
	}

	items := make([]models.OrderItem, 0, len(in.OrderItems))
	cartIDs := make([]uint, 0, len(in.OrderItems))
	for _, item := range in.OrderItems {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Slug:      item.Slug,
		})
		cartIDs = append(cartIDs, item.CartID)
	}

	order := models.Order{
		UserID:               in.UserID,
		TotalAmount:          totalAmount,
		Discount:             discount,
		DeliveryChargeRuleID: in.DeliveryChargesID,
		OrderAddress:         in.OrderAddress,
		BillingAddress:       in.BillingAddress,
		Status:               models.OrderStatusPending,
		OrderItems:           items,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		// Duplicate cart ids in the request collapse into one delete.
		if err := tx.Delete(&models.CartItem{}, "id IN ?", cartIDs).Error; err != nil {
			return fmt.Errorf("delete cart items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	s.metrics.OrdersPlaced.Inc()
	s.metrics.OrderItemsPlaced.Add(float64(len(items)))

	// Post-commit, outside the transaction. A failed increment is logged and
	// the order stands.
	for _, item := range in.OrderItems {
		s.bumpTotalSold(ctx, item.ProductID, item.Quantity)
	}

	return &order, nil
}

// bumpTotalSold is an atomic in-place add at the store, never a
// read-modify-write in application code.
func (s *Service) bumpTotalSold(ctx context.Context, productID uint, quantity int) {
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("total_sold", gorm.Expr("total_sold + ?", quantity)).Error
	if err != nil {
		s.metrics.TotalSoldBumpFailures.Inc()
		s.log.Warn("total_sold increment failed",
			zap.Uint("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err))
	}
}

type UpdateOrderInput struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

// UpdateOrderStatus applies a partial update to an order. Fields the caller
// leaves out keep their previous values. When the update moves the order into
// delivered for the first time, one "order"-typed financial transaction is
// recorded for it.
//
// The read, update, existence check and ledger insert share one transaction,
// and the insert rides the (order_id, transaction_type) unique index with
// ON CONFLICT DO NOTHING, so concurrent delivered transitions still produce
// exactly one ledger row.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uint, in UpdateOrderInput) (*models.Order, error) {
	if orderID == 0 {
		return nil, apperrors.InvalidInput("order id is required")
	}

	var updated models.Order
	var recorded bool

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Order
		if err := tx.First(&existing, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(fmt.Sprintf("order %d", orderID))
			}
			return fmt.Errorf("load order: %w", err)
		}

		// Updates assigns the map values back onto existing, so the
		// pre-update status has to be captured first.
		prevStatus := existing.Status

		updates := map[string]any{}
		if in.Status != nil {
			updates["status"] = *in.Status
		}
		if in.PaymentStatus != nil {
			updates["payment_status"] = *in.PaymentStatus
		}

		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("update order: %w", err)
			}
		}

		isBecomingDelivered := prevStatus != models.OrderStatusDelivered &&
			in.Status != nil && *in.Status == models.OrderStatusDelivered

		if isBecomingDelivered {
			var count int64
			if err := tx.Model(&models.FinancialTransaction{}).
				Where("order_id = ? AND transaction_type = ?", existing.ID, models.TransactionTypeOrder).
				Count(&count).Error; err != nil {
				return fmt.Errorf("check existing transaction: %w", err)
			}

			if count == 0 {
				orderRef := existing.ID
				entry := models.FinancialTransaction{
					UserID:          existing.UserID,
					OrderID:         &orderRef,
					StoreID:         existing.StoreID,
					TransactionType: models.TransactionTypeOrder,
					Amount:          existing.TotalAmount,
					Currency:        s.currency,
					Description:     fmt.Sprintf("Order #%d delivered", existing.ID),
				}
				res := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "order_id"}, {Name: "transaction_type"}},
					DoNothing: true,
				}).Create(&entry)
				if res.Error != nil {
					return fmt.Errorf("record transaction: %w", res.Error)
				}
				// Zero rows means a concurrent transition won the insert;
				// only the winning transaction logs and counts it.
				recorded = res.RowsAffected == 1
			}
		}

		updated = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.Persistence(err)
	}

	if recorded {
		s.metrics.FinanceTransactions.Inc()
		s.log.Info("financial transaction recorded",
			zap.Uint("order_id", updated.ID),
			zap.Float64("amount", updated.TotalAmount))
	}

	return &updated, nil
}
