package models

import "time"

const (
	TransactionTypeOrder   = "order"
	TransactionTypeVoucher = "voucher"
	TransactionTypePayout  = "payout"
)

// FinancialTransaction is a ledger entry. The composite unique index on
// (order_id, transaction_type) guarantees at most one "order"-typed entry per
// order, which closes the duplicate-transaction window on concurrent
// delivered transitions. OrderID is nullable because voucher and payout
// entries are not tied to an order.
type FinancialTransaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"userId"`
	OrderID         *uint     `gorm:"uniqueIndex:idx_tx_order_type" json:"orderId"`
	VoucherID       *uint     `gorm:"index" json:"voucherId"`
	StoreID         *uint     `gorm:"index" json:"storeId"`
	TransactionType string    `gorm:"uniqueIndex:idx_tx_order_type;not null" json:"transactionType"`
	Amount          float64   `gorm:"not null" json:"amount"`
	Currency        string    `gorm:"not null" json:"currency"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
}
