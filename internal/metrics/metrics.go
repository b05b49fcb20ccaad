package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type StoreMetrics struct {
	OrdersPlaced          prometheus.Counter
	OrderItemsPlaced      prometheus.Counter
	FinanceTransactions   prometheus.Counter
	TotalSoldBumpFailures prometheus.Counter
}

func NewStoreMetrics() *StoreMetrics {
	m := &StoreMetrics{
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "orders_placed_total",
			Help:      "Orders successfully committed.",
		}),
		OrderItemsPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "order_items_placed_total",
			Help:      "Order line items successfully committed.",
		}),
		FinanceTransactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "financial_transactions_total",
			Help:      "Ledger entries recorded on delivered transitions.",
		}),
		TotalSoldBumpFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "total_sold_bump_failures_total",
			Help:      "Post-commit sales counter increments that failed.",
		}),
	}

	prometheus.MustRegister(
		m.OrdersPlaced,
		m.OrderItemsPlaced,
		m.FinanceTransactions,
		m.TotalSoldBumpFailures,
	)
	return m
}

// NewUnregistered builds the same counters without touching the default
// registry. Tests use this to avoid duplicate-registration panics.
func NewUnregistered() *StoreMetrics {
	return &StoreMetrics{
		OrdersPlaced:          prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_placed_total"}),
		OrderItemsPlaced:      prometheus.NewCounter(prometheus.CounterOpts{Name: "order_items_placed_total"}),
		FinanceTransactions:   prometheus.NewCounter(prometheus.CounterOpts{Name: "financial_transactions_total"}),
		TotalSoldBumpFailures: prometheus.NewCounter(prometheus.CounterOpts{Name: "total_sold_bump_failures_total"}),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
