package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

const financeDateLayout = "2006-01-02"

// GetTransactions handles GET /api/finance/transactions. Supports optional
// from/to date bounds (inclusive) and pagination.
func (h *Handler) GetTransactions(c *gin.Context) {
	page, limit, offset := pageParams(c, 20)

	q := h.db.Model(&models.FinancialTransaction{})

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(financeDateLayout, from)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		q = q.Where("created_at >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(financeDateLayout, to)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		q = q.Where("created_at < ?", t.AddDate(0, 0, 1))
	}
	if txType := c.Query("type"); txType != "" {
		q = q.Where("transaction_type = ?", txType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var transactions []models.FinancialTransaction
	if err := q.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&transactions).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"transactions": transactions,
		"pagination":   paginate(total, page, limit),
	})
}

type dailySummary struct {
	Day     string  `json:"day"`
	Count   int64   `json:"count"`
	Amount  float64 `json:"amount"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// GetTransactionSummary handles GET /api/finance/summary. Returns per-day
// totals within the requested window plus an overall sum.
func (h *Handler) GetTransactionSummary(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(financeDateLayout, v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(financeDateLayout, v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = t.AddDate(0, 0, 1)
	}

	var days []dailySummary
	err := h.db.Model(&models.FinancialTransaction{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count, SUM(amount) AS amount, " +
			"SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END) AS income, " +
			"SUM(CASE WHEN amount < 0 THEN amount ELSE 0 END) AS expense").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&days).Error
	if err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var totalAmount, totalIncome, totalExpense float64
	var totalCount int64
	for _, d := range days {
		totalAmount += d.Amount
		totalIncome += d.Income
		totalExpense += d.Expense
		totalCount += d.Count
	}

	response.OK(c, gin.H{
		"days":         days,
		"totalAmount":  totalAmount,
		"totalIncome":  totalIncome,
		"totalExpense": totalExpense,
		"totalCount":   totalCount,
		"currency":     h.cfg.DefaultCurrency,
	})
}
