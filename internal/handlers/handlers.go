// Package handlers contains the gin handlers for every API resource. All
// dependencies come in through New; nothing here reaches for globals.
package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	config "github.com/fiaz291/ecommerce-korean-backend/configs"
	"github.com/fiaz291/ecommerce-korean-backend/internal/auth"
	"github.com/fiaz291/ecommerce-korean-backend/internal/notifier"
	"github.com/fiaz291/ecommerce-korean-backend/internal/orders"
	"github.com/fiaz291/ecommerce-korean-backend/internal/storage"
)

type Handler struct {
	db       *gorm.DB
	log      *zap.Logger
	cfg      config.Config
	orders   *orders.Service
	mailer   *notifier.Mailer
	whatsapp *notifier.WhatsAppSender
	uploader *storage.Uploader
	google   *auth.GoogleVerifier
}

func New(
	db *gorm.DB,
	log *zap.Logger,
	cfg config.Config,
	orderSvc *orders.Service,
	mailer *notifier.Mailer,
	whatsapp *notifier.WhatsAppSender,
	uploader *storage.Uploader,
	google *auth.GoogleVerifier,
) *Handler {
	return &Handler{
		db:       db,
		log:      log,
		cfg:      cfg,
		orders:   orderSvc,
		mailer:   mailer,
		whatsapp: whatsapp,
		uploader: uploader,
		google:   google,
	}
}

type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// pageParams reads page/limit query params with defaults, clamping both to
// sane minimums.
func pageParams(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	offset = (page - 1) * limit
	return page, limit, offset
}

func paginate(totalCount int64, page, limit int) Pagination {
	return Pagination{
		TotalItems:  totalCount,
		TotalPages:  int(math.Ceil(float64(totalCount) / float64(limit))),
		CurrentPage: page,
		PageSize:    limit,
	}
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// assignIf overwrites dst only when the request supplied the field.
func assignIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func paramUint(c *gin.Context, key string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
