package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fiaz291/ecommerce-korean-backend/internal/apperrors"
	"github.com/fiaz291/ecommerce-korean-backend/internal/models"
	"github.com/fiaz291/ecommerce-korean-backend/internal/response"
)

type createProductRequest struct {
	Name              string   `json:"name" binding:"required"`
	Slug              string   `json:"slug" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Price             float64  `json:"price" binding:"required,gt=0"`
	Currency          string   `json:"currency"`
	SKU               string   `json:"SKU" binding:"required"`
	Inventory         int      `json:"inventory" binding:"required"`
	CategoryID        uint     `json:"categoryId" binding:"required"`
	SubCategoryID     *uint    `json:"subCategoryId"`
	StoreID           uint     `json:"storeId" binding:"required"`
	Tags              []string `json:"tags" binding:"required"`
	Images            []string `json:"images"`
	IsFeatured        bool     `json:"isFeatured"`
	Rating            int      `json:"rating"`
	Brand             string   `json:"brand"`
	Weight            int      `json:"weight"`
	Dimensions        string   `json:"dimensions"`
	Score             int      `json:"score"`
	DiscountPrice     *float64 `json:"discountPrice"`
	FreebieProductIDs []uint   `json:"freebieProductIDs"`
	RelatedProductIDs []uint   `json:"relatedProductIDs"`
	FreeDelivery      bool     `json:"freeDelivery"`
	TotalSold         int      `json:"totalSold"`
	IsActive          *bool    `json:"isActive"`
}

// CreateProduct handles POST /api/product.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if h.slugTaken(&models.Product{}, req.Slug) {
		response.Fail(c, http.StatusBadRequest, "Slug already in use")
		return
	}
	var skuCount int64
	h.db.Model(&models.Product{}).Where("sku = ?", req.SKU).Count(&skuCount)
	if skuCount > 0 {
		response.Fail(c, http.StatusBadRequest, "SKU already in use")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := models.Product{
		Name:              req.Name,
		Slug:              req.Slug,
		Description:       req.Description,
		Price:             req.Price,
		Currency:          req.Currency,
		SKU:               req.SKU,
		Inventory:         req.Inventory,
		CategoryID:        req.CategoryID,
		SubCategoryID:     req.SubCategoryID,
		StoreID:           req.StoreID,
		Tags:              req.Tags,
		Images:            req.Images,
		IsFeatured:        req.IsFeatured,
		Rating:            req.Rating,
		Brand:             req.Brand,
		Weight:            req.Weight,
		Dimensions:        req.Dimensions,
		IsDiscount:        req.DiscountPrice != nil,
		DiscountPrice:     req.DiscountPrice,
		Score:             req.Score,
		FreebieProductIDs: req.FreebieProductIDs,
		RelatedProductIDs: req.RelatedProductIDs,
		FreeDelivery:      req.FreeDelivery,
		TotalSold:         req.TotalSold,
		IsActive:          isActive,
	}

	if err := h.db.Create(&product).Error; err != nil {
		h.log.Error("product create failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.Created(c, product)
}

// GetProducts handles GET /api/product with optional category filters.
func (h *Handler) GetProducts(c *gin.Context) {
	page, limit, offset := pageParams(c, 20)

	q := h.db.Model(&models.Product{})
	if categoryID, ok := queryUint(c, "categoryId"); ok {
		q = q.Where("category_id = ?", categoryID)
	}
	if subCategoryID, ok := queryUint(c, "subCategoryId"); ok {
		q = q.Where("sub_category_id = ?", subCategoryID)
	}

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var products []models.Product
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		h.log.Error("product listing failed", zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"products":   products,
		"pagination": paginate(totalCount, page, limit),
	})
}

// GetProductBySlug handles GET /api/product/:productSlug. Only in-stock
// products resolve.
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("productSlug")

	var product models.Product
	err := h.db.Where("slug = ? AND inventory > 0", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, product)
}

type updateProductRequest struct {
	ID                uint      `json:"id" binding:"required"`
	Name              *string   `json:"name"`
	Slug              *string   `json:"slug"`
	Description       *string   `json:"description"`
	Price             *float64  `json:"price"`
	Currency          *string   `json:"currency"`
	SKU               *string   `json:"SKU"`
	Inventory         *int      `json:"inventory"`
	CategoryID        *uint     `json:"categoryId"`
	SubCategoryID     *uint     `json:"subCategoryId"`
	Tags              *[]string `json:"tags"`
	Images            *[]string `json:"images"`
	IsFeatured        *bool     `json:"isFeatured"`
	Rating            *int      `json:"rating"`
	Brand             *string   `json:"brand"`
	Weight            *int      `json:"weight"`
	Dimensions        *string   `json:"dimensions"`
	IsDiscount        *bool     `json:"isDiscount"`
	Score             *int      `json:"score"`
	DiscountPrice     *float64  `json:"discountPrice"`
	FreebieProductIDs *[]uint   `json:"freebieProductIDs"`
	RelatedProductIDs *[]uint   `json:"relatedProductIDs"`
	FreeDelivery      *bool     `json:"freeDelivery"`
	TotalSold         *int      `json:"totalSold"`
	IsActive          *bool     `json:"isActive"`
}

// UpdateProduct handles PATCH /api/product. Only supplied fields change.
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	var existing models.Product
	if err := h.db.First(&existing, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if req.Slug != nil && *req.Slug != existing.Slug && h.slugTaken(&models.Product{}, *req.Slug) {
		response.Fail(c, http.StatusBadRequest, "Slug already in use")
		return
	}
	if req.SKU != nil && *req.SKU != existing.SKU {
		var skuCount int64
		h.db.Model(&models.Product{}).Where("sku = ?", *req.SKU).Count(&skuCount)
		if skuCount > 0 {
			response.Fail(c, http.StatusBadRequest, "SKU already in use")
			return
		}
	}

	updates := map[string]any{}
	setIf(updates, "name", req.Name)
	setIf(updates, "slug", req.Slug)
	setIf(updates, "description", req.Description)
	setIf(updates, "price", req.Price)
	setIf(updates, "currency", req.Currency)
	setIf(updates, "sku", req.SKU)
	setIf(updates, "inventory", req.Inventory)
	setIf(updates, "category_id", req.CategoryID)
	setIf(updates, "sub_category_id", req.SubCategoryID)
	setIf(updates, "is_featured", req.IsFeatured)
	setIf(updates, "rating", req.Rating)
	setIf(updates, "brand", req.Brand)
	setIf(updates, "weight", req.Weight)
	setIf(updates, "dimensions", req.Dimensions)
	setIf(updates, "is_discount", req.IsDiscount)
	setIf(updates, "score", req.Score)
	setIf(updates, "discount_price", req.DiscountPrice)
	setIf(updates, "free_delivery", req.FreeDelivery)
	setIf(updates, "total_sold", req.TotalSold)
	setIf(updates, "is_active", req.IsActive)
	if req.Tags != nil {
		existing.Tags = *req.Tags
	}
	if req.Images != nil {
		existing.Images = *req.Images
	}
	if req.FreebieProductIDs != nil {
		existing.FreebieProductIDs = *req.FreebieProductIDs
	}
	if req.RelatedProductIDs != nil {
		existing.RelatedProductIDs = *req.RelatedProductIDs
	}

	if len(updates) > 0 {
		if err := h.db.Model(&existing).Updates(updates).Error; err != nil {
			h.log.Error("product update failed", zap.Uint("product_id", req.ID), zap.Error(err))
			response.Error(c, apperrors.Persistence(err))
			return
		}
	}
	// Serialized slice columns go through Save so the json serializer runs.
	if req.Tags != nil || req.Images != nil || req.FreebieProductIDs != nil || req.RelatedProductIDs != nil {
		if err := h.db.Save(&existing).Error; err != nil {
			response.Error(c, apperrors.Persistence(err))
			return
		}
	}

	if err := h.db.First(&existing, req.ID).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}
	response.OK(c, existing)
}

// DeleteProduct handles DELETE /api/product/:id. All dependent rows go in
// one transaction; stored images are cleaned up afterwards, best effort.
func (h *Handler) DeleteProduct(c *gin.Context) {
	productID, ok := paramUint(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	var product models.Product
	if err := h.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "Product not found")
			return
		}
		response.Error(c, apperrors.Persistence(err))
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.CartItem{}, &models.Favorite{}, &models.View{}, &models.Banner{}, &models.OrderItem{}} {
			if err := tx.Where("product_id = ?", productID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Product{}, productID).Error
	})
	if err != nil {
		h.log.Error("product delete failed", zap.Uint("product_id", productID), zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if h.uploader != nil {
		for _, imageURL := range product.Images {
			if err := h.uploader.Delete(c.Request.Context(), imageURL); err != nil {
				h.log.Warn("failed to delete product image", zap.String("url", imageURL), zap.Error(err))
			}
		}
	}

	response.Message(c, http.StatusOK, "Product deleted successfully")
}

// SearchProducts handles GET /api/product/search?text=.
func (h *Handler) SearchProducts(c *gin.Context) {
	text := c.Query("text")
	page, limit, offset := pageParams(c, 10)

	pattern := "%" + strings.ToLower(text) + "%"
	q := h.db.Model(&models.Product{}).Where("LOWER(name) LIKE ?", pattern)

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var products []models.Product
	if err := q.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"products":   products,
		"pagination": paginate(totalCount, page, limit),
	})
}

type slugCheckRequest struct {
	Slug string `json:"slug"`
}

// CheckProductSlug handles POST /api/product/slug-checker.
func (h *Handler) CheckProductSlug(c *gin.Context) {
	var req slugCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Slug == "" {
		response.Fail(c, http.StatusBadRequest, "slug is required")
		return
	}

	slug := strings.ToLower(req.Slug)
	if h.slugTaken(&models.Product{}, slug) {
		response.Fail(c, http.StatusOK, slug+" already in use")
		return
	}
	response.Message(c, http.StatusOK, slug+" Slug is available")
}

// GetProductsByCategory handles GET /api/product/category/:id.
func (h *Handler) GetProductsByCategory(c *gin.Context) {
	categoryID, ok := paramUint(c, "id")
	if !ok {
		response.Fail(c, http.StatusBadRequest, "category id is required")
		return
	}
	page, limit, offset := pageParams(c, 20)

	q := h.db.Model(&models.Product{}).Where("category_id = ?", categoryID)
	if subCategoryID, ok := queryUint(c, "subCategoryId"); ok {
		q = q.Where("sub_category_id = ?", subCategoryID)
	}

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var products []models.Product
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, gin.H{
		"products":   products,
		"pagination": paginate(totalCount, page, limit),
	})
}

// GetBestSellingProducts handles GET /api/product/best-selling: active,
// in-stock products ranked by quantity sold inside the window.
func (h *Handler) GetBestSellingProducts(c *gin.Context) {
	h.soldRankedProducts(c)
}

// GetTopOfWeekProducts handles GET /api/product/top-of-week; same ranking as
// best-selling, with the window defaulting to the caller's days parameter.
func (h *Handler) GetTopOfWeekProducts(c *gin.Context) {
	h.soldRankedProducts(c)
}

func (h *Handler) soldRankedProducts(c *gin.Context) {
	page, limit, offset := pageParams(c, 20)

	daysAgo := time.Now()
	if days, err := strconv.Atoi(c.Query("days")); err == nil && days > 0 {
		daysAgo = daysAgo.AddDate(0, 0, -days)
	}

	q := h.db.Model(&models.Product{}).
		Where("is_active = ? AND inventory > 1", true).
		Where("id IN (?)", h.db.Model(&models.OrderItem{}).
			Select("order_items.product_id").
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.created_at >= ?", daysAgo))
	if categoryID, ok := queryUint(c, "categoryId"); ok {
		q = q.Where("category_id = ?", categoryID)
	}

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var products []models.Product
	if err := q.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	// Rank by quantity sold within the window.
	type soldRow struct {
		ProductID uint
		Sold      int
	}
	var sold []soldRow
	if err := h.db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, SUM(order_items.quantity) AS sold").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ?", daysAgo).
		Group("order_items.product_id").
		Scan(&sold).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}
	soldByProduct := make(map[uint]int, len(sold))
	for _, row := range sold {
		soldByProduct[row.ProductID] = row.Sold
	}
	sort.SliceStable(products, func(i, j int) bool {
		return soldByProduct[products[i].ID] > soldByProduct[products[j].ID]
	})

	if len(products) == 0 {
		products = h.fallbackProducts(limit)
	}

	response.OK(c, gin.H{
		"products":   products,
		"pagination": paginate(totalCount, page, limit),
	})
}

// GetFreeDeliveryProducts handles GET /api/product/free-delivery.
func (h *Handler) GetFreeDeliveryProducts(c *gin.Context) {
	page, limit, offset := pageParams(c, 20)

	q := h.db.Model(&models.Product{}).
		Where("is_active = ? AND inventory > 1 AND free_delivery = ?", true, true)
	if categoryID, ok := queryUint(c, "categoryId"); ok {
		q = q.Where("category_id = ?", categoryID)
	}

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var products []models.Product
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if len(products) == 0 {
		products = h.fallbackProducts(limit)
	}

	response.OK(c, gin.H{
		"products":   products,
		"pagination": paginate(totalCount, page, limit),
	})
}

// GetSuperDealsProducts handles GET /api/product/super-deals: discounted
// products ordered by discount price.
func (h *Handler) GetSuperDealsProducts(c *gin.Context) {
	page, limit, offset := pageParams(c, 10)

	q := h.db.Model(&models.Product{}).
		Where("is_active = ? AND inventory > 1 AND is_discount = ? AND discount_price IS NOT NULL", true, true)
	if categoryID, ok := queryUint(c, "categoryId"); ok {
		q = q.Where("category_id = ?", categoryID)
	}

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	var products []models.Product
	if err := q.Order("discount_price DESC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		response.Error(c, apperrors.Persistence(err))
		return
	}

	if len(products) == 0 {
		products = h.fallbackProducts(limit)
	}

	response.OK(c, gin.H{
		"products":   products,
		"pagination": paginate(totalCount, page, limit),
	})
}

// GetProductsByTag handles GET /api/tag?tag= with an optional price range.
// Tags live in a serialized JSON column, so the match is a LIKE on the
// encoded value.
func (h *Handler) GetProductsByTag(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		response.Fail(c, http.StatusBadRequest, "Tag is required")
		return
	}
	_, limit, offset := pageParams(c, 1)

	q := h.db.Model(&models.Product{}).Where("tags LIKE ?", fmt.Sprintf("%%%q%%", tag))
	if minPrice, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil && minPrice > 0 {
		q = q.Where("price >= ?", minPrice)
	}
	if maxPrice, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil && maxPrice > 0 {
		q = q.Where("price <= ?", maxPrice)
	}

	var products []models.Product
	if err := q.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		h.log.Error("tag listing failed", zap.String("tag", tag), zap.Error(err))
		response.Error(c, apperrors.Persistence(err))
		return
	}

	response.OK(c, products)
}

func (h *Handler) fallbackProducts(limit int) []models.Product {
	var products []models.Product
	h.db.Where("is_active = ? AND inventory > 1", true).Limit(limit).Find(&products)
	return products
}

func (h *Handler) slugTaken(model any, slug string) bool {
	var count int64
	h.db.Model(model).Where("slug = ?", slug).Count(&count)
	return count > 0
}

func setIf[T any](updates map[string]any, column string, v *T) {
	if v != nil {
		updates[column] = *v
	}
}
