// Package router wires every API resource onto a gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/fiaz291/ecommerce-korean-backend/configs"
	"github.com/fiaz291/ecommerce-korean-backend/internal/auth"
	"github.com/fiaz291/ecommerce-korean-backend/internal/handlers"
	"github.com/fiaz291/ecommerce-korean-backend/internal/metrics"
)

func New(cfg config.Config, h *handlers.Handler) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	user := api.Group("/user")
	{
		user.POST("/login", h.Login)
		user.POST("/signup", h.Signup)
		user.GET("", h.GetUser)
		user.PATCH("", h.UpdateUser)
		user.PATCH("/password", h.UpdatePassword)
		user.POST("/verify-email", h.VerifyEmail)
		user.GET("/check-username", h.CheckUsername)
		user.POST("/forgot-password", h.ForgotPassword)
		user.POST("/reset-password", h.ResetPassword)
		user.POST("/send-code", h.SendCode)
		user.POST("/verify-number", h.VerifyNumber)
		user.POST("/social-signin", h.SocialSignin)
	}

	users := api.Group("/users")
	{
		users.GET("", h.GetUsers)
		users.GET("/search", h.SearchUsers)
	}

	product := api.Group("/product")
	{
		product.POST("", h.CreateProduct)
		product.GET("", h.GetProducts)
		product.GET("/slug/:productSlug", h.GetProductBySlug)
		product.PATCH("", h.UpdateProduct)
		product.DELETE("/:id", h.DeleteProduct)
		product.GET("/search", h.SearchProducts)
		product.POST("/slug-checker", h.CheckProductSlug)
		product.GET("/category/:id", h.GetProductsByCategory)
		product.GET("/best-selling", h.GetBestSellingProducts)
		product.GET("/top-of-week", h.GetTopOfWeekProducts)
		product.GET("/free-delivery", h.GetFreeDeliveryProducts)
		product.GET("/super-deals", h.GetSuperDealsProducts)
	}

	api.GET("/tag", h.GetProductsByTag)

	category := api.Group("/category")
	{
		category.GET("", h.GetCategories)
		category.GET("/get-all", h.GetAllCategories)
		category.POST("", h.CreateCategory)
		category.PATCH("", h.UpdateCategory)
		category.DELETE("", h.DeleteCategory)
		category.POST("/slug-checker", h.CheckCategorySlug)
	}

	subCategories := api.Group("/sub-categories")
	{
		subCategories.GET("", h.GetSubCategories)
		subCategories.GET("/get-all", h.GetAllSubCategories)
		subCategories.GET("/category/:id", h.GetSubCategoriesByCategory)
		subCategories.POST("", h.CreateSubCategory)
		subCategories.PATCH("", h.UpdateSubCategory)
		subCategories.DELETE("", h.DeleteSubCategory)
	}

	cart := api.Group("/cart")
	{
		cart.POST("", h.AddCartItem)
		cart.GET("", h.GetCartItems)
		cart.DELETE("", h.DeleteCartItem)
	}

	order := api.Group("/order")
	{
		order.POST("", h.CreateOrder)
		order.GET("", h.GetUserOrders)
	}

	favorites := api.Group("/favorites")
	{
		favorites.POST("", h.AddFavorite)
		favorites.GET("", h.GetFavorites)
		favorites.DELETE("", h.DeleteFavorite)
	}

	views := api.Group("/views")
	{
		views.POST("", h.RecordView)
		views.GET("", h.GetViews)
		views.DELETE("", h.DeleteView)
	}

	banners := api.Group("/banners")
	{
		banners.GET("", h.GetBanners)
		banners.POST("", h.CreateBanner)
		banners.PATCH("/:id", h.UpdateBanner)
		banners.DELETE("", h.DeleteBanner)
	}

	api.GET("/voucher", h.GetVoucherByCode)

	store := api.Group("/store")
	{
		store.POST("", h.CreateStore)
		store.GET("", h.GetStores)
		store.PATCH("/:id", h.UpdateStore)
		store.DELETE("", h.DeleteStore)
	}

	api.GET("/delivery-charges", h.GetDeliveryCharges)

	email := api.Group("/email")
	{
		email.POST("/verification", h.SendVerificationEmail)
	}

	upload := api.Group("/upload")
	{
		upload.POST("", h.UploadImages)
		upload.DELETE("", h.DeleteImage)
	}

	admin := api.Group("/admin")
	admin.POST("/user/login", h.AdminLogin)

	protected := admin.Group("")
	protected.Use(auth.RequireAuth([]byte(cfg.Auth.JWTSecret)))
	{
		protected.POST("/user", h.CreateAdmin)
		protected.PATCH("/user", h.UpdateAdmin)
		protected.GET("/user", h.GetAdminUsers)
		protected.GET("/users", h.GetAllUsers)

		protected.GET("/order", h.GetOrders)
		protected.PATCH("/order/:id", h.UpdateOrder)

		protected.GET("/voucher", h.GetVouchers)
		protected.POST("/voucher", h.CreateVoucher)
		protected.PATCH("/voucher/:id", h.UpdateVoucher)
		protected.DELETE("/voucher", h.DeleteVoucher)

		protected.POST("/delivery-charges", h.CreateDeliveryCharge)
		protected.DELETE("/delivery-charges", h.DeleteDeliveryCharge)
	}

	finance := api.Group("/finance")
	finance.Use(auth.RequireAuth([]byte(cfg.Auth.JWTSecret)))
	{
		finance.GET("/transactions", h.GetTransactions)
		finance.GET("/summary", h.GetTransactionSummary)
	}

	return r
}
