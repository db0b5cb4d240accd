package router

import (
	"net/http"

	"storefront-service/internal/cart"
	"storefront-service/internal/checkout"
	"storefront-service/internal/handlers"
	"storefront-service/internal/middleware"
	"storefront-service/internal/prefs"
	"storefront-service/internal/proof"
	"storefront-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Deps собирает всё, что нужно обработчикам.
type Deps struct {
	Auth    service.AuthService
	Catalog service.CatalogService
	Orders  service.OrderService
	Admin   service.AdminService
	Prefs   *prefs.Service
	Carts   *cart.Registry
	Wizards *checkout.Registry
	Proofs  proof.Store

	// MaxUploadBytes ограничивает память под multipart-формы
	MaxUploadBytes int64
}

func Router(d Deps, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(), middleware.RequestLogger(log))
	if d.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = d.MaxUploadBytes
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: false, // сессия в Bearer-токене, cookies не нужны
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	sessionH := handlers.NewSessionHandler(d.Auth, d.Prefs, log)
	catalogH := handlers.NewCatalogHandler(d.Catalog, log)
	cartH := handlers.NewCartHandler(d.Carts, d.Catalog, log)
	checkoutH := handlers.NewCheckoutHandler(d.Carts, d.Wizards, d.Proofs, log)
	adminH := handlers.NewAdminHandler(d.Auth, d.Admin, d.Orders, d.Catalog, d.Proofs, log)

	api := r.Group("/api/v1")
	api.POST("/session", sessionH.StartSession)

	s := api.Group("")
	s.Use(middleware.SessionRequired(d.Auth, d.Prefs, log))
	{
		s.GET("/preferences", sessionH.GetPreferences)
		s.PUT("/preferences", sessionH.UpdatePreferences)
		s.POST("/format", sessionH.FormatPrice)

		s.GET("/products", catalogH.ListProducts)
		s.GET("/products/:id", catalogH.GetProduct)
		s.GET("/categories", catalogH.ListCategories)
		s.GET("/settings", catalogH.GetSettings)

		s.GET("/cart", cartH.GetCart)
		s.DELETE("/cart", cartH.ClearCart)
		s.POST("/cart/items", cartH.AddItem)
		s.PUT("/cart/items/:productId", cartH.SetQuantity)
		s.DELETE("/cart/items/:productId", cartH.RemoveItem)

		s.GET("/checkout", checkoutH.GetCheckout)
		s.DELETE("/checkout", checkoutH.Restart)
		s.PUT("/checkout/customer", checkoutH.SetCustomer)
		s.PUT("/checkout/payment", checkoutH.SetPayment)
		s.POST("/checkout/proof", checkoutH.UploadProof)
		s.DELETE("/checkout/proof", checkoutH.DeleteProof)
		s.POST("/checkout/next", checkoutH.Next)
		s.POST("/checkout/back", checkoutH.Back)
		s.POST("/checkout/submit", checkoutH.Submit)
		s.POST("/checkout/retry", checkoutH.Retry)

		s.POST("/admin/login", adminH.Login)
		s.POST("/admin/logout", adminH.Logout)
	}

	a := s.Group("/admin")
	a.Use(middleware.AdminRequired())
	{
		a.GET("/stats", adminH.Stats)
		a.GET("/products", adminH.ListProducts)
		a.POST("/products", adminH.CreateProduct)
		a.PATCH("/products/:id", adminH.UpdateProduct)
		a.DELETE("/products/:id", adminH.DeleteProduct)
		a.GET("/orders", adminH.ListOrders)
		a.GET("/orders/:id", adminH.GetOrder)
		a.PATCH("/orders/:id/status", adminH.UpdateOrderStatus)
		a.GET("/orders/:id/proof", adminH.OrderProof)
		a.GET("/settings", adminH.GetSettings)
		a.PATCH("/settings", adminH.UpdateSettings)
		a.GET("/reviews", adminH.ListReviews)
	}

	return r
}
