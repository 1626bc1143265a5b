package routes

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"smartbuild-backend/config"
	"smartbuild-backend/controllers"
	"smartbuild-backend/utils"
)

// Handlers collects every controller the router mounts.
type Handlers struct {
	Auth      *controllers.AuthController
	Suppliers *controllers.SupplierController
	Products  *controllers.ProductController
	Variants  *controllers.VariantController
	Billing   *controllers.BillingController
	Invoices  *controllers.InvoiceController
	Reorder   *controllers.ReorderController
	Dashboard *controllers.DashboardController
}

func SetupRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		allowedOrigins = append(allowedOrigins, origin)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", h.Auth.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Supplier routes
		suppliers := api.Group("/suppliers")
		{
			suppliers.POST("", h.Suppliers.CreateSupplier)
			suppliers.GET("", h.Suppliers.GetSuppliers)
			suppliers.GET("/:id", h.Suppliers.GetSupplier)
			suppliers.PUT("/:id", h.Suppliers.UpdateSupplier)
			suppliers.DELETE("/:id", h.Suppliers.DeleteSupplier)
		}

		// Catalog routes
		products := api.Group("/products")
		{
			products.POST("", h.Products.CreateProduct)
			products.GET("", h.Products.GetProducts)
			products.GET("/:id", h.Products.GetProduct)
			products.PUT("/:id", h.Products.UpdateProduct)
			products.DELETE("/:id", h.Products.DeleteProduct)

			products.POST("/:id/variants", h.Variants.CreateVariant)
			products.GET("/:id/variants", h.Variants.GetVariants)
		}

		variants := api.Group("/variants")
		{
			variants.GET("/low-stock", h.Variants.GetLowStockVariants)
			variants.PUT("/:id", h.Variants.UpdateVariant)
			variants.DELETE("/:id", h.Variants.DeleteVariant)
		}

		// Billing routes
		billing := api.Group("/billing")
		{
			billing.POST("/preview", h.Billing.Preview)
			billing.POST("/checkout", h.Billing.Checkout)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.GET("", h.Invoices.GetInvoices)
			invoices.GET("/:id", h.Invoices.GetInvoice)
			invoices.PATCH("/:id/status", h.Invoices.UpdateInvoiceStatus)
		}

		// Reorder advisor
		api.POST("/reorder-suggestions", h.Reorder.GetReorderSuggestion)

		// Dashboard routes
		api.GET("/dashboard", h.Dashboard.GetDashboardStats)
	}

	return r
}
