package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"smartbuild-backend/config"
	"smartbuild-backend/controllers"
	"smartbuild-backend/models"
	"smartbuild-backend/routes"
	"smartbuild-backend/services"
	"smartbuild-backend/stores"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
}

func main() {
	db := config.ConnectDB()

	db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.ReorderAlertLog{},
	)

	// Stores
	catalogStore := stores.NewCatalogStore(db)
	supplierStore := stores.NewSupplierStore(db)
	invoiceStore := stores.NewInvoiceStore(db)

	// Services
	billingService := services.NewBillingService(catalogStore, invoiceStore)
	advisor := services.NewReorderAdvisor(
		os.Getenv("ADVISOR_API_URL"),
		os.Getenv("ADVISOR_API_KEY"),
		os.Getenv("ADVISOR_MODEL"),
	)

	alertService := services.NewReorderAlertService(db, catalogStore)
	if alertService.Enabled() {
		alertService.StartScheduler()
	} else {
		log.Println("Twilio not configured, reorder alerts disabled")
	}

	r := routes.SetupRouter(routes.Handlers{
		Auth:      controllers.NewAuthController(db),
		Suppliers: controllers.NewSupplierController(supplierStore),
		Products:  controllers.NewProductController(catalogStore),
		Variants:  controllers.NewVariantController(catalogStore),
		Billing:   controllers.NewBillingController(billingService),
		Invoices:  controllers.NewInvoiceController(invoiceStore),
		Reorder:   controllers.NewReorderController(catalogStore, advisor),
		Dashboard: controllers.NewDashboardController(db),
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
