package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartbuild-backend/models"
	"smartbuild-backend/utils"
)

// DashboardStats summarizes the shop for the landing page
type DashboardStats struct {
	TotalSalesToday     float64 `json:"totalSalesToday"`
	TotalSalesThisWeek  float64 `json:"totalSalesThisWeek"`
	TotalSalesThisMonth float64 `json:"totalSalesThisMonth"`
	LowStockCount       int64   `json:"lowStockProductsCount"`
	RecentInvoicesCount int64   `json:"recentInvoicesCount"`
}

// DashboardController aggregates sales and stock figures.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

func (dc *DashboardController) sumSalesSince(since time.Time) float64 {
	var total float64
	dc.DB.Model(&models.Invoice{}).
		Where("created_at >= ? AND status <> ?", since, models.InvoiceStatusCancelled).
		Select("COALESCE(SUM(grand_total), 0)").Scan(&total)
	return total
}

func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	now := time.Now()
	startOfToday := utils.BeginningOfDay(now)
	startOfWeek := utils.BeginningOfDay(now.AddDate(0, 0, -6))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := DashboardStats{
		TotalSalesToday:     dc.sumSalesSince(startOfToday),
		TotalSalesThisWeek:  dc.sumSalesSince(startOfWeek),
		TotalSalesThisMonth: dc.sumSalesSince(startOfMonth),
	}

	dc.DB.Model(&models.ProductVariant{}).
		Where("quantity_in_stock <= low_stock_threshold").
		Count(&stats.LowStockCount)

	dc.DB.Model(&models.Invoice{}).
		Where("created_at >= ?", startOfWeek).
		Count(&stats.RecentInvoicesCount)

	c.JSON(http.StatusOK, stats)
}
