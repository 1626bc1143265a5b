// controllers/billing.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartbuild-backend/models"
	"smartbuild-backend/services"
	"smartbuild-backend/utils"
)

// CheckoutCustomerInput carries the walk-in customer details
type CheckoutCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
}

// PreviewRequest defines the expected JSON structure for a totals preview
type PreviewRequest struct {
	Items   []services.CheckoutItem `json:"items" binding:"required,min=1,dive"`
	TaxRate float64                 `json:"taxRate" binding:"min=0,max=1"`
}

// CheckoutRequest defines the expected JSON structure for finalizing an invoice
type CheckoutRequest struct {
	Customer CheckoutCustomerInput   `json:"customer" binding:"required"`
	Items    []services.CheckoutItem `json:"items" binding:"required,min=1,dive"`
	TaxRate  float64                 `json:"taxRate" binding:"min=0,max=1"`
	Status   string                  `json:"status" binding:"omitempty,oneof=Paid Unpaid paid unpaid"`
}

// BillingController drives the point-of-sale flow.
type BillingController struct {
	Billing *services.BillingService
}

func NewBillingController(billing *services.BillingService) *BillingController {
	return &BillingController{Billing: billing}
}

func respondWithBillingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Variant not found: "+err.Error())
	case errors.Is(err, services.ErrDuplicateItem):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrOutOfStock):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrEmptyCart):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrMissingCustomerInfo):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process cart")
	}
}

// Preview computes subtotal, tax and grand total for the requested items
// without creating an invoice. Clamped quantities come back as warnings.
func (bc *BillingController) Preview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	totals, warnings, err := bc.Billing.Preview(req.Items, req.TaxRate)
	if err != nil {
		respondWithBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totals":   totals,
		"warnings": warnings,
	})
}

// Checkout finalizes the cart into an invoice
func (bc *BillingController) Checkout(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status := models.InvoiceStatusUnpaid
	if req.Status != "" {
		status, _ = models.ParseInvoiceStatus(req.Status)
	}

	invoice, warnings, err := bc.Billing.Checkout(services.CheckoutInput{
		Customer: models.CustomerDetails{
			Name:    req.Customer.Name,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		},
		Items:     req.Items,
		TaxRate:   req.TaxRate,
		Status:    status,
		CreatedBy: userID.(string),
	})
	if err != nil {
		respondWithBillingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"invoice":  invoice,
		"warnings": warnings,
	})
}
