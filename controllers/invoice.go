// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartbuild-backend/models"
	"smartbuild-backend/stores"
	"smartbuild-backend/utils"
)

// UpdateInvoiceStatusInput defines the expected JSON structure for a
// status transition
type UpdateInvoiceStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// InvoiceController handles the invoice list and status workflow.
// Invoices themselves are immutable once finalized.
type InvoiceController struct {
	Store stores.InvoiceStore
}

func NewInvoiceController(store stores.InvoiceStore) *InvoiceController {
	return &InvoiceController{Store: store}
}

// GetInvoices lists invoices filtered by search text, status and an
// inclusive date range (?q=&status=&from=2006-01-02&to=2006-01-02)
func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	filter := stores.InvoiceFilter{
		Query:  c.Query("q"),
		Status: c.Query("status"),
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		filter.To = &t
	}

	invoices, err := ic.Store.List(filter)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice with its items
func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	invoice, err := ic.Store.Get(invoiceUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoiceStatus applies a status transition. Cancelled invoices
// reject all further transitions.
func (ic *InvoiceController) UpdateInvoiceStatus(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input UpdateInvoiceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status, ok := models.ParseInvoiceStatus(input.Status)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown status: "+input.Status)
		return
	}

	invoice, err := ic.Store.SetStatus(invoiceUUID, status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		case errors.Is(err, stores.ErrInvalidStatusTransition):
			utils.RespondWithError(c, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice status")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}
