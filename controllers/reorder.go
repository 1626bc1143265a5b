// controllers/reorder.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartbuild-backend/services"
	"smartbuild-backend/stores"
	"smartbuild-backend/utils"
)

// ReorderSuggestionRequest names the variant to advise on
type ReorderSuggestionRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	VariantID uuid.UUID `json:"variantId" binding:"required"`
}

// ReorderController invokes the external reorder advisor for a variant.
type ReorderController struct {
	Catalog stores.CatalogStore
	Advisor services.ReorderAdvisor
}

func NewReorderController(catalog stores.CatalogStore, advisor services.ReorderAdvisor) *ReorderController {
	return &ReorderController{Catalog: catalog, Advisor: advisor}
}

// GetReorderSuggestion loads the variant's stock figures and asks the
// advisor for a reorder quantity. Advisor failures are recoverable: the
// client gets a 502 and may simply retry.
func (rc *ReorderController) GetReorderSuggestion(c *gin.Context) {
	var req ReorderSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	variant, err := rc.Catalog.GetVariant(req.VariantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Variant not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	product, err := rc.Catalog.GetProduct(variant.ProductID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// The request context cancels the advisor call when the client
	// abandons it, so a refreshed suggestion supersedes this one.
	suggestion, err := rc.Advisor.SuggestReorder(c.Request.Context(), services.ReorderSuggestionInput{
		ProductID:         product.ID.String(),
		VariantID:         variant.ID.String(),
		ProductName:       product.Name,
		VariantDetails:    variant.Details(),
		QuantityInStock:   variant.QuantityInStock,
		LowStockThreshold: variant.LowStockThreshold,
		AverageDailySales: variant.AverageDailySales,
		LeadTimeDays:      variant.LeadTimeDays,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Reorder advisor unavailable, please try again")
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
