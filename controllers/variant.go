// controllers/variant.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartbuild-backend/models"
	"smartbuild-backend/stores"
	"smartbuild-backend/utils"
)

// CreateVariantInput defines the expected JSON structure for creating a variant
type CreateVariantInput struct {
	SKU               string  `json:"sku" binding:"required"`
	Size              string  `json:"size" binding:"required"`
	Variety           string  `json:"variety"`
	PurchasePrice     float64 `json:"purchasePrice" binding:"min=0"`
	SellingPrice      float64 `json:"sellingPrice" binding:"min=0"`
	QuantityInStock   int     `json:"quantityInStock" binding:"min=0"`
	LowStockThreshold int     `json:"lowStockThreshold" binding:"min=0"`
	AverageDailySales float64 `json:"averageDailySales" binding:"min=0"`
	LeadTimeDays      int     `json:"leadTimeDays" binding:"min=0"`
	ImageURL          string  `json:"imageUrl"`
}

// UpdateVariantInput defines the expected JSON structure for updating a variant
type UpdateVariantInput struct {
	SKU               *string  `json:"sku"`
	Size              *string  `json:"size"`
	Variety           *string  `json:"variety"`
	PurchasePrice     *float64 `json:"purchasePrice" binding:"omitempty,min=0"`
	SellingPrice      *float64 `json:"sellingPrice" binding:"omitempty,min=0"`
	QuantityInStock   *int     `json:"quantityInStock" binding:"omitempty,min=0"`
	LowStockThreshold *int     `json:"lowStockThreshold" binding:"omitempty,min=0"`
	AverageDailySales *float64 `json:"averageDailySales" binding:"omitempty,min=0"`
	LeadTimeDays      *int     `json:"leadTimeDays" binding:"omitempty,min=0"`
	ImageURL          *string  `json:"imageUrl"`
}

// VariantController handles the variant side of the catalog.
type VariantController struct {
	Store stores.CatalogStore
}

func NewVariantController(store stores.CatalogStore) *VariantController {
	return &VariantController{Store: store}
}

// CreateVariant creates a new variant under a product
func (vc *VariantController) CreateVariant(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input CreateVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	variant := models.ProductVariant{
		ProductID:         productUUID,
		SKU:               input.SKU,
		Size:              input.Size,
		Variety:           input.Variety,
		PurchasePrice:     input.PurchasePrice,
		SellingPrice:      input.SellingPrice,
		QuantityInStock:   input.QuantityInStock,
		LowStockThreshold: input.LowStockThreshold,
		AverageDailySales: input.AverageDailySales,
		LeadTimeDays:      input.LeadTimeDays,
		ImageURL:          input.ImageURL,
	}

	if err := vc.Store.CreateVariant(&variant); err != nil {
		switch {
		case errors.Is(err, stores.ErrInvalidInput):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create variant")
		}
		return
	}

	c.JSON(http.StatusCreated, variant)
}

// GetVariants lists all variants of a product
func (vc *VariantController) GetVariants(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	variants, err := vc.Store.ListVariants(productUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve variants")
		return
	}

	c.JSON(http.StatusOK, variants)
}

// GetLowStockVariants lists variants at or below their low-stock threshold
func (vc *VariantController) GetLowStockVariants(c *gin.Context) {
	variants, err := vc.Store.ListLowStockVariants()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve variants")
		return
	}

	c.JSON(http.StatusOK, variants)
}

// UpdateVariant updates an existing variant
func (vc *VariantController) UpdateVariant(c *gin.Context) {
	variantUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid variant ID format")
		return
	}

	var input UpdateVariantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	variant, err := vc.Store.GetVariant(variantUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Variant not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.SKU != nil {
		variant.SKU = *input.SKU
	}
	if input.Size != nil {
		variant.Size = *input.Size
	}
	if input.Variety != nil {
		variant.Variety = *input.Variety
	}
	if input.PurchasePrice != nil {
		variant.PurchasePrice = *input.PurchasePrice
	}
	if input.SellingPrice != nil {
		variant.SellingPrice = *input.SellingPrice
	}
	if input.QuantityInStock != nil {
		variant.QuantityInStock = *input.QuantityInStock
	}
	if input.LowStockThreshold != nil {
		variant.LowStockThreshold = *input.LowStockThreshold
	}
	if input.AverageDailySales != nil {
		variant.AverageDailySales = *input.AverageDailySales
	}
	if input.LeadTimeDays != nil {
		variant.LeadTimeDays = *input.LeadTimeDays
	}
	if input.ImageURL != nil {
		variant.ImageURL = *input.ImageURL
	}

	if err := vc.Store.UpdateVariant(variant); err != nil {
		if errors.Is(err, stores.ErrInvalidInput) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update variant")
		return
	}

	c.JSON(http.StatusOK, variant)
}

// DeleteVariant deletes a variant
func (vc *VariantController) DeleteVariant(c *gin.Context) {
	variantUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid variant ID format")
		return
	}

	if err := vc.Store.DeleteVariant(variantUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Variant not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete variant")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variant deleted successfully"})
}
