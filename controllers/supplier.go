// controllers/supplier.go
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

// CreateSupplierInput defines the expected JSON structure for creating a supplier
type CreateSupplierInput struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
}

// UpdateSupplierInput defines the expected JSON structure for updating a supplier
type UpdateSupplierInput struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       *string `json:"address"`
}

// SupplierController handles the supplier directory.
type SupplierController struct {
	Store stores.SupplierStore
}

func NewSupplierController(store stores.SupplierStore) *SupplierController {
	return &SupplierController{Store: store}
}

// CreateSupplier creates a new supplier
func (sc *SupplierController) CreateSupplier(c *gin.Context) {
	var input CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate phone format
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	supplier := models.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
	}

	if err := sc.Store.Create(&supplier); err != nil {
		if errors.Is(err, stores.ErrInvalidInput) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create supplier")
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

// GetSuppliers retrieves suppliers, optionally filtered by a search query
// matched against name, contact person and email.
func (sc *SupplierController) GetSuppliers(c *gin.Context) {
	suppliers, err := sc.Store.List(c.Query("q"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve suppliers")
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

// GetSupplier retrieves a specific supplier by ID
func (sc *SupplierController) GetSupplier(c *gin.Context) {
	supplierUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	supplier, err := sc.Store.Get(supplierUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier updates an existing supplier
func (sc *SupplierController) UpdateSupplier(c *gin.Context) {
	supplierUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	var input UpdateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	supplier, err := sc.Store.Get(supplierUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.ContactPerson != nil {
		supplier.ContactPerson = *input.ContactPerson
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		supplier.Phone = *input.Phone
	}
	if input.Email != nil {
		supplier.Email = *input.Email
	}
	if input.Address != nil {
		supplier.Address = *input.Address
	}

	if err := sc.Store.Update(supplier); err != nil {
		if errors.Is(err, stores.ErrInvalidInput) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update supplier")
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier soft deletes a supplier. Products referencing it keep
// their supplierId and display "N/A".
func (sc *SupplierController) DeleteSupplier(c *gin.Context) {
	supplierUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	if err := sc.Store.Delete(supplierUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete supplier")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
