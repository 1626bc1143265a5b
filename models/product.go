package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	Category    string     `gorm:"not null;default:'General'"`
	SupplierID  *uuid.UUID `gorm:"type:uuid;index"`
	IsActive    bool       `gorm:"default:true"`

	// Denormalized for display, filled at read time. "N/A" when the
	// supplier no longer exists.
	SupplierName string `gorm:"-"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	gorm.Model
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

type ProductVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"`
	SKU       string    `gorm:"not null;uniqueIndex"`
	Size      string    `gorm:"not null"`
	Variety   string

	PurchasePrice float64 `gorm:"type:decimal(10,2);not null"`
	SellingPrice  float64 `gorm:"type:decimal(10,2);not null"`

	QuantityInStock   int `gorm:"not null;default:0"`
	LowStockThreshold int `gorm:"not null;default:0"`

	// Used by the reorder advisor.
	AverageDailySales float64 `gorm:"default:0"`
	LeadTimeDays      int     `gorm:"default:0"`

	ImageURL string

	gorm.Model
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

// IsLowStock reports whether the variant is at or below its threshold.
func (v *ProductVariant) IsLowStock() bool {
	return v.QuantityInStock <= v.LowStockThreshold
}

// Details composes the display string for a variant, e.g. "50kg, OPC 43".
func (v *ProductVariant) Details() string {
	parts := []string{}
	if v.Size != "" {
		parts = append(parts, v.Size)
	}
	if v.Variety != "" {
		parts = append(parts, v.Variety)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("SKU %s", v.SKU)
	}
	return strings.Join(parts, ", ")
}
