package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusUnpaid    InvoiceStatus = "Unpaid"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

// ParseInvoiceStatus normalizes a status string case-insensitively.
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return InvoiceStatusPaid, true
	case "unpaid":
		return InvoiceStatusUnpaid, true
	case "cancelled":
		return InvoiceStatusCancelled, true
	}
	return "", false
}

// CanTransitionTo implements the invoice status machine. Paid and Unpaid
// may move to any status; Cancelled is terminal.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if s == InvoiceStatusCancelled {
		return false
	}
	switch target {
	case InvoiceStatusPaid, InvoiceStatusUnpaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CustomerDetails is embedded in the invoice; walk-in sales only need a
// name and phone.
type CustomerDetails struct {
	Name    string `gorm:"not null"`
	Phone   string `gorm:"not null"`
	Address string
}

type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	InvoiceNumber string    `gorm:"uniqueIndex;not null"`

	CustomerDetails CustomerDetails `gorm:"embedded;embeddedPrefix:customer_"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID"`

	SubTotal   float64       `gorm:"type:decimal(10,2);not null"`
	TaxRate    float64       `gorm:"not null;default:0"`
	TaxAmount  float64       `gorm:"type:decimal(10,2);not null;default:0"`
	GrandTotal float64       `gorm:"type:decimal(10,2);not null"`
	Status     InvoiceStatus `gorm:"type:varchar(20);not null;default:'Unpaid'"`

	CreatedBy string

	gorm.Model
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// InvoiceItem is a snapshot of the variant at sale time so historical
// invoices stay stable when catalog prices change.
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index"`

	ProductID      uuid.UUID `gorm:"type:uuid;index;not null"`
	VariantID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductName    string    `gorm:"not null"`
	VariantDetails string

	Quantity   int     `gorm:"not null"`
	UnitPrice  float64 `gorm:"type:decimal(10,2);not null"`
	TotalPrice float64 `gorm:"type:decimal(10,2);not null"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
