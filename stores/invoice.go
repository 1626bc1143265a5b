// stores/invoice.go
package stores

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartbuild-backend/models"
	"smartbuild-backend/utils"
)

// ErrInvalidStatusTransition is returned when a status change is not in
// the transition table. Cancelled is terminal.
var ErrInvalidStatusTransition = errors.New("invalid invoice status transition")

// InvoiceFilter narrows List results. Query matches invoice number or
// customer name, the date range is inclusive on both ends and To is
// extended to end-of-day.
type InvoiceFilter struct {
	Query  string
	Status string // "", "all", or a status name (case-insensitive)
	From   *time.Time
	To     *time.Time
}

// InvoiceStore owns finalized invoices. Invoices are never deleted; the
// only mutation after creation is a status transition.
type InvoiceStore interface {
	Create(inv *models.Invoice) error
	Get(id uuid.UUID) (*models.Invoice, error)
	List(f InvoiceFilter) ([]models.Invoice, error)
	SetStatus(id uuid.UUID, status models.InvoiceStatus) (*models.Invoice, error)
}

type gormInvoiceStore struct {
	db *gorm.DB
}

func NewInvoiceStore(db *gorm.DB) InvoiceStore {
	return &gormInvoiceStore{db: db}
}

// Create inserts the invoice with its items and consumes stock for each
// line in the same transaction.
func (s *gormInvoiceStore) Create(inv *models.Invoice) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		for _, item := range inv.Items {
			if err := tx.Model(&models.ProductVariant{}).
				Where("id = ?", item.VariantID).
				Update("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *gormInvoiceStore) Get(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *gormInvoiceStore) List(f InvoiceFilter) ([]models.Invoice, error) {
	q := s.db.Preload("Items").Order("created_at DESC")

	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(invoice_number) LIKE ? OR LOWER(customer_name) LIKE ?", like, like)
	}
	if f.Status != "" && !strings.EqualFold(f.Status, "all") {
		if status, ok := models.ParseInvoiceStatus(f.Status); ok {
			q = q.Where("status = ?", status)
		}
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", utils.BeginningOfDay(*f.From))
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", utils.EndOfDay(*f.To))
	}

	var invoices []models.Invoice
	err := q.Find(&invoices).Error
	return invoices, err
}

func (s *gormInvoiceStore) SetStatus(id uuid.UUID, status models.InvoiceStatus) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.Preload("Items").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if !invoice.Status.CanTransitionTo(status) {
		return nil, ErrInvalidStatusTransition
	}

	invoice.Status = status
	if err := s.db.Save(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}
