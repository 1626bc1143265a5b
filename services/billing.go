// services/billing.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartbuild-backend/models"
	"smartbuild-backend/stores"
	"smartbuild-backend/utils"
)

var (
	// ErrDuplicateItem: the variant is already a line item in the cart.
	ErrDuplicateItem = errors.New("variant already in cart")
	// ErrOutOfStock: the variant has no stock, it cannot be added at all.
	ErrOutOfStock = errors.New("variant out of stock")
	// ErrInsufficientStock is non-fatal: the quantity was clamped to the
	// available stock and the clamped value applied.
	ErrInsufficientStock = errors.New("insufficient stock, quantity clamped")
	// ErrEmptyCart: finalize was called with no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingCustomerInfo: customer name or phone is blank.
	ErrMissingCustomerInfo = errors.New("customer name and phone are required")
)

// Cart is the in-progress, unfinalized sequence of invoice items during
// billing. It is pure in-memory state; stock checks use values the caller
// looks up fresh from the catalog.
type Cart struct {
	Items []models.InvoiceItem
}

func (c *Cart) find(variantID uuid.UUID) *models.InvoiceItem {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem appends a line item with quantity 1, snapshotting the variant's
// name, details and selling price.
func (c *Cart) AddItem(product *models.Product, variant *models.ProductVariant) error {
	if c.find(variant.ID) != nil {
		return ErrDuplicateItem
	}
	if variant.QuantityInStock <= 0 {
		return ErrOutOfStock
	}
	c.Items = append(c.Items, models.InvoiceItem{
		ProductID:      product.ID,
		VariantID:      variant.ID,
		ProductName:    product.Name,
		VariantDetails: variant.Details(),
		Quantity:       1,
		UnitPrice:      variant.SellingPrice,
		TotalPrice:     variant.SellingPrice,
	})
	return nil
}

// SetItemQuantity updates a line item's quantity. A quantity of zero or
// less removes the item. A quantity above the available stock is clamped
// and ErrInsufficientStock returned; the clamped value is still applied.
func (c *Cart) SetItemQuantity(variantID uuid.UUID, quantity, quantityInStock int) error {
	item := c.find(variantID)
	if item == nil {
		return nil
	}
	if quantity <= 0 {
		c.RemoveItem(variantID)
		return nil
	}

	var clamped bool
	if quantity > quantityInStock {
		quantity = quantityInStock
		clamped = true
	}
	item.Quantity = quantity
	item.TotalPrice = float64(item.Quantity) * item.UnitPrice

	if clamped {
		return ErrInsufficientStock
	}
	return nil
}

// RemoveItem removes the matching line item; no-op if absent.
func (c *Cart) RemoveItem(variantID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Totals is the derived money summary of a cart.
type Totals struct {
	SubTotal   float64 `json:"subTotal"`
	TaxAmount  float64 `json:"taxAmount"`
	GrandTotal float64 `json:"grandTotal"`
}

// ComputeTotals is pure and deterministic: subtotal is the sum of line
// totals, tax is a fraction of the subtotal.
func ComputeTotals(c *Cart, taxRate float64) Totals {
	var subTotal float64
	for _, item := range c.Items {
		subTotal += item.TotalPrice
	}
	taxAmount := subTotal * taxRate
	return Totals{
		SubTotal:   subTotal,
		TaxAmount:  taxAmount,
		GrandTotal: subTotal + taxAmount,
	}
}

// Finalize converts the cart into an invoice ready for persistence.
func (c *Cart) Finalize(customer models.CustomerDetails, taxRate float64, status models.InvoiceStatus, createdBy string) (*models.Invoice, error) {
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(customer.Name) == "" || strings.TrimSpace(customer.Phone) == "" {
		return nil, ErrMissingCustomerInfo
	}
	if status == "" {
		status = models.InvoiceStatusUnpaid
	}

	totals := ComputeTotals(c, taxRate)
	return &models.Invoice{
		InvoiceNumber:   NewInvoiceNumber(),
		CustomerDetails: customer,
		Items:           c.Items,
		SubTotal:        totals.SubTotal,
		TaxRate:         taxRate,
		TaxAmount:       totals.TaxAmount,
		GrandTotal:      totals.GrandTotal,
		Status:          status,
		CreatedBy:       createdBy,
	}, nil
}

// NewInvoiceNumber generates a display identifier like INV-20250831-X7K2QD.
func NewInvoiceNumber() string {
	return "INV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)
}

// CheckoutItem is one requested line of a checkout or preview.
type CheckoutItem struct {
	VariantID uuid.UUID `json:"variantId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=1"`
}

// CheckoutInput carries everything needed to finalize an invoice.
type CheckoutInput struct {
	Customer models.CustomerDetails
	Items    []CheckoutItem
	TaxRate  float64
	Status   models.InvoiceStatus
	// Operator identifier recorded on the invoice.
	CreatedBy string
}

// BillingService composes carts from fresh catalog lookups and hands
// finalized invoices to the invoice store.
type BillingService struct {
	catalog  stores.CatalogStore
	invoices stores.InvoiceStore
}

func NewBillingService(catalog stores.CatalogStore, invoices stores.InvoiceStore) *BillingService {
	return &BillingService{catalog: catalog, invoices: invoices}
}

// buildCart assembles a cart from the requested items. Quantities above
// available stock are clamped; each clamp produces a warning rather than
// an error.
func (s *BillingService) buildCart(items []CheckoutItem) (*Cart, []string, error) {
	cart := &Cart{}
	var warnings []string

	for _, reqItem := range items {
		variant, err := s.catalog.GetVariant(reqItem.VariantID)
		if err != nil {
			return nil, nil, fmt.Errorf("variant %s: %w", reqItem.VariantID, err)
		}
		product, err := s.catalog.GetProduct(variant.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("product %s: %w", variant.ProductID, err)
		}

		if err := cart.AddItem(product, variant); err != nil {
			return nil, nil, fmt.Errorf("%s (%s): %w", product.Name, variant.SKU, err)
		}
		if reqItem.Quantity != 1 {
			if err := cart.SetItemQuantity(variant.ID, reqItem.Quantity, variant.QuantityInStock); err != nil {
				if !errors.Is(err, ErrInsufficientStock) {
					return nil, nil, err
				}
				warnings = append(warnings, fmt.Sprintf(
					"%s (%s): requested %d, only %d in stock, quantity clamped",
					product.Name, variant.SKU, reqItem.Quantity, variant.QuantityInStock))
			}
		}
	}

	return cart, warnings, nil
}

// Preview computes totals for the requested items without persisting
// anything.
func (s *BillingService) Preview(items []CheckoutItem, taxRate float64) (Totals, []string, error) {
	cart, warnings, err := s.buildCart(items)
	if err != nil {
		return Totals{}, nil, err
	}
	return ComputeTotals(cart, taxRate), warnings, nil
}

// Checkout builds the cart, finalizes it and persists the invoice. Stock
// is consumed inside the store's transaction.
func (s *BillingService) Checkout(input CheckoutInput) (*models.Invoice, []string, error) {
	cart, warnings, err := s.buildCart(input.Items)
	if err != nil {
		return nil, nil, err
	}

	invoice, err := cart.Finalize(input.Customer, input.TaxRate, input.Status, input.CreatedBy)
	if err != nil {
		return nil, nil, err
	}

	if err := s.invoices.Create(invoice); err != nil {
		return nil, nil, err
	}
	return invoice, warnings, nil
}
