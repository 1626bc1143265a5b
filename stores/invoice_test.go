package stores

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartbuild-backend/models"
)

func seedInvoice(t *testing.T, store InvoiceStore, number, customer string, status models.InvoiceStatus) *models.Invoice {
	t.Helper()
	inv := &models.Invoice{
		InvoiceNumber:   number,
		CustomerDetails: models.CustomerDetails{Name: customer, Phone: "+911234567890"},
		SubTotal:        3800,
		TaxRate:         0.05,
		TaxAmount:       190,
		GrandTotal:      3990,
		Status:          status,
	}
	require.NoError(t, store.Create(inv))
	return inv
}

func TestInvoiceCreateConsumesStock(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogStore(db)
	invoices := NewInvoiceStore(db)

	product := seedProduct(t, catalog, "Ambuja Cement", "Cement")
	variant := seedVariant(t, catalog, product.ID, "AMB-50", 100, 20)

	inv := &models.Invoice{
		InvoiceNumber:   "INV-20260831-AAAAAA",
		CustomerDetails: models.CustomerDetails{Name: "Ravi", Phone: "+911234567890"},
		Items: []models.InvoiceItem{{
			ProductID: product.ID, VariantID: variant.ID,
			ProductName: "Ambuja Cement", VariantDetails: "50kg",
			Quantity: 30, UnitPrice: 380, TotalPrice: 11400,
		}},
		SubTotal: 11400, TaxRate: 0.05, TaxAmount: 570, GrandTotal: 11970,
		Status: models.InvoiceStatusPaid,
	}
	require.NoError(t, invoices.Create(inv))

	fresh, err := catalog.GetVariant(variant.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, fresh.QuantityInStock)

	stored, err := invoices.Get(inv.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "INV-20260831-AAAAAA", stored.InvoiceNumber)
}

func TestInvoiceStatusTransitions(t *testing.T) {
	store := NewInvoiceStore(newTestDB(t))
	inv := seedInvoice(t, store, "INV-20260831-BBBBBB", "Ravi", models.InvoiceStatusUnpaid)

	time.Sleep(10 * time.Millisecond)
	paid, err := store.SetStatus(inv.ID, models.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.Status)
	assert.True(t, paid.UpdatedAt.After(inv.UpdatedAt))

	time.Sleep(10 * time.Millisecond)
	cancelled, err := store.SetStatus(inv.ID, models.InvoiceStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCancelled, cancelled.Status)
	assert.True(t, cancelled.UpdatedAt.After(paid.UpdatedAt))
}

func TestInvoiceCancelledIsTerminal(t *testing.T) {
	store := NewInvoiceStore(newTestDB(t))
	inv := seedInvoice(t, store, "INV-20260831-CCCCCC", "Ravi", models.InvoiceStatusCancelled)

	for _, target := range []models.InvoiceStatus{
		models.InvoiceStatusPaid,
		models.InvoiceStatusUnpaid,
		models.InvoiceStatusCancelled,
	} {
		_, err := store.SetStatus(inv.ID, target)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	}

	// And the stored status is untouched
	got, err := store.Get(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCancelled, got.Status)
}

func TestInvoiceSetStatusNotFound(t *testing.T) {
	store := NewInvoiceStore(newTestDB(t))
	_, err := store.SetStatus(uuid.New(), models.InvoiceStatusPaid)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInvoiceListFilters(t *testing.T) {
	store := NewInvoiceStore(newTestDB(t))

	seedInvoice(t, store, "INV-20260831-DDDDDD", "Ravi Kumar", models.InvoiceStatusPaid)
	seedInvoice(t, store, "INV-20260831-EEEEEE", "Anita Desai", models.InvoiceStatusUnpaid)
	seedInvoice(t, store, "INV-20260831-FFFFFF", "Ravi Shankar", models.InvoiceStatusCancelled)

	all, err := store.List(InvoiceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// "all" is not a status filter
	all, err = store.List(InvoiceFilter{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Status matches case-insensitively
	paid, err := store.List(InvoiceFilter{Status: "paid"})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "INV-20260831-DDDDDD", paid[0].InvoiceNumber)

	// Query matches invoice number or customer name
	byNumber, err := store.List(InvoiceFilter{Query: "eeeeee"})
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, "Anita Desai", byNumber[0].CustomerDetails.Name)

	byCustomer, err := store.List(InvoiceFilter{Query: "RAVI"})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	// Query and status combine
	combined, err := store.List(InvoiceFilter{Query: "ravi", Status: "Cancelled"})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "INV-20260831-FFFFFF", combined[0].InvoiceNumber)
}

func TestInvoiceListDateRange(t *testing.T) {
	db := newTestDB(t)
	store := NewInvoiceStore(db)

	inv := seedInvoice(t, store, "INV-20260831-GGGGGG", "Ravi", models.InvoiceStatusPaid)

	today := inv.CreatedAt
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	// To is inclusive through end of day, so an invoice created today
	// matches a range ending today.
	got, err := store.List(InvoiceFilter{From: &yesterday, To: &today})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = store.List(InvoiceFilter{From: &today, To: &today})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = store.List(InvoiceFilter{From: &tomorrow})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.List(InvoiceFilter{To: &yesterday})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInvoiceListOrderedNewestFirst(t *testing.T) {
	store := NewInvoiceStore(newTestDB(t))

	first := seedInvoice(t, store, "INV-20260831-HHHHHH", "Ravi", models.InvoiceStatusPaid)
	time.Sleep(10 * time.Millisecond)
	second := seedInvoice(t, store, "INV-20260831-IIIIII", "Anita", models.InvoiceStatusPaid)

	got, err := store.List(InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.InvoiceNumber, got[0].InvoiceNumber)
	assert.Equal(t, first.InvoiceNumber, got[1].InvoiceNumber)
}
