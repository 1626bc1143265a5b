package services

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartbuild-backend/models"
	"smartbuild-backend/stores"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Supplier{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Invoice{},
		&models.InvoiceItem{},
	))
	return db
}

func testProduct(name string) *models.Product {
	return &models.Product{Name: name, Category: "Cement", IsActive: true}
}

func testVariant(productID uuid.UUID, sku string, price float64, stock int) *models.ProductVariant {
	return &models.ProductVariant{
		ProductID:       productID,
		SKU:             sku,
		Size:            "50kg",
		Variety:         "OPC 43",
		PurchasePrice:   price * 0.8,
		SellingPrice:    price,
		QuantityInStock: stock,
	}
}

func TestCartAddItem(t *testing.T) {
	product := testProduct("Cement")
	product.ID = uuid.New()
	variant := testVariant(product.ID, "CEM-50", 380, 10)
	variant.ID = uuid.New()

	cart := &Cart{}
	require.NoError(t, cart.AddItem(product, variant))
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 380.0, item.UnitPrice)
	assert.Equal(t, 380.0, item.TotalPrice)
	assert.Equal(t, "Cement", item.ProductName)
	assert.Equal(t, "50kg, OPC 43", item.VariantDetails)
}

func TestCartAddItemDuplicate(t *testing.T) {
	product := testProduct("Cement")
	product.ID = uuid.New()
	variant := testVariant(product.ID, "CEM-50", 380, 10)
	variant.ID = uuid.New()

	cart := &Cart{}
	require.NoError(t, cart.AddItem(product, variant))
	require.NoError(t, cart.SetItemQuantity(variant.ID, 3, variant.QuantityInStock))

	err := cart.AddItem(product, variant)
	assert.ErrorIs(t, err, ErrDuplicateItem)

	// The first line item is unchanged
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartAddItemOutOfStock(t *testing.T) {
	product := testProduct("Cement")
	product.ID = uuid.New()
	variant := testVariant(product.ID, "CEM-50", 380, 0)
	variant.ID = uuid.New()

	cart := &Cart{}
	err := cart.AddItem(product, variant)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Empty(t, cart.Items)
}

func TestCartSetItemQuantityClampsToStock(t *testing.T) {
	product := testProduct("Cement")
	product.ID = uuid.New()
	variant := testVariant(product.ID, "CEM-50", 380, 5)
	variant.ID = uuid.New()

	cart := &Cart{}
	require.NoError(t, cart.AddItem(product, variant))

	err := cart.SetItemQuantity(variant.ID, 8, variant.QuantityInStock)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5*380.0, cart.Items[0].TotalPrice)

	// Repeated attempts do not raise it further
	err = cart.SetItemQuantity(variant.ID, 100, variant.QuantityInStock)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartSetItemQuantityZeroRemoves(t *testing.T) {
	product := testProduct("Cement")
	product.ID = uuid.New()
	variant := testVariant(product.ID, "CEM-50", 380, 10)
	variant.ID = uuid.New()
	other := testVariant(product.ID, "CEM-25", 200, 10)
	other.ID = uuid.New()

	cart := &Cart{}
	require.NoError(t, cart.AddItem(product, variant))
	require.NoError(t, cart.AddItem(product, other))
	require.Len(t, cart.Items, 2)

	require.NoError(t, cart.SetItemQuantity(variant.ID, 0, variant.QuantityInStock))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, other.ID, cart.Items[0].VariantID)

	require.NoError(t, cart.SetItemQuantity(other.ID, -3, other.QuantityInStock))
	assert.Empty(t, cart.Items)
}

func TestCartRemoveItemAbsentIsNoop(t *testing.T) {
	product := testProduct("Cement")
	product.ID = uuid.New()
	variant := testVariant(product.ID, "CEM-50", 380, 10)
	variant.ID = uuid.New()

	cart := &Cart{}
	require.NoError(t, cart.AddItem(product, variant))

	cart.RemoveItem(uuid.New())
	assert.Len(t, cart.Items, 1)
}

func TestComputeTotals(t *testing.T) {
	product := testProduct("Cement")
	product.ID = uuid.New()
	variant := testVariant(product.ID, "CEM-50", 380, 100)
	variant.ID = uuid.New()

	cart := &Cart{}
	require.NoError(t, cart.AddItem(product, variant))
	require.NoError(t, cart.SetItemQuantity(variant.ID, 10, variant.QuantityInStock))

	totals := ComputeTotals(cart, 0.05)
	assert.InDelta(t, 3800.0, totals.SubTotal, 1e-9)
	assert.InDelta(t, 190.0, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 3990.0, totals.GrandTotal, 1e-9)

	// Pure and deterministic: same cart, same result
	again := ComputeTotals(cart, 0.05)
	assert.Equal(t, totals, again)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(&Cart{}, 0.05)
	assert.Zero(t, totals.SubTotal)
	assert.Zero(t, totals.TaxAmount)
	assert.Zero(t, totals.GrandTotal)
}

func TestFinalizeEmptyCart(t *testing.T) {
	cart := &Cart{}
	invoice, err := cart.Finalize(models.CustomerDetails{Name: "Ravi", Phone: "+911234567890"}, 0.05, models.InvoiceStatusPaid, "op-1")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, invoice)
}

func TestFinalizeMissingCustomerInfo(t *testing.T) {
	product := testProduct("Cement")
	product.ID = uuid.New()
	variant := testVariant(product.ID, "CEM-50", 380, 10)
	variant.ID = uuid.New()

	cart := &Cart{}
	require.NoError(t, cart.AddItem(product, variant))

	_, err := cart.Finalize(models.CustomerDetails{Name: "", Phone: "+911234567890"}, 0.05, models.InvoiceStatusPaid, "op-1")
	assert.ErrorIs(t, err, ErrMissingCustomerInfo)

	_, err = cart.Finalize(models.CustomerDetails{Name: "Ravi", Phone: "   "}, 0.05, models.InvoiceStatusPaid, "op-1")
	assert.ErrorIs(t, err, ErrMissingCustomerInfo)
}

func TestFinalizeBuildsInvoice(t *testing.T) {
	product := testProduct("Cement")
	product.ID = uuid.New()
	variant := testVariant(product.ID, "CEM-50", 380, 100)
	variant.ID = uuid.New()

	cart := &Cart{}
	require.NoError(t, cart.AddItem(product, variant))
	require.NoError(t, cart.SetItemQuantity(variant.ID, 10, variant.QuantityInStock))

	invoice, err := cart.Finalize(models.CustomerDetails{Name: "Ravi", Phone: "+911234567890"}, 0.05, "", "op-1")
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusUnpaid, invoice.Status) // default
	assert.InDelta(t, 3800.0, invoice.SubTotal, 1e-9)
	assert.InDelta(t, 190.0, invoice.TaxAmount, 1e-9)
	assert.InDelta(t, 3990.0, invoice.GrandTotal, 1e-9)
	assert.Equal(t, 0.05, invoice.TaxRate)
	assert.Equal(t, "op-1", invoice.CreatedBy)
	assert.Regexp(t, `^INV-\d{8}-[A-Z0-9]{6}$`, invoice.InvoiceNumber)
}

func TestBillingServiceCheckout(t *testing.T) {
	db := newTestDB(t)
	catalog := stores.NewCatalogStore(db)
	invoices := stores.NewInvoiceStore(db)
	billing := NewBillingService(catalog, invoices)

	product := testProduct("Cement")
	require.NoError(t, catalog.CreateProduct(product))
	variant := testVariant(product.ID, "CEM-50", 380, 20)
	require.NoError(t, catalog.CreateVariant(variant))

	invoice, warnings, err := billing.Checkout(CheckoutInput{
		Customer:  models.CustomerDetails{Name: "Ravi", Phone: "+911234567890"},
		Items:     []CheckoutItem{{VariantID: variant.ID, Quantity: 10}},
		TaxRate:   0.05,
		Status:    models.InvoiceStatusPaid,
		CreatedBy: "op-1",
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, models.InvoiceStatusPaid, invoice.Status)
	assert.InDelta(t, 3990.0, invoice.GrandTotal, 1e-9)

	// The sale consumed stock
	fresh, err := catalog.GetVariant(variant.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, fresh.QuantityInStock)

	// And the invoice is persisted with its items
	stored, err := invoices.Get(invoice.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 10, stored.Items[0].Quantity)
}

func TestBillingServiceCheckoutClampsAndWarns(t *testing.T) {
	db := newTestDB(t)
	catalog := stores.NewCatalogStore(db)
	invoices := stores.NewInvoiceStore(db)
	billing := NewBillingService(catalog, invoices)

	product := testProduct("Sand")
	require.NoError(t, catalog.CreateProduct(product))
	variant := testVariant(product.ID, "SND-25", 50, 5)
	require.NoError(t, catalog.CreateVariant(variant))

	invoice, warnings, err := billing.Checkout(CheckoutInput{
		Customer:  models.CustomerDetails{Name: "Ravi", Phone: "+911234567890"},
		Items:     []CheckoutItem{{VariantID: variant.ID, Quantity: 8}},
		TaxRate:   0,
		CreatedBy: "op-1",
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "clamped")
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, 5, invoice.Items[0].Quantity)

	fresh, err := catalog.GetVariant(variant.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.QuantityInStock)
}

func TestBillingServiceCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	catalog := stores.NewCatalogStore(db)
	invoices := stores.NewInvoiceStore(db)
	billing := NewBillingService(catalog, invoices)

	_, _, err := billing.Checkout(CheckoutInput{
		Customer:  models.CustomerDetails{Name: "Ravi", Phone: "+911234567890"},
		CreatedBy: "op-1",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	assert.Zero(t, count)
}

func TestBillingServiceCheckoutUnknownVariant(t *testing.T) {
	db := newTestDB(t)
	catalog := stores.NewCatalogStore(db)
	invoices := stores.NewInvoiceStore(db)
	billing := NewBillingService(catalog, invoices)

	_, _, err := billing.Checkout(CheckoutInput{
		Customer:  models.CustomerDetails{Name: "Ravi", Phone: "+911234567890"},
		Items:     []CheckoutItem{{VariantID: uuid.New(), Quantity: 1}},
		CreatedBy: "op-1",
	})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestBillingServicePreviewDoesNotPersist(t *testing.T) {
	db := newTestDB(t)
	catalog := stores.NewCatalogStore(db)
	invoices := stores.NewInvoiceStore(db)
	billing := NewBillingService(catalog, invoices)

	product := testProduct("Bricks")
	require.NoError(t, catalog.CreateProduct(product))
	variant := testVariant(product.ID, "BRK-STD", 12, 500)
	require.NoError(t, catalog.CreateVariant(variant))

	totals, warnings, err := billing.Preview([]CheckoutItem{{VariantID: variant.ID, Quantity: 100}}, 0.05)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.InDelta(t, 1200.0, totals.SubTotal, 1e-9)
	assert.InDelta(t, 1260.0, totals.GrandTotal, 1e-9)

	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	assert.Zero(t, count)

	fresh, err := catalog.GetVariant(variant.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, fresh.QuantityInStock)
}
