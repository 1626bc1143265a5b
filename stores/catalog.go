// stores/catalog.go
package stores

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartbuild-backend/models"
)

// ErrInvalidInput is returned when an entity fails store-level validation.
// No partial writes happen after it.
var ErrInvalidInput = errors.New("invalid input")

// ProductFilter narrows ListProducts results.
type ProductFilter struct {
	Query      string // case-insensitive substring over name and category
	ActiveOnly bool
}

// CatalogStore owns products and their variants. Any backing
// implementation (postgres in production, sqlite in tests) satisfies it.
type CatalogStore interface {
	CreateProduct(p *models.Product) error
	GetProduct(id uuid.UUID) (*models.Product, error)
	ListProducts(f ProductFilter) ([]models.Product, error)
	UpdateProduct(p *models.Product) error
	DeleteProduct(id uuid.UUID) error

	CreateVariant(v *models.ProductVariant) error
	GetVariant(id uuid.UUID) (*models.ProductVariant, error)
	ListVariants(productID uuid.UUID) ([]models.ProductVariant, error)
	UpdateVariant(v *models.ProductVariant) error
	DeleteVariant(id uuid.UUID) error

	ListLowStockVariants() ([]models.ProductVariant, error)
}

type gormCatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) CatalogStore {
	return &gormCatalogStore{db: db}
}

func validateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: product category is required", ErrInvalidInput)
	}
	return nil
}

func validateVariant(v *models.ProductVariant) error {
	if strings.TrimSpace(v.SKU) == "" {
		return fmt.Errorf("%w: variant sku is required", ErrInvalidInput)
	}
	if strings.TrimSpace(v.Size) == "" {
		return fmt.Errorf("%w: variant size is required", ErrInvalidInput)
	}
	if v.PurchasePrice < 0 || v.SellingPrice < 0 {
		return fmt.Errorf("%w: prices must be non-negative", ErrInvalidInput)
	}
	if v.QuantityInStock < 0 || v.LowStockThreshold < 0 {
		return fmt.Errorf("%w: stock quantities must be non-negative", ErrInvalidInput)
	}
	if v.AverageDailySales < 0 || v.LeadTimeDays < 0 {
		return fmt.Errorf("%w: sales and lead time must be non-negative", ErrInvalidInput)
	}
	return nil
}

func (s *gormCatalogStore) CreateProduct(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.db.Create(p).Error
}

func (s *gormCatalogStore) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Variants").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	s.fillSupplierNames([]*models.Product{&product})
	return &product, nil
}

func (s *gormCatalogStore) ListProducts(f ProductFilter) ([]models.Product, error) {
	q := s.db.Preload("Variants").Order("name ASC")
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", like, like)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}

	refs := make([]*models.Product, len(products))
	for i := range products {
		refs[i] = &products[i]
	}
	s.fillSupplierNames(refs)
	return products, nil
}

// fillSupplierNames denormalizes supplier names for display. Products whose
// supplier was deleted fall back to "N/A".
func (s *gormCatalogStore) fillSupplierNames(products []*models.Product) {
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		if p.SupplierID != nil {
			ids = append(ids, *p.SupplierID)
		}
	}

	names := make(map[uuid.UUID]string)
	if len(ids) > 0 {
		var suppliers []models.Supplier
		if err := s.db.Where("id IN ?", ids).Find(&suppliers).Error; err == nil {
			for _, sup := range suppliers {
				names[sup.ID] = sup.Name
			}
		}
	}

	for _, p := range products {
		p.SupplierName = "N/A"
		if p.SupplierID != nil {
			if name, ok := names[*p.SupplierID]; ok {
				p.SupplierName = name
			}
		}
	}
}

func (s *gormCatalogStore) UpdateProduct(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.db.Save(p).Error
}

// DeleteProduct removes the product and all of its variants in one
// transaction.
func (s *gormCatalogStore) DeleteProduct(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Product{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *gormCatalogStore) CreateVariant(v *models.ProductVariant) error {
	if err := validateVariant(v); err != nil {
		return err
	}
	if err := s.db.First(&models.Product{}, "id = ?", v.ProductID).Error; err != nil {
		return err
	}
	return s.db.Create(v).Error
}

func (s *gormCatalogStore) GetVariant(id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := s.db.First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (s *gormCatalogStore) ListVariants(productID uuid.UUID) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := s.db.Where("product_id = ?", productID).Order("sku ASC").Find(&variants).Error
	return variants, err
}

func (s *gormCatalogStore) UpdateVariant(v *models.ProductVariant) error {
	if err := validateVariant(v); err != nil {
		return err
	}
	return s.db.Save(v).Error
}

func (s *gormCatalogStore) DeleteVariant(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.ProductVariant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *gormCatalogStore) ListLowStockVariants() ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := s.db.Where("quantity_in_stock <= low_stock_threshold").
		Order("quantity_in_stock ASC").Find(&variants).Error
	return variants, err
}
