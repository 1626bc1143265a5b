// stores/supplier.go
package stores

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartbuild-backend/models"
)

// SupplierStore owns the supplier directory. Deleting a supplier that
// products still reference is allowed; product reads fall back to "N/A".
type SupplierStore interface {
	Create(s *models.Supplier) error
	Get(id uuid.UUID) (*models.Supplier, error)
	List(query string) ([]models.Supplier, error)
	Update(s *models.Supplier) error
	Delete(id uuid.UUID) error
}

type gormSupplierStore struct {
	db *gorm.DB
}

func NewSupplierStore(db *gorm.DB) SupplierStore {
	return &gormSupplierStore{db: db}
}

func validateSupplier(s *models.Supplier) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: supplier name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(s.Phone) == "" {
		return fmt.Errorf("%w: supplier phone is required", ErrInvalidInput)
	}
	return nil
}

func (st *gormSupplierStore) Create(s *models.Supplier) error {
	if err := validateSupplier(s); err != nil {
		return err
	}
	return st.db.Create(s).Error
}

func (st *gormSupplierStore) Get(id uuid.UUID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := st.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// List matches a case-insensitive substring across name, contact person
// and email.
func (st *gormSupplierStore) List(query string) ([]models.Supplier, error) {
	q := st.db.Order("name ASC")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(contact_person) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}
	var suppliers []models.Supplier
	err := q.Find(&suppliers).Error
	return suppliers, err
}

func (st *gormSupplierStore) Update(s *models.Supplier) error {
	if err := validateSupplier(s); err != nil {
		return err
	}
	return st.db.Save(s).Error
}

func (st *gormSupplierStore) Delete(id uuid.UUID) error {
	result := st.db.Where("id = ?", id).Delete(&models.Supplier{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
