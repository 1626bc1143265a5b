package stores

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartbuild-backend/models"
)

func TestSupplierCreateValidation(t *testing.T) {
	store := NewSupplierStore(newTestDB(t))

	err := store.Create(&models.Supplier{Name: "", Phone: "+911112223334"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = store.Create(&models.Supplier{Name: "Ambuja Distributors", Phone: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSupplierSearch(t *testing.T) {
	store := NewSupplierStore(newTestDB(t))

	require.NoError(t, store.Create(&models.Supplier{
		Name: "Ambuja Distributors", ContactPerson: "Suresh Patel",
		Phone: "+911112223334", Email: "sales@ambujadist.in",
	}))
	require.NoError(t, store.Create(&models.Supplier{
		Name: "Shree Steel Traders", ContactPerson: "Meena Shah",
		Phone: "+919998887776", Email: "meena@shreesteel.in",
	}))

	all, err := store.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Case-insensitive match over name, contact person and email
	byName, err := store.List("AMBUJA")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Ambuja Distributors", byName[0].Name)

	byContact, err := store.List("meena")
	require.NoError(t, err)
	require.Len(t, byContact, 1)
	assert.Equal(t, "Shree Steel Traders", byContact[0].Name)

	byEmail, err := store.List("shreesteel")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Shree Steel Traders", byEmail[0].Name)

	none, err := store.List("no such supplier")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSupplierUpdate(t *testing.T) {
	store := NewSupplierStore(newTestDB(t))

	supplier := &models.Supplier{Name: "Ambuja Distributors", Phone: "+911112223334"}
	require.NoError(t, store.Create(supplier))

	supplier.ContactPerson = "Suresh Patel"
	require.NoError(t, store.Update(supplier))

	got, err := store.Get(supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "Suresh Patel", got.ContactPerson)
}

func TestSupplierDeleteNotFound(t *testing.T) {
	store := NewSupplierStore(newTestDB(t))
	assert.ErrorIs(t, store.Delete(uuid.New()), gorm.ErrRecordNotFound)
}
