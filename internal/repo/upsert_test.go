package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtest"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

func strPtr(s string) *string { return &s }

func TestUpsertByKeyCreatesThenUpdates(t *testing.T) {
	db := dbtest.Open(t)

	first := &models.Customer{AMCustomerID: strPtr("C1"), CustomerName: "Acme", IsActive: true}
	id, created, err := UpsertByKey(db, first, "am_customer_id", "C1")
	require.NoError(t, err)
	assert.True(t, created)

	second := &models.Customer{AMCustomerID: strPtr("C1"), CustomerName: "Acme Corp", IsActive: false}
	id2, created, err := UpsertByKey(db, second, "am_customer_id", "C1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, id2)

	var stored models.Customer
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, "Acme Corp", stored.CustomerName)
	assert.False(t, stored.IsActive)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestIDMapSkipsNullKeys(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&models.Customer{AMCustomerID: strPtr("C9"), CustomerName: "Nine"}).Error)
	require.NoError(t, db.Create(&models.Customer{CustomerName: "Local", IsLocalOnly: true}).Error)

	m, err := IDMap(db, "customers", "am_customer_id")
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Contains(t, m, "C9")
}
