package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/pkg/config"
	"github.com/advanceapparels/tradeshow-portal/pkg/db"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtest"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	conn := dbtest.Open(t)
	client := db.Wrap(conn)

	ctx := context.Background()
	require.NoError(t, client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.Customer{CustomerName: "committed"}).Error
	}))

	var count int64
	require.NoError(t, conn.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Customer{CustomerName: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	require.NoError(t, conn.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "rollback should leave one record")
}

func TestPing(t *testing.T) {
	client := dbtest.OpenClient(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestIsUniqueViolation(t *testing.T) {
	conn := dbtest.Open(t)
	ext := "C-1"
	require.NoError(t, conn.Create(&models.Customer{CustomerName: "a", AMCustomerID: &ext}).Error)
	err := conn.Create(&models.Customer{CustomerName: "b", AMCustomerID: &ext}).Error
	require.Error(t, err)

	assert.True(t, db.IsUniqueViolation(err, ""))
	assert.True(t, db.IsUniqueViolation(err, "am_customer_id"))
	assert.False(t, db.IsUniqueViolation(err, "unique_link"))
	assert.False(t, db.IsUniqueViolation(errors.New("other"), ""))
	assert.False(t, db.IsUniqueViolation(nil, ""))
}

func TestNewOpensSQLite(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/portal.db"
	client, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()))
	sqlDB, err := client.DB().DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := db.New(context.Background(), config.DBConfig{}, nil)
	require.Error(t, err)
}
