package products

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtest"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

func strPtr(s string) *string { return &s }

func seedProduct(t *testing.T, r Repository, productID, style, desc string) {
	t.Helper()
	_, _, err := r.UpsertProduct(context.Background(), &models.Product{
		ProductID:   productID,
		StyleNumber: style,
		Description: strPtr(desc),
		Price:       decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)
}

func sku(productID, skuID, color, size string) models.ProductSKU {
	return models.ProductSKU{
		SKUID:        skuID,
		ProductID:    productID,
		StyleNumber:  "ST-" + productID,
		Attr2:        strPtr(color),
		Size:         strPtr(size),
		Price:        decimal.RequireFromString("10"),
		QtyAvailSell: 3,
		IsActive:     true,
	}
}

func TestReplaceMediaKeepsInventoryColumnsAndDropsStale(t *testing.T) {
	r := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	seedProduct(t, r, "100", "ST-100", "Tee")

	require.NoError(t, r.ReplaceMedia(ctx, "100",
		[]models.ProductImage{{ProductID: "100", ImageURL: "a.jpg", SortOrder: 0}},
		[]models.ProductSKU{sku("100", "S1", "RED", "M"), sku("100", "S2", "RED", "L")}, true))

	found, err := r.UpdateInventory(ctx, "S1", InventoryUpdate{QtyInventory: 40, QtyAvailSell: 30, IsActive: true, SyncedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, r.ReplaceMedia(ctx, "100",
		[]models.ProductImage{{ProductID: "100", ImageURL: "b.jpg", SortOrder: 0}, {ProductID: "100", ImageURL: "c.jpg", SortOrder: 1}},
		[]models.ProductSKU{sku("100", "S1", "RED", "M")}, true))

	skus, err := r.ListSKUs(ctx, "100")
	require.NoError(t, err)
	require.Len(t, skus, 1)
	assert.Equal(t, 40, skus[0].QtyInventory)
	assert.Equal(t, 3, skus[0].QtyAvailSell)

	imgs, err := r.ImagesFor(ctx, []string{"100"})
	require.NoError(t, err)
	require.Len(t, imgs["100"], 2)
	assert.Equal(t, "b.jpg", imgs["100"][0].ImageURL)
}

func TestReplaceMediaWithoutSKUsLeavesThem(t *testing.T) {
	r := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	seedProduct(t, r, "200", "ST-200", "Hoodie")
	require.NoError(t, r.ReplaceMedia(ctx, "200", nil, []models.ProductSKU{sku("200", "H1", "BLK", "S")}, true))

	require.NoError(t, r.ReplaceMedia(ctx, "200", nil, nil, false))

	skus, err := r.ListSKUs(ctx, "200")
	require.NoError(t, err)
	assert.Len(t, skus, 1)
}

func TestUpdateInventoryUnknownSKU(t *testing.T) {
	r := NewRepository(dbtest.Open(t))
	found, err := r.UpdateInventory(context.Background(), "missing", InventoryUpdate{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearchAttachesImagesAndFilters(t *testing.T) {
	r := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	seedProduct(t, r, "1", "AA-1", "Crew Tee")
	seedProduct(t, r, "2", "BB-2", "Fleece Hoodie")
	require.NoError(t, r.ReplaceMedia(ctx, "2", []models.ProductImage{
		{ProductID: "2", ImageURL: "second.jpg", SortOrder: 1},
		{ProductID: "2", ImageURL: "first.jpg", SortOrder: 0},
	}, nil, false))

	svc, err := NewService(ServiceParams{Repo: r})
	require.NoError(t, err)

	out, err := svc.Search(ctx, "hoodie", false)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "BB-2", out[0].StyleNumber)
	assert.Equal(t, []ImageDTO{{Img: "first.jpg"}, {Img: "second.jpg"}}, out[0].Images)

	all, err := svc.Search(ctx, "hoodie", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Empty(t, all[0].Images)
	assert.NotNil(t, all[0].Images)
}

func TestSKUsOrderedByColorThenSize(t *testing.T) {
	r := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	seedProduct(t, r, "3", "CC-3", "Cap")
	require.NoError(t, r.ReplaceMedia(ctx, "3", nil, []models.ProductSKU{
		sku("3", "X3", "RED", "B"),
		sku("3", "X1", "BLUE", "B"),
		sku("3", "X2", "BLUE", "A"),
	}, true))

	svc, err := NewService(ServiceParams{Repo: r})
	require.NoError(t, err)
	out, err := svc.SKUs(ctx, "3")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"X2", "X1", "X3"}, []string{out[0].SKUID, out[1].SKUID, out[2].SKUID})

	_, err = svc.SKUs(ctx, " ")
	assert.Error(t, err)
}
