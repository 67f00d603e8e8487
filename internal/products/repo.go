package products

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/internal/repo"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

const (
	searchLimit    = 100
	searchAllLimit = 200
)

// Repository persists the mirrored catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertProduct(ctx context.Context, product *models.Product) (uuid.UUID, bool, error)
	ReplaceMedia(ctx context.Context, productID string, images []models.ProductImage, skus []models.ProductSKU, replaceSKUs bool) error
	UpdateInventory(ctx context.Context, skuID string, update InventoryUpdate) (bool, error)
	Search(ctx context.Context, query string, all bool) ([]models.Product, error)
	ImagesFor(ctx context.Context, productIDs []string) (map[string][]models.ProductImage, error)
	ListSKUs(ctx context.Context, productID string) ([]models.ProductSKU, error)
}

// InventoryUpdate carries the stock and costing columns owned by the inventory feed.
type InventoryUpdate struct {
	QtyAvailSell  int
	QtyInventory  int
	QtyAlloc      int
	QtyAvailAlloc int
	QtyOpenPO     int
	QtyOpenSales  int
	QtyPicked     int
	Cost          decimal.Decimal
	Location      *string
	UPC           *string
	IsActive      bool
	SyncedAt      time.Time
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) UpsertProduct(ctx context.Context, product *models.Product) (uuid.UUID, bool, error) {
	return repo.UpsertByKey(r.db.WithContext(ctx), product, "product_id", product.ProductID)
}

// ReplaceMedia swaps the image set of a product and, when replaceSKUs is set,
// its SKU set. SKUs that survive keep their inventory columns; only the
// catalog columns are overwritten.
func (r *repository) ReplaceMedia(ctx context.Context, productID string, images []models.ProductImage, skus []models.ProductSKU, replaceSKUs bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		if !replaceSKUs {
			return nil
		}

		keep := make([]string, 0, len(skus))
		for i := range skus {
			sku := skus[i]
			keep = append(keep, sku.SKUID)
			res := tx.Model(&models.ProductSKU{}).
				Where("sku_id = ?", sku.SKUID).
				Updates(map[string]any{
					"product_id":     sku.ProductID,
					"style_number":   sku.StyleNumber,
					"attr_2":         sku.Attr2,
					"size":           sku.Size,
					"price":          sku.Price,
					"qty_avail_sell": sku.QtyAvailSell,
					"last_synced_at": sku.LastSyncedAt,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Create(&sku).Error; err != nil {
					return err
				}
			}
		}

		stale := tx.Where("product_id = ?", productID)
		if len(keep) > 0 {
			stale = stale.Where("sku_id NOT IN ?", keep)
		}
		return stale.Delete(&models.ProductSKU{}).Error
	})
}

// UpdateInventory reports false when no SKU with skuID is mirrored yet.
func (r *repository) UpdateInventory(ctx context.Context, skuID string, u InventoryUpdate) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ProductSKU{}).
		Where("sku_id = ?", skuID).
		Updates(map[string]any{
			"qty_avail_sell":  u.QtyAvailSell,
			"qty_inventory":   u.QtyInventory,
			"qty_alloc":       u.QtyAlloc,
			"qty_avail_alloc": u.QtyAvailAlloc,
			"qty_open_po":     u.QtyOpenPO,
			"qty_open_sales":  u.QtyOpenSales,
			"qty_picked":      u.QtyPicked,
			"cost":            u.Cost,
			"location":        u.Location,
			"upc":             u.UPC,
			"is_active":       u.IsActive,
			"last_synced_at":  u.SyncedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Search matches style number, description and category. all skips the
// filter and raises the limit.
func (r *repository) Search(ctx context.Context, query string, all bool) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Order("style_number ASC")
	term := strings.ToLower(strings.TrimSpace(query))
	limit := searchLimit
	if all {
		limit = searchAllLimit
	} else if term != "" {
		pattern := "%" + term + "%"
		q = q.Where("LOWER(style_number) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern, pattern)
	}
	var out []models.Product
	err := q.Limit(limit).Find(&out).Error
	return out, err
}

func (r *repository) ImagesFor(ctx context.Context, productIDs []string) (map[string][]models.ProductImage, error) {
	out := make(map[string][]models.ProductImage, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	var rows []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("sort_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, img := range rows {
		out[img.ProductID] = append(out[img.ProductID], img)
	}
	return out, nil
}

func (r *repository) ListSKUs(ctx context.Context, productID string) ([]models.ProductSKU, error) {
	var out []models.ProductSKU
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("attr_2 ASC").
		Order("size ASC").
		Find(&out).Error
	return out, err
}
