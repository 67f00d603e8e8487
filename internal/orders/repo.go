package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/internal/repo"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

// Repository persists ERP sales orders and their lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertOrder(ctx context.Context, order *models.Order) (uuid.UUID, bool, error)
	ReplaceItems(ctx context.Context, orderID uuid.UUID, amOrderID string, items []models.OrderItem) error
	FindItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	IDMap(ctx context.Context) (map[string]uuid.UUID, error)
	NumberMap(ctx context.Context) (map[string]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) UpsertOrder(ctx context.Context, order *models.Order) (uuid.UUID, bool, error) {
	return repo.UpsertByKey(r.db.WithContext(ctx), order, "apparel_magic_id", order.ApparelMagicID)
}

// ReplaceItems deletes and reinserts the lines of one order atomically.
func (r *repository) ReplaceItems(ctx context.Context, orderID uuid.UUID, amOrderID string, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderID = orderID
			items[i].ApparelMagicOrderID = amOrderID
		}
		return tx.Create(&items).Error
	})
}

func (r *repository) FindItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var out []models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&out).Error
	return out, err
}

// IDMap maps apparel_magic_id to the local order id.
func (r *repository) IDMap(ctx context.Context) (map[string]uuid.UUID, error) {
	return repo.IDMap(r.db.WithContext(ctx), "orders", "apparel_magic_id")
}

// NumberMap resolves carrier references, which may carry either the order
// number or the ERP id.
func (r *repository) NumberMap(ctx context.Context) (map[string]uuid.UUID, error) {
	byNumber, err := repo.IDMap(r.db.WithContext(ctx), "orders", "order_number")
	if err != nil {
		return nil, err
	}
	byID, err := r.IDMap(ctx)
	if err != nil {
		return nil, err
	}
	for k, v := range byID {
		byNumber[k] = v
	}
	return byNumber, nil
}
