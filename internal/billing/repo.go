package billing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/internal/repo"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

// Repository persists ERP invoices.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertInvoice(ctx context.Context, invoice *models.Invoice) (uuid.UUID, bool, error)
	FindByExternalID(ctx context.Context, amID string) (*models.Invoice, error)
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

func (r *repository) UpsertInvoice(ctx context.Context, invoice *models.Invoice) (uuid.UUID, bool, error) {
	return repo.UpsertByKey(r.db.WithContext(ctx), invoice, "apparel_magic_id", invoice.ApparelMagicID)
}

func (r *repository) FindByExternalID(ctx context.Context, amID string) (*models.Invoice, error) {
	var inv models.Invoice
	if err := r.db.WithContext(ctx).Where("apparel_magic_id = ?", amID).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
