package portals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

// Repository persists portals and their child rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, portal *models.Portal) error
	LinkExists(ctx context.Context, link string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Portal, error)
	FindByLink(ctx context.Context, link string) (*models.Portal, error)
	List(ctx context.Context, q listQuery) ([]models.Portal, error)
	TradeShows(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.PortalStatus, confirmedAt *time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ReplaceItems(ctx context.Context, portalID uuid.UUID, items []models.PortalItem) error
	Items(ctx context.Context, portalID uuid.UUID) ([]models.PortalItem, error)
	CreateAttachment(ctx context.Context, attachment *models.PortalAttachment) error
	Attachments(ctx context.Context, portalID uuid.UUID) ([]models.PortalAttachment, error)
}

type listQuery struct {
	status     *enums.PortalStatus
	tradeShow  string
	isNew      *bool
	sortColumn string
	ascending  bool
	nullsLast  bool
	limit      int
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

func (r *repository) Create(ctx context.Context, portal *models.Portal) error {
	return r.db.WithContext(ctx).Create(portal).Error
}

func (r *repository) LinkExists(ctx context.Context, link string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Portal{}).Where("unique_link = ?", link).Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Portal, error) {
	var p models.Portal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByLink(ctx context.Context, link string) (*models.Portal, error) {
	var p models.Portal
	if err := r.db.WithContext(ctx).Where("unique_link = ?", link).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, q listQuery) ([]models.Portal, error) {
	tx := r.db.WithContext(ctx).Model(&models.Portal{})
	if q.status != nil {
		tx = tx.Where("status = ?", *q.status)
	}
	if q.tradeShow != "" {
		tx = tx.Where("trade_show_name = ?", q.tradeShow)
	}
	if q.isNew != nil {
		tx = tx.Where("is_new_customer = ?", *q.isNew)
	}

	dir := "DESC"
	if q.ascending {
		dir = "ASC"
	}
	// "col IS NULL" sorts false first on both postgres and sqlite.
	if q.nullsLast {
		tx = tx.Order(q.sortColumn + " IS NULL")
	}
	tx = tx.Order(q.sortColumn + " " + dir).Order("id " + dir)

	var rows []models.Portal
	if err := tx.Limit(q.limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) TradeShows(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Portal{}).
		Where("trade_show_name IS NOT NULL AND trade_show_name <> ''").
		Distinct().
		Order("trade_show_name ASC").
		Pluck("trade_show_name", &names).Error
	return names, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.PortalStatus, confirmedAt *time.Time) (bool, error) {
	updates := map[string]any{"status": status, "updated_at": time.Now().UTC()}
	if confirmedAt != nil {
		updates["confirmed_at"] = *confirmedAt
	}
	res := r.db.WithContext(ctx).Model(&models.Portal{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// Delete removes the portal with its items and attachment rows.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portal_id = ?", id).Delete(&models.PortalItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("portal_id = ?", id).Delete(&models.PortalAttachment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Portal{})
		found = res.RowsAffected > 0
		return res.Error
	})
	return found, err
}

// ReplaceItems swaps the whole item list in one transaction.
func (r *repository) ReplaceItems(ctx context.Context, portalID uuid.UUID, items []models.PortalItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portal_id = ?", portalID).Delete(&models.PortalItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].PortalID = portalID
			items[i].SortOrder = i
		}
		return tx.Create(&items).Error
	})
}

func (r *repository) Items(ctx context.Context, portalID uuid.UUID) ([]models.PortalItem, error) {
	var rows []models.PortalItem
	err := r.db.WithContext(ctx).
		Where("portal_id = ?", portalID).
		Order("sort_order ASC").Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateAttachment(ctx context.Context, attachment *models.PortalAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *repository) Attachments(ctx context.Context, portalID uuid.UUID) ([]models.PortalAttachment, error) {
	var rows []models.PortalAttachment
	err := r.db.WithContext(ctx).
		Where("portal_id = ?", portalID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
