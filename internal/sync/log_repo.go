package sync

import (
	"context"

	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/internal/customers"
	"github.com/advanceapparels/tradeshow-portal/internal/orders"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

// LogRepository persists sync_log rows.
type LogRepository interface {
	Create(ctx context.Context, entry *models.SyncLog) error
	Finish(ctx context.Context, entry *models.SyncLog) error
	Recent(ctx context.Context, kind enums.SyncKind, limit int) ([]models.SyncLog, error)
}

type logRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Create(ctx context.Context, entry *models.SyncLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *logRepository) Finish(ctx context.Context, entry *models.SyncLog) error {
	return r.db.WithContext(ctx).Model(entry).Select(
		"status", "records_processed", "records_created", "records_updated",
		"records_skipped", "errors", "error_details", "duration_seconds", "completed_at",
	).Updates(entry).Error
}

// Recent lists the latest runs, newest first. An empty kind lists every kind.
func (r *logRepository) Recent(ctx context.Context, kind enums.SyncKind, limit int) ([]models.SyncLog, error) {
	if limit <= 0 {
		limit = 20
	}
	q := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit)
	if kind != "" {
		q = q.Where("sync_type = ?", kind)
	}
	var out []models.SyncLog
	err := q.Find(&out).Error
	return out, err
}

type repoLookups struct {
	customers customers.Repository
	orders    orders.Repository
}

// NewLookupLoader builds lookups from the customer and order repositories.
func NewLookupLoader(c customers.Repository, o orders.Repository) LookupLoader {
	return &repoLookups{customers: c, orders: o}
}

func (l *repoLookups) Load(ctx context.Context, spec LookupSpec) (*Lookups, error) {
	out := &Lookups{}
	var err error
	if spec.Customers {
		if out.Customers, err = l.customers.IDMap(ctx); err != nil {
			return nil, err
		}
	}
	if spec.Orders {
		if out.Orders, err = l.orders.IDMap(ctx); err != nil {
			return nil, err
		}
	}
	if spec.OrderNumbers {
		if out.OrderNumbers, err = l.orders.NumberMap(ctx); err != nil {
			return nil, err
		}
	}
	return out, nil
}
