// Package bootstrap assembles the sync stack shared by the api and the
// scheduled worker.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/internal/apparelmagic"
	"github.com/advanceapparels/tradeshow-portal/internal/billing"
	"github.com/advanceapparels/tradeshow-portal/internal/cron"
	"github.com/advanceapparels/tradeshow-portal/internal/customers"
	"github.com/advanceapparels/tradeshow-portal/internal/fulfillment"
	"github.com/advanceapparels/tradeshow-portal/internal/orders"
	"github.com/advanceapparels/tradeshow-portal/internal/products"
	"github.com/advanceapparels/tradeshow-portal/internal/shipstation"
	"github.com/advanceapparels/tradeshow-portal/internal/sync"
	"github.com/advanceapparels/tradeshow-portal/pkg/config"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
	"github.com/advanceapparels/tradeshow-portal/pkg/metrics"
	"github.com/advanceapparels/tradeshow-portal/pkg/redis"
)

type SyncParams struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	Registerer prometheus.Registerer
	Logger     *logger.Logger
}

// NewSyncService wires repositories, upstream clients and locks. A source
// without credentials is left unset so its kinds report DEPENDENCY_ERROR
// instead of failing startup.
func NewSyncService(ctx context.Context, p SyncParams) (*sync.Service, error) {
	cfg, logg := p.Config, p.Logger

	customerRepo := customers.NewRepository(p.DB)
	orderRepo := orders.NewRepository(p.DB)
	logRepo := sync.NewLogRepository(p.DB)

	var locks sync.LockFactory
	if cfg.Sync.LockEnabled && p.Redis != nil {
		factory, err := cron.SyncLockFactory(p.Redis, p.Redis.SyncLockKey, cfg.Sync.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("sync locks: %w", err)
		}
		locks = factory
	} else if cfg.Sync.LockEnabled {
		logg.Warn(ctx, "sync locking enabled but redis is not configured; runs are unguarded")
	}

	runner, err := sync.NewRunner(sync.RunnerParams{
		Logs:    logRepo,
		Lookups: sync.NewLookupLoader(customerRepo, orderRepo),
		Logger:  logg,
		Metrics: metrics.NewSyncMetrics(p.Registerer),
		Locks:   locks,
	})
	if err != nil {
		return nil, fmt.Errorf("sync runner: %w", err)
	}

	params := sync.ServiceParams{
		Runner:      runner,
		Customers:   customerRepo,
		Products:    products.NewRepository(p.DB),
		Orders:      orderRepo,
		Billing:     billing.NewRepository(p.DB),
		Fulfillment: fulfillment.NewRepository(p.DB),
		Logs:        logRepo,
		Logger:      logg,
	}

	if cfg.ApparelMagic.Enabled() {
		erp, err := apparelmagic.NewClient(cfg.ApparelMagic, logg)
		if err != nil {
			return nil, fmt.Errorf("apparelmagic client: %w", err)
		}
		params.ERP = erp
	} else {
		logg.Warn(ctx, "apparelmagic token not set; erp sync disabled")
	}

	if cfg.ShipStation.Enabled() {
		carrier, err := shipstation.NewClient(cfg.ShipStation, logg)
		if err != nil {
			return nil, fmt.Errorf("shipstation client: %w", err)
		}
		params.Carrier = carrier
	} else {
		logg.Warn(ctx, "shipstation credentials not set; shipment sync disabled")
	}

	return sync.NewService(params)
}
