package cron

import (
	"context"
	"errors"

	"github.com/advanceapparels/tradeshow-portal/internal/sync"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
)

const syncAllJobName = "sync-all"

type syncRunner interface {
	RunAll(ctx context.Context) (*sync.AllResult, error)
}

// SyncAllJob runs the full ERP and carrier chain on each cycle.
type SyncAllJob struct {
	svc  syncRunner
	logg *logger.Logger
}

func NewSyncAllJob(svc syncRunner, logg *logger.Logger) (*SyncAllJob, error) {
	if svc == nil {
		return nil, errors.New("sync service required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &SyncAllJob{svc: svc, logg: logg}, nil
}

func (j *SyncAllJob) Name() string { return syncAllJobName }

// Run returns the combined failure so the cycle records it; kinds that did
// finish are already persisted in the sync log.
func (j *SyncAllJob) Run(ctx context.Context) error {
	res, err := j.svc.RunAll(ctx)
	if res != nil {
		processed := 0
		for _, r := range res.Results {
			if r != nil {
				processed += r.Total
			}
		}
		ctx = j.logg.WithFields(ctx, map[string]any{
			"kinds":     len(res.Results),
			"failed":    res.Failed,
			"processed": processed,
		})
		j.logg.Info(ctx, "sync chain finished")
	}
	return err
}
