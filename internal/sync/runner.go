// Package sync mirrors ERP and carrier collections into the local database.
// Each kind is described by a Descriptor and executed by a Runner that owns
// locking, the sync_log audit row, metrics and per-record error accounting.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
	"github.com/advanceapparels/tradeshow-portal/pkg/metrics"
	"github.com/advanceapparels/tradeshow-portal/pkg/types"
)

const maxRecordedErrors = 20

// Outcome is what applying one record did to the mirror.
type Outcome int

const (
	Created Outcome = iota
	Updated
	Skipped
)

func (o Outcome) label() string {
	switch o {
	case Created:
		return metrics.OutcomeCreated
	case Updated:
		return metrics.OutcomeUpdated
	default:
		return metrics.OutcomeSkipped
	}
}

// Locker guards a kind against concurrent runs.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// LockFactory returns the lock for one kind.
type LockFactory func(kind enums.SyncKind) (Locker, error)

// LookupSpec names the foreign-key maps a kind needs before applying records.
type LookupSpec struct {
	Customers    bool
	Orders       bool
	OrderNumbers bool
}

// Lookups resolves ERP identifiers to local ids. Maps are loaded once per run.
type Lookups struct {
	Customers    map[string]uuid.UUID
	Orders       map[string]uuid.UUID
	OrderNumbers map[string]uuid.UUID
}

// LookupLoader builds the maps requested by a LookupSpec.
type LookupLoader interface {
	Load(ctx context.Context, spec LookupSpec) (*Lookups, error)
}

// Env is handed to Apply. Count accumulates kind-specific totals such as
// images or order lines that appear in the Result.
type Env struct {
	Lookups  *Lookups
	SyncedAt time.Time
	extra    map[string]int
}

func (e *Env) Count(name string, n int) {
	if e.extra == nil {
		e.extra = map[string]int{}
	}
	e.extra[name] += n
}

func (e *Env) customerID(amID string) *uuid.UUID {
	if e.Lookups == nil || amID == "" {
		return nil
	}
	return lookup(e.Lookups.Customers, amID)
}

func (e *Env) orderID(amID string) *uuid.UUID {
	if e.Lookups == nil || amID == "" {
		return nil
	}
	return lookup(e.Lookups.Orders, amID)
}

func (e *Env) orderByNumber(ref string) *uuid.UUID {
	if e.Lookups == nil || ref == "" {
		return nil
	}
	return lookup(e.Lookups.OrderNumbers, ref)
}

func lookup(m map[string]uuid.UUID, key string) *uuid.UUID {
	if id, ok := m[key]; ok {
		return &id
	}
	return nil
}

// Descriptor binds one kind's remote fetch to its per-record mapping. Fetch
// returns raw records; each is decoded into T just before Apply, so a record
// with an unexpected shape fails alone. IDField names the JSON field used to
// identify a record that could not be decoded.
type Descriptor[T any] struct {
	Kind    enums.SyncKind
	Fetch   func(ctx context.Context) ([]json.RawMessage, error)
	IDField string
	Lookups LookupSpec
	Key     func(T) string
	Apply   func(ctx context.Context, env *Env, rec T) (Outcome, error)
}

// RecordError is one failed record, kept in the sync_log error details.
type RecordError struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// Result summarizes a run for API callers.
type Result struct {
	Kind            enums.SyncKind `json:"kind"`
	SyncLogID       uuid.UUID      `json:"sync_log_id"`
	Status          string         `json:"status"`
	Total           int            `json:"total"`
	Created         int            `json:"created"`
	Updated         int            `json:"updated"`
	Skipped         int            `json:"skipped"`
	Errors          int            `json:"errors"`
	Extra           map[string]int `json:"extra,omitempty"`
	Duration        string         `json:"duration"`
	DurationSeconds float64        `json:"duration_seconds"`
	RecordErrors    []RecordError  `json:"record_errors,omitempty"`
	Error           string         `json:"error,omitempty"`
}

type RunnerParams struct {
	Logs    LogRepository
	Lookups LookupLoader
	Logger  *logger.Logger
	Metrics *metrics.SyncMetrics
	Locks   LockFactory
	Now     func() time.Time
}

// Runner executes descriptors.
type Runner struct {
	logs    LogRepository
	lookups LookupLoader
	logg    *logger.Logger
	metrics *metrics.SyncMetrics
	locks   LockFactory
	now     func() time.Time
}

func NewRunner(params RunnerParams) (*Runner, error) {
	if params.Logs == nil {
		return nil, errors.New("sync log repository is required")
	}
	if params.Lookups == nil {
		return nil, errors.New("lookup loader is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		logs:    params.Logs,
		lookups: params.Lookups,
		logg:    params.Logger,
		metrics: params.Metrics,
		locks:   params.Locks,
		now:     now,
	}, nil
}

// Execute runs one kind end to end. A fetch failure marks the run failed and
// returns an UPSTREAM error; failures of individual records are counted and
// the run continues.
func Execute[T any](ctx context.Context, r *Runner, d Descriptor[T]) (*Result, error) {
	release, err := r.acquire(ctx, d.Kind)
	if err != nil {
		return nil, err
	}
	defer release()

	started := r.now()
	entry := &models.SyncLog{
		SyncType:  d.Kind,
		Source:    d.Kind.Source(),
		Status:    enums.SyncStatusStarted,
		StartedAt: started,
	}
	if err := r.logs.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to record sync start")
	}
	ctx = r.logg.WithSyncRun(ctx, d.Kind.String(), entry.ID.String())
	r.logg.Info(ctx, "sync started")

	res := &Result{Kind: d.Kind, SyncLogID: entry.ID}

	records, err := d.Fetch(ctx)
	if err != nil {
		return res, r.fail(ctx, entry, res, started, err)
	}
	r.metrics.SetFetched(d.Kind.String(), len(records))

	lookups, err := r.lookups.Load(ctx, d.Lookups)
	if err != nil {
		return res, r.fail(ctx, entry, res, started, err)
	}

	env := &Env{Lookups: lookups, SyncedAt: r.now()}
	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return res, r.fail(ctx, entry, res, started, err)
		}
		res.Total++
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			r.recordError(ctx, res, rawKey(raw, d.IDField, i), fmt.Errorf("decoding record: %w", err))
			continue
		}
		outcome, err := d.Apply(ctx, env, rec)
		if err != nil {
			key := ""
			if d.Key != nil {
				key = d.Key(rec)
			}
			r.recordError(ctx, res, key, err)
			continue
		}
		switch outcome {
		case Created:
			res.Created++
		case Updated:
			res.Updated++
		default:
			res.Skipped++
		}
	}
	res.Extra = env.extra

	duration := r.now().Sub(started)
	res.setDuration(duration)
	res.Status = enums.SyncStatusCompleted.String()
	r.record(d.Kind, res, duration)

	completed := r.now()
	entry.Status = enums.SyncStatusCompleted
	entry.RecordsProcessed = res.Total
	entry.RecordsCreated = res.Created
	entry.RecordsUpdated = res.Updated
	entry.RecordsSkipped = res.Skipped
	entry.Errors = res.Errors
	entry.DurationSeconds = &res.DurationSeconds
	entry.CompletedAt = &completed
	if len(res.RecordErrors) > 0 {
		entry.ErrorDetails = errorDetails("", res.RecordErrors)
	}
	if err := r.logs.Finish(ctx, entry); err != nil {
		r.logg.Error(ctx, "failed to record sync completion", err)
	}

	logCtx := r.logg.WithFields(ctx, map[string]any{
		"total":   res.Total,
		"created": res.Created,
		"updated": res.Updated,
		"skipped": res.Skipped,
		"errors":  res.Errors,
	})
	r.logg.Info(logCtx, "sync completed")
	return res, nil
}

// recordError counts a failed record and keeps the first few for the audit row.
func (r *Runner) recordError(ctx context.Context, res *Result, key string, err error) {
	res.Errors++
	if len(res.RecordErrors) < maxRecordedErrors {
		res.RecordErrors = append(res.RecordErrors, RecordError{Key: key, Error: err.Error()})
	}
	r.logg.Error(r.logg.WithField(ctx, "record_key", key), "sync record failed", err)
}

// rawKey pulls the identifying field out of a record that did not decode,
// falling back to its position in the fetch.
func rawKey(raw json.RawMessage, field string, index int) string {
	if field != "" {
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) == nil {
			var id types.Flex
			if v, ok := obj[field]; ok && json.Unmarshal(v, &id) == nil && !id.IsEmpty() {
				return id.String()
			}
		}
	}
	return fmt.Sprintf("#%d", index)
}

func (res *Result) setDuration(d time.Duration) {
	res.DurationSeconds = d.Seconds()
	res.Duration = fmt.Sprintf("%.2fs", d.Seconds())
}

func (r *Runner) acquire(ctx context.Context, kind enums.SyncKind) (func(), error) {
	if r.locks == nil {
		return func() {}, nil
	}
	lock, err := r.locks(kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to build sync lock")
	}
	ok, err := lock.Acquire(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to acquire sync lock")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("%s sync is already running", kind)).
			WithDetails(map[string]any{"sync_kind": kind.String()})
	}
	return func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			r.logg.Warn(ctx, "failed to release sync lock")
		}
	}, nil
}

func (r *Runner) fail(ctx context.Context, entry *models.SyncLog, res *Result, started time.Time, cause error) error {
	duration := r.now().Sub(started)
	completed := r.now()
	res.Status = enums.SyncStatusFailed.String()
	res.Error = cause.Error()
	res.setDuration(duration)

	entry.Status = enums.SyncStatusFailed
	entry.ErrorDetails = errorDetails(cause.Error(), res.RecordErrors)
	entry.RecordsProcessed = res.Total
	entry.RecordsCreated = res.Created
	entry.RecordsUpdated = res.Updated
	entry.RecordsSkipped = res.Skipped
	entry.Errors = res.Errors
	entry.DurationSeconds = &res.DurationSeconds
	entry.CompletedAt = &completed
	// The audit row must be written even when the request context is gone.
	if err := r.logs.Finish(context.WithoutCancel(ctx), entry); err != nil {
		r.logg.Error(ctx, "failed to record sync failure", err)
	}

	r.metrics.IncFailure(entry.SyncType.String())
	r.metrics.ObserveRun(entry.SyncType.String(), duration)
	r.logg.Error(ctx, "sync failed", cause)

	return pkgerrors.Wrap(pkgerrors.CodeUpstream, cause, fmt.Sprintf("%s sync failed: %v", entry.SyncType, cause)).
		WithDetails(map[string]any{"sync_kind": entry.SyncType.String(), "sync_log_id": entry.ID.String()})
}

func (r *Runner) record(kind enums.SyncKind, res *Result, d time.Duration) {
	k := kind.String()
	r.metrics.ObserveRun(k, d)
	r.metrics.AddRecords(k, Created.label(), res.Created)
	r.metrics.AddRecords(k, Updated.label(), res.Updated)
	r.metrics.AddRecords(k, Skipped.label(), res.Skipped)
	r.metrics.AddRecords(k, metrics.OutcomeError, res.Errors)
}

func errorDetails(message string, records []RecordError) *string {
	payload := map[string]any{}
	if message != "" {
		payload["message"] = message
	}
	if len(records) > 0 {
		payload["records"] = records
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
