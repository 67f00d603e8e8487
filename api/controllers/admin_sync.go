package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/advanceapparels/tradeshow-portal/api/responses"
	"github.com/advanceapparels/tradeshow-portal/api/validators"
	syncsvc "github.com/advanceapparels/tradeshow-portal/internal/sync"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
)

// SyncService triggers mirror runs from the admin dashboard.
type SyncService interface {
	Run(ctx context.Context, kind enums.SyncKind) (*syncsvc.Result, error)
	RunAll(ctx context.Context) (*syncsvc.AllResult, error)
	History(ctx context.Context, kind enums.SyncKind, limit int) ([]syncsvc.LogEntryDTO, error)
}

// AdminSync runs a single kind. Runs are synchronous; the dashboard waits for
// the summary.
func AdminSync(svc SyncService, kind enums.SyncKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithField(ctx, "sync_kind", kind.String())
		}
		res, err := svc.Run(ctx, kind)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, res)
	}
}

// AdminSyncAll runs every kind in order. When any kind fails the response is
// an UPSTREAM error whose details carry the per-kind results.
func AdminSyncAll(svc SyncService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.RunAll(r.Context())
		if err != nil {
			failed := []string{}
			var results []*syncsvc.Result
			if res != nil {
				failed = res.Failed
				results = res.Results
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUpstream, err,
				"sync-all finished with failures: "+strings.Join(failed, ", ")).
				WithDetails(map[string]any{"failed": failed, "results": results}))
			return
		}
		responses.WriteSuccess(w, res)
	}
}

func AdminSyncHistory(svc SyncService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var kind enums.SyncKind
		if raw := strings.TrimSpace(r.URL.Query().Get("kind")); raw != "" {
			kind, err = enums.ParseSyncKind(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sync kind"))
				return
			}
		}
		rows, err := svc.History(r.Context(), kind, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"runs": rows, "count": len(rows)})
	}
}
