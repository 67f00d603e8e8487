package controllers

import (
	"context"
	"net/http"

	"github.com/advanceapparels/tradeshow-portal/api/responses"
	"github.com/advanceapparels/tradeshow-portal/api/validators"
	"github.com/advanceapparels/tradeshow-portal/internal/customers"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
)

const maxSearchQuery = 100

// CustomerService is the lookup surface used by the portal builder.
type CustomerService interface {
	Search(ctx context.Context, query string, limit int) ([]customers.CustomerDTO, error)
	Locations(ctx context.Context, customerID, amCustomerID string) ([]customers.LocationDTO, error)
}

func CustomerSearch(svc CustomerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchQuery)
		rows, err := svc.Search(r.Context(), q, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"customers": rows, "count": len(rows)})
	}
}

func CustomerLocations(svc CustomerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		rows, err := svc.Locations(r.Context(), query.Get("customer_id"), query.Get("am_customer_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"locations": rows, "count": len(rows)})
	}
}
