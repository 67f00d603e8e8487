package controllers

import (
	"context"
	"net/http"

	"github.com/advanceapparels/tradeshow-portal/api/responses"
	"github.com/advanceapparels/tradeshow-portal/api/validators"
	"github.com/advanceapparels/tradeshow-portal/internal/products"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
)

// CatalogService serves product and SKU lookups.
type CatalogService interface {
	Search(ctx context.Context, query string, all bool) ([]products.ProductDTO, error)
	SKUs(ctx context.Context, productID string) ([]products.SKUDTO, error)
}

func ProductSearch(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := validators.ParseQueryBool(r, "all", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchQuery)
		rows, err := svc.Search(r.Context(), q, all)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": rows, "count": len(rows)})
	}
}

func ProductSKUs(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.SKUs(r.Context(), r.URL.Query().Get("product_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"skus": rows, "count": len(rows)})
	}
}
