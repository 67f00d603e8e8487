package products

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
)

type ServiceParams struct {
	Repo Repository
}

// Service serves catalog reads for the order builder.
type Service struct {
	repo Repository
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// Search returns matching products with their images attached in sort order.
func (s *Service) Search(ctx context.Context, query string, all bool) ([]ProductDTO, error) {
	rows, err := s.repo.Search(ctx, query, all)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to search products")
	}
	ids := make([]string, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.ProductID)
	}
	images, err := s.repo.ImagesFor(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load product images")
	}

	out := make([]ProductDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, NewProductDTO(p, images[p.ProductID]))
	}
	return out, nil
}

func (s *Service) SKUs(ctx context.Context, productID string) ([]SKUDTO, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	rows, err := s.repo.ListSKUs(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list skus")
	}
	return NewSKUDTOs(rows), nil
}
