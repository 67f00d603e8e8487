package customers

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
)

const (
	defaultCountry     = "USA"
	defaultSearchLimit = 20
	maxSearchLimit     = 200
	minQueryLength     = 2
)

type ServiceParams struct {
	Repo Repository
}

type Service struct {
	repo Repository
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// Search returns active customers by name when the query is shorter than two
// characters. Otherwise matches are ranked exact name, then name prefix, then
// alphabetical.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]CustomerDTO, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if len(term) < minQueryLength {
		rows, err := s.repo.ListActive(ctx, limit)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list customers")
		}
		return NewCustomerDTOs(rows), nil
	}

	rows, err := s.repo.Search(ctx, term, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to search customers")
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := strings.ToLower(rows[i].CustomerName), strings.ToLower(rows[j].CustomerName)
		if ra, rb := rank(a, term), rank(b, term); ra != rb {
			return ra < rb
		}
		return a < b
	})
	return NewCustomerDTOs(rows), nil
}

func rank(name, term string) int {
	switch {
	case name == term:
		return 0
	case strings.HasPrefix(name, term):
		return 1
	default:
		return 2
	}
}

// Locations lists ship-to addresses for a customer given either identifier.
func (s *Service) Locations(ctx context.Context, customerID, amCustomerID string) ([]LocationDTO, error) {
	customerID = strings.TrimSpace(customerID)
	amCustomerID = strings.TrimSpace(amCustomerID)
	if customerID == "" && amCustomerID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_id or am_customer_id is required")
	}

	filter := LocationFilter{AMCustomerID: amCustomerID}
	if customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_id must be a uuid")
		}
		filter.CustomerID = &id
	}

	rows, err := s.repo.ListLocations(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list locations")
	}
	return NewLocationDTOs(rows), nil
}
