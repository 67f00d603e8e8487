package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/advanceapparels/tradeshow-portal/internal/apparelmagic"
	"github.com/advanceapparels/tradeshow-portal/internal/billing"
	"github.com/advanceapparels/tradeshow-portal/internal/customers"
	"github.com/advanceapparels/tradeshow-portal/internal/fulfillment"
	"github.com/advanceapparels/tradeshow-portal/internal/orders"
	"github.com/advanceapparels/tradeshow-portal/internal/products"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
)

// ERPSource is the subset of the ApparelMagic client the sync needs.
// Collections come back as raw records; the runner decodes them one by one.
type ERPSource interface {
	Collection(ctx context.Context, resource string) ([]json.RawMessage, error)
	ProductSKUs(ctx context.Context, productID string) ([]apparelmagic.SKU, error)
	ProductAttributes(ctx context.Context, productID string) ([]apparelmagic.Colorway, error)
}

// CarrierSource is the subset of the ShipStation client the sync needs.
type CarrierSource interface {
	Shipments(ctx context.Context) ([]json.RawMessage, error)
}

type ServiceParams struct {
	Runner      *Runner
	ERP         ERPSource
	Carrier     CarrierSource
	Customers   customers.Repository
	Products    products.Repository
	Orders      orders.Repository
	Billing     billing.Repository
	Fulfillment fulfillment.Repository
	Logs        LogRepository
	Logger      *logger.Logger
}

// Service runs individual kinds or the full chain.
type Service struct {
	runner      *Runner
	erp         ERPSource
	carrier     CarrierSource
	customers   customers.Repository
	products    products.Repository
	orders      orders.Repository
	billing     billing.Repository
	fulfillment fulfillment.Repository
	logs        LogRepository
	logg        *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	switch {
	case params.Runner == nil:
		return nil, errors.New("runner is required")
	case params.Customers == nil, params.Products == nil, params.Orders == nil,
		params.Billing == nil, params.Fulfillment == nil:
		return nil, errors.New("all repositories are required")
	case params.Logger == nil:
		return nil, errors.New("logger is required")
	}
	return &Service{
		runner:      params.Runner,
		erp:         params.ERP,
		carrier:     params.Carrier,
		customers:   params.Customers,
		products:    params.Products,
		orders:      params.Orders,
		billing:     params.Billing,
		fulfillment: params.Fulfillment,
		logs:        params.Logs,
		logg:        params.Logger,
	}, nil
}

// Run executes one kind.
func (s *Service) Run(ctx context.Context, kind enums.SyncKind) (*Result, error) {
	if kind.Source() == enums.SyncSourceShipStation {
		if s.carrier == nil {
			return nil, notConfigured("shipstation")
		}
	} else if s.erp == nil {
		return nil, notConfigured("apparelmagic")
	}

	switch kind {
	case enums.SyncKindCustomers:
		return Execute(ctx, s.runner, s.customersDescriptor())
	case enums.SyncKindLocations:
		return Execute(ctx, s.runner, s.locationsDescriptor())
	case enums.SyncKindProducts:
		return Execute(ctx, s.runner, s.productsDescriptor())
	case enums.SyncKindInventory:
		return Execute(ctx, s.runner, s.inventoryDescriptor())
	case enums.SyncKindOrders:
		return Execute(ctx, s.runner, s.ordersDescriptor())
	case enums.SyncKindInvoices:
		return Execute(ctx, s.runner, s.invoicesDescriptor())
	case enums.SyncKindPickTickets:
		return Execute(ctx, s.runner, s.pickTicketsDescriptor())
	case enums.SyncKindShipments:
		return Execute(ctx, s.runner, s.shipmentsDescriptor())
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown sync kind %q", kind))
	}
}

// AllResult is the outcome of a full chain. Results holds every kind that
// produced one, failed kinds included.
type AllResult struct {
	Results []*Result `json:"results"`
	Failed  []string  `json:"failed,omitempty"`
}

// RunAll runs every kind in dependency order. A failing kind is recorded and
// the chain continues; the combined error lists every failure.
func (s *Service) RunAll(ctx context.Context) (*AllResult, error) {
	out := &AllResult{}
	var combined error
	for _, kind := range enums.SyncOrder {
		if err := ctx.Err(); err != nil {
			return out, multierr.Append(combined, err)
		}
		res, err := s.Run(ctx, kind)
		if res != nil {
			out.Results = append(out.Results, res)
		}
		if err != nil {
			out.Failed = append(out.Failed, kind.String())
			combined = multierr.Append(combined, fmt.Errorf("%s: %w", kind, err))
			s.logg.Warn(s.logg.WithField(ctx, "sync_kind", kind.String()), "sync kind failed; continuing chain")
		}
	}
	return out, combined
}

// History lists recent sync_log rows.
func (s *Service) History(ctx context.Context, kind enums.SyncKind, limit int) ([]LogEntryDTO, error) {
	if s.logs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "sync history unavailable")
	}
	rows, err := s.logs.Recent(ctx, kind, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load sync history")
	}
	return NewLogEntryDTOs(rows), nil
}

// collection binds an ERP resource to a descriptor fetch.
func (s *Service) collection(resource string) func(context.Context) ([]json.RawMessage, error) {
	return func(ctx context.Context) ([]json.RawMessage, error) {
		return s.erp.Collection(ctx, resource)
	}
}

func notConfigured(name string) error {
	return pkgerrors.New(pkgerrors.CodeDependency, name+" client is not configured")
}
