package portals

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/internal/customers"
	"github.com/advanceapparels/tradeshow-portal/internal/fieldmap"
	"github.com/advanceapparels/tradeshow-portal/pkg/db"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtypes"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
)

const (
	defaultCountry   = "USA"
	defaultListLimit = 100
	maxListLimit     = 500
	portalPathPrefix = "/portal/"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	Repo      Repository
	Customers customers.Repository
	Tx        txRunner
	Storage   ObjectStore
	Logger    *logger.Logger
	// PublicURL prefixes portal links; empty yields site-relative URLs.
	PublicURL      string
	MaxUploadBytes int64
	Links          LinkGenerator
	Random         io.Reader
	Now            func() time.Time
}

// Service implements the admin and public portal operations.
type Service struct {
	repo      Repository
	customers customers.Repository
	tx        txRunner
	storage   ObjectStore
	logg      *logger.Logger
	publicURL string
	maxUpload int64
	links     LinkGenerator
	random    io.Reader
	now       func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	switch {
	case params.Repo == nil:
		return nil, errors.New("portal repository is required")
	case params.Customers == nil:
		return nil, errors.New("customers repository is required")
	case params.Tx == nil:
		return nil, errors.New("transaction runner is required")
	case params.Logger == nil:
		return nil, errors.New("logger is required")
	}
	svc := &Service{
		repo:      params.Repo,
		customers: params.Customers,
		tx:        params.Tx,
		storage:   params.Storage,
		logg:      params.Logger,
		publicURL: strings.TrimRight(params.PublicURL, "/"),
		maxUpload: params.MaxUploadBytes,
		links:     params.Links,
		random:    params.Random,
		now:       params.Now,
	}
	if svc.links == nil {
		svc.links = DefaultLinkGenerator
	}
	if svc.random == nil {
		svc.random = rand.Reader
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

// CreateInput is the admin wizard payload. Empty strings are stored as NULL.
type CreateInput struct {
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	LocationID    *uuid.UUID
	LocationName  string
	Address1      string
	Address2      string
	City          string
	State         string
	PostalCode    string
	Country       string
	TradeShowName string
	ShipDate      string
	Notes         string
	IsNewCustomer bool
	Items         []ItemInput
}

type ItemInput struct {
	ProductID    string
	SKUID        string
	StyleNumber  string
	Attr2        string
	Size         string
	Quantity     int
	Price        decimal.Decimal
	DeliveryDate string
	Notes        string
	ImageURL     string
}

// Create opens a portal. A buyer unknown to the ERP is recorded as a
// local-only customer in the same transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (*SummaryDTO, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	shipDate, err := parseDate("ship_date", in.ShipDate)
	if err != nil {
		return nil, err
	}
	items, err := buildItems(in.Items)
	if err != nil {
		return nil, err
	}
	country := fieldmap.TextOr(in.Country, defaultCountry)

	var portal *models.Portal
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		portalRepo := s.repo.WithTx(tx)
		customerRepo := s.customers.WithTx(tx)

		link, err := NewUniqueLink(ctx, portalRepo.LinkExists, s.links)
		if err != nil {
			return err
		}

		customerID := in.CustomerID
		switch {
		case customerID != nil:
			if _, err := customerRepo.FindByID(ctx, *customerID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeValidation, "customer not found").
						WithDetails(map[string]any{"customer_id": customerID.String()})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load customer")
			}
		case in.IsNewCustomer:
			created, err := customerRepo.CreateLocal(ctx, &models.Customer{
				CustomerName: name,
				Email:        fieldmap.Text(in.CustomerEmail),
				Phone:        fieldmap.Text(in.CustomerPhone),
				Address1:     fieldmap.Text(in.Address1),
				Address2:     fieldmap.Text(in.Address2),
				City:         fieldmap.Text(in.City),
				State:        fieldmap.Text(in.State),
				PostalCode:   fieldmap.Text(in.PostalCode),
				Country:      &country,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create customer")
			}
			customerID = &created.ID
		}

		portal = &models.Portal{
			UniqueLink:         link,
			CustomerID:         customerID,
			CustomerName:       name,
			CustomerEmail:      fieldmap.Text(in.CustomerEmail),
			CustomerPhone:      fieldmap.Text(in.CustomerPhone),
			LocationID:         in.LocationID,
			LocationName:       fieldmap.Text(in.LocationName),
			ShippingAddress1:   fieldmap.Text(in.Address1),
			ShippingAddress2:   fieldmap.Text(in.Address2),
			ShippingCity:       fieldmap.Text(in.City),
			ShippingState:      fieldmap.Text(in.State),
			ShippingPostalCode: fieldmap.Text(in.PostalCode),
			ShippingCountry:    country,
			TradeShowName:      fieldmap.Text(in.TradeShowName),
			ShipDate:           shipDate,
			Notes:              fieldmap.Text(in.Notes),
			Status:             enums.PortalStatusActive,
			IsNewCustomer:      in.IsNewCustomer,
		}
		if err := portalRepo.Create(ctx, portal); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "portal link already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create portal")
		}
		if len(items) > 0 {
			if err := portalRepo.ReplaceItems(ctx, portal.ID, items); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to store portal items")
			}
		}
		return nil
	})
	if err != nil {
		return nil, asTyped(err, "failed to create portal")
	}

	logCtx := s.logg.WithFields(s.logg.WithPortalID(ctx, portal.ID.String()), map[string]any{
		"unique_link":     portal.UniqueLink,
		"is_new_customer": portal.IsNewCustomer,
		"items":           len(items),
	})
	s.logg.Info(logCtx, "portal created")

	dto := newSummaryDTO(*portal, s.portalURL(portal.UniqueLink))
	return &dto, nil
}

// ListFilter mirrors the dashboard query string. "all" and "" disable the
// status and trade show filters.
type ListFilter struct {
	Status       string
	TradeShow    string
	CustomerType string
	SortBy       string
	SortOrder    string
	Limit        int
}

func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	q := listQuery{sortColumn: "created_at", limit: f.Limit}
	if q.limit <= 0 {
		q.limit = defaultListLimit
	}
	if q.limit > maxListLimit {
		q.limit = maxListLimit
	}

	if raw := strings.TrimSpace(f.Status); raw != "" && raw != "all" {
		status, err := enums.ParsePortalStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		q.status = &status
	}
	if ts := strings.TrimSpace(f.TradeShow); ts != "all" {
		q.tradeShow = ts
	}
	switch f.CustomerType {
	case "new":
		v := true
		q.isNew = &v
	case "existing":
		v := false
		q.isNew = &v
	}
	switch f.SortBy {
	case "ship_date":
		q.sortColumn = "ship_date"
		q.nullsLast = true
	case "customer_name":
		q.sortColumn = "customer_name"
	}
	q.ascending = strings.EqualFold(f.SortOrder, "asc")

	rows, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list portals")
	}
	shows, err := s.repo.TradeShows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list trade shows")
	}

	out := &ListResult{Portals: make([]SummaryDTO, 0, len(rows)), TradeShows: shows}
	for _, p := range rows {
		out.Portals = append(out.Portals, newSummaryDTO(p, s.portalURL(p.UniqueLink)))
	}
	out.Count = len(out.Portals)
	if out.TradeShows == nil {
		out.TradeShows = []string{}
	}
	return out, nil
}

// GetByLink loads the public portal view.
func (s *Service) GetByLink(ctx context.Context, link string) (*DetailDTO, error) {
	portal, err := s.repo.FindByLink(ctx, strings.TrimSpace(link))
	if err != nil {
		return nil, notFoundOr(err, "portal not found")
	}
	items, err := s.repo.Items(ctx, portal.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load portal items")
	}
	attachments, err := s.repo.Attachments(ctx, portal.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load portal files")
	}

	itemDTOs := newItemDTOs(items)
	groups, total := BuildGroups(itemDTOs)
	if groups == nil {
		groups = []ProductGroup{}
	}
	files := make([]AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		files = append(files, newAttachmentDTO(a))
	}

	return &DetailDTO{
		SummaryDTO:         newSummaryDTO(*portal, s.portalURL(portal.UniqueLink)),
		LocationID:         portal.LocationID,
		LocationName:       portal.LocationName,
		ShippingAddress1:   portal.ShippingAddress1,
		ShippingAddress2:   portal.ShippingAddress2,
		ShippingCity:       portal.ShippingCity,
		ShippingState:      portal.ShippingState,
		ShippingPostalCode: portal.ShippingPostalCode,
		ShippingCountry:    portal.ShippingCountry,
		Notes:              portal.Notes,
		ConfirmedAt:        portal.ConfirmedAt,
		Items:              itemDTOs,
		Files:              files,
		Groups:             groups,
		GrandTotal:         total,
	}, nil
}

// UpdateStatus accepts any lifecycle status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) error {
	status, err := parseStatus(raw)
	if err != nil {
		return err
	}
	return s.setStatus(ctx, id, status)
}

// AdminUpdateStatus is limited to the statuses an admin may set by hand.
func (s *Service) AdminUpdateStatus(ctx context.Context, id uuid.UUID, raw string) error {
	status, err := parseStatus(raw)
	if err != nil {
		return err
	}
	if !status.AdminSettable() {
		return pkgerrors.New(pkgerrors.CodeValidation, "status cannot be set from the admin dashboard").
			WithDetails(map[string]any{"status": status.String()})
	}
	return s.setStatus(ctx, id, status)
}

// Confirm marks the portal behind link as confirmed by the customer.
func (s *Service) Confirm(ctx context.Context, link string) error {
	portal, err := s.repo.FindByLink(ctx, strings.TrimSpace(link))
	if err != nil {
		return notFoundOr(err, "portal not found")
	}
	return s.setStatus(ctx, portal.ID, enums.PortalStatusConfirmed)
}

func (s *Service) setStatus(ctx context.Context, id uuid.UUID, status enums.PortalStatus) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "portal id is required")
	}
	var confirmedAt *time.Time
	if status == enums.PortalStatusConfirmed {
		now := s.now().UTC()
		confirmedAt = &now
	}
	found, err := s.repo.UpdateStatus(ctx, id, status, confirmedAt)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update portal status")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "portal not found")
	}
	logCtx := s.logg.WithField(s.logg.WithPortalID(ctx, id.String()), "status", status.String())
	s.logg.Info(logCtx, "portal status updated")
	return nil
}

// Delete removes the portal and its child rows. Stored objects are removed
// afterwards on a best-effort basis.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "portal id is required")
	}
	attachments, err := s.repo.Attachments(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load portal files")
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete portal")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "portal not found")
	}

	logCtx := s.logg.WithPortalID(ctx, id.String())
	if s.storage != nil {
		for _, a := range attachments {
			if err := s.storage.Delete(ctx, "", a.ObjectKey); err != nil {
				s.logg.Warn(s.logg.WithField(logCtx, "object_key", a.ObjectKey), "failed to delete portal file")
			}
		}
	}
	s.logg.Info(logCtx, "portal deleted")
	return nil
}

// ReplaceItems swaps the portal's line items and returns the stored list.
func (s *Service) ReplaceItems(ctx context.Context, id uuid.UUID, in []ItemInput) ([]ItemDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "portal id is required")
	}
	items, err := buildItems(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "portal not found")
	}
	if err := s.repo.ReplaceItems(ctx, id, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to store portal items")
	}
	stored, err := s.repo.Items(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load portal items")
	}
	return newItemDTOs(stored), nil
}

func (s *Service) portalURL(link string) string {
	return s.publicURL + portalPathPrefix + link
}

func buildItems(in []ItemInput) ([]models.PortalItem, error) {
	out := make([]models.PortalItem, 0, len(in))
	for i, it := range in {
		style := strings.TrimSpace(it.StyleNumber)
		if style == "" {
			return nil, itemError(i, "style_number is required")
		}
		if it.Quantity < 0 {
			return nil, itemError(i, "quantity must not be negative")
		}
		if it.Price.IsNegative() {
			return nil, itemError(i, "price must not be negative")
		}
		delivery, err := parseDate("delivery_date", it.DeliveryDate)
		if err != nil {
			return nil, err
		}
		out = append(out, models.PortalItem{
			ProductID:    fieldmap.Text(it.ProductID),
			SKUID:        fieldmap.Text(it.SKUID),
			StyleNumber:  style,
			Attr2:        strings.TrimSpace(it.Attr2),
			Size:         strings.TrimSpace(it.Size),
			Quantity:     it.Quantity,
			Price:        it.Price,
			DeliveryDate: delivery,
			Notes:        fieldmap.Text(it.Notes),
			ImageURL:     fieldmap.Text(it.ImageURL),
		})
	}
	return out, nil
}

func itemError(index int, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: %s", index, msg)).
		WithDetails(map[string]any{"index": index})
}

// parseDate accepts YYYY-MM-DD or M/D/YYYY. Empty input is a NULL date.
func parseDate(field, raw string) (dbtypes.NullDate, error) {
	normalized := fieldmap.Date(raw)
	if normalized == nil {
		return dbtypes.NullDate{}, nil
	}
	if _, err := time.Parse(time.DateOnly, *normalized); err != nil {
		return dbtypes.NullDate{}, pkgerrors.New(pkgerrors.CodeValidation, field+" must be a date").
			WithDetails(map[string]any{"field": field, "value": raw})
	}
	return dbtypes.NewNullDate(normalized), nil
}

func parseStatus(raw string) (enums.PortalStatus, error) {
	status, err := enums.ParsePortalStatus(strings.TrimSpace(raw))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}
	return status, nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}

func asTyped(err error, msg string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
