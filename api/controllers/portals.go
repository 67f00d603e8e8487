package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/advanceapparels/tradeshow-portal/api/responses"
	"github.com/advanceapparels/tradeshow-portal/api/validators"
	"github.com/advanceapparels/tradeshow-portal/internal/portals"
	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
)

// multipart overhead allowed on top of the file limit.
const multipartSlack = 1 << 20

// PortalService is the portal read/write surface.
type PortalService interface {
	Create(ctx context.Context, in portals.CreateInput) (*portals.SummaryDTO, error)
	List(ctx context.Context, f portals.ListFilter) (*portals.ListResult, error)
	GetByLink(ctx context.Context, link string) (*portals.DetailDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	AdminUpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Confirm(ctx context.Context, link string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceItems(ctx context.Context, id uuid.UUID, items []portals.ItemInput) ([]portals.ItemDTO, error)
	Upload(ctx context.Context, in portals.UploadInput) (*portals.AttachmentDTO, error)
}

type createPortalRequest struct {
	CustomerID    string              `json:"customerId" validate:"omitempty,uuid"`
	CustomerName  string              `json:"customerName" validate:"max=255"`
	CustomerEmail string              `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone string              `json:"customerPhone"`
	LocationID    string              `json:"locationId" validate:"omitempty,uuid"`
	LocationName  string              `json:"locationName"`
	Address1      string              `json:"address1"`
	Address2      string              `json:"address2"`
	City          string              `json:"city"`
	State         string              `json:"state"`
	PostalCode    string              `json:"postalCode"`
	Country       string              `json:"country"`
	TradeShowName string              `json:"tradeShowName"`
	ShipDate      string              `json:"shipDate"`
	Notes         string              `json:"notes"`
	IsNewCustomer bool                `json:"isNewCustomer"`
	Items         []portalItemRequest `json:"items" validate:"omitempty,dive"`
}

type portalItemRequest struct {
	ProductID    string          `json:"product_id"`
	SKUID        string          `json:"sku_id"`
	StyleNumber  string          `json:"style_number" validate:"required"`
	Attr2        string          `json:"attr_2"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	Price        decimal.Decimal `json:"price"`
	DeliveryDate string          `json:"delivery_date"`
	Notes        string          `json:"notes"`
	ImageURL     string          `json:"image_url"`
}

type portalStatusRequest struct {
	PortalID string `json:"portalId" validate:"required,uuid"`
	Status   string `json:"status" validate:"required"`
}

type portalIDRequest struct {
	PortalID string `json:"portalId" validate:"required,uuid"`
}

type replaceItemsRequest struct {
	Items []portalItemRequest `json:"items" validate:"dive"`
}

func (r createPortalRequest) toInput() portals.CreateInput {
	return portals.CreateInput{
		CustomerID:    optionalUUID(r.CustomerID),
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		LocationID:    optionalUUID(r.LocationID),
		LocationName:  r.LocationName,
		Address1:      r.Address1,
		Address2:      r.Address2,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		TradeShowName: r.TradeShowName,
		ShipDate:      r.ShipDate,
		Notes:         r.Notes,
		IsNewCustomer: r.IsNewCustomer,
		Items:         toItemInputs(r.Items),
	}
}

func toItemInputs(rows []portalItemRequest) []portals.ItemInput {
	out := make([]portals.ItemInput, 0, len(rows))
	for _, it := range rows {
		out = append(out, portals.ItemInput{
			ProductID:    it.ProductID,
			SKUID:        it.SKUID,
			StyleNumber:  it.StyleNumber,
			Attr2:        it.Attr2,
			Size:         it.Size,
			Quantity:     it.Quantity,
			Price:        it.Price,
			DeliveryDate: it.DeliveryDate,
			Notes:        it.Notes,
			ImageURL:     it.ImageURL,
		})
	}
	return out
}

// optionalUUID is only called after the validate tag accepted the value.
func optionalUUID(raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func PortalCreate(svc PortalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPortalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		portal, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, portal)
	}
}

func PortalList(svc PortalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q := r.URL.Query()
		result, err := svc.List(r.Context(), portals.ListFilter{
			Status:       q.Get("status"),
			TradeShow:    q.Get("tradeShow"),
			CustomerType: q.Get("customerType"),
			SortBy:       q.Get("sortBy"),
			SortOrder:    q.Get("sortOrder"),
			Limit:        limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func PortalByLink(svc PortalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portal, err := svc.GetByLink(r.Context(), chi.URLParam(r, "link"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, portal)
	}
}

func PortalConfirm(svc PortalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Confirm(r.Context(), chi.URLParam(r, "link")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "confirmed"})
	}
}

// PortalUpdateStatus serves both the portal surface and the admin dashboard;
// admin restricts the statuses that may be set.
func PortalUpdateStatus(svc PortalService, admin bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload portalStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParseUUID("portalId", payload.PortalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		update := svc.UpdateStatus
		if admin {
			update = svc.AdminUpdateStatus
		}
		if err := update(r.Context(), id, payload.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"portalId": id.String(), "status": strings.ToLower(strings.TrimSpace(payload.Status))})
	}
}

func PortalDelete(svc PortalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload portalIDRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParseUUID("portalId", payload.PortalID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"portalId": id.String(), "status": "deleted"})
	}
}

func PortalReplaceItems(svc PortalService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUID("portalId", chi.URLParam(r, "portalId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload replaceItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.ReplaceItems(r.Context(), id, toItemInputs(payload.Items))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items, "count": len(items)})
	}
}

// PortalUpload accepts multipart form data with "file" and "portalId".
func PortalUpload(svc PortalService, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartSlack)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				err = pkgerrors.New(pkgerrors.CodeTooLarge, "file exceeds the upload limit").
					WithDetails(map[string]any{"max_bytes": maxBytes})
			case errors.Is(err, http.ErrMissingFile):
				err = pkgerrors.New(pkgerrors.CodeValidation, "file is required")
			default:
				err = pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer file.Close()
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		id, err := validators.ParseUUID("portalId", r.FormValue("portalId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		attachment, err := svc.Upload(r.Context(), portals.UploadInput{
			PortalID:    id,
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, attachment)
	}
}
