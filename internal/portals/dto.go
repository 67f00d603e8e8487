package portals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

type ItemDTO struct {
	ID           uuid.UUID `json:"id"`
	ProductID    *string   `json:"product_id"`
	SKUID        *string   `json:"sku_id"`
	StyleNumber  string    `json:"style_number"`
	Attr2        string    `json:"attr_2"`
	Size         string    `json:"size"`
	Quantity     int       `json:"quantity"`
	Price        Money     `json:"price"`
	LineTotal    Money     `json:"line_total"`
	DeliveryDate *string   `json:"delivery_date"`
	Notes        *string   `json:"notes"`
	ImageURL     *string   `json:"image_url"`
}

type AttachmentDTO struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	FileURL   string    `json:"file_url"`
	FileType  string    `json:"file_type"`
	MimeType  string    `json:"mime_type"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}

// SummaryDTO is a portal row as listed on the admin dashboard.
type SummaryDTO struct {
	ID            uuid.UUID  `json:"id"`
	UniqueLink    string     `json:"unique_link"`
	URL           string     `json:"url"`
	CustomerID    *uuid.UUID `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail *string    `json:"customer_email"`
	CustomerPhone *string    `json:"customer_phone"`
	TradeShowName *string    `json:"trade_show_name"`
	ShipDate      *string    `json:"ship_date"`
	Status        string     `json:"status"`
	IsNewCustomer bool       `json:"is_new_customer"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DetailDTO is everything the public portal page renders.
type DetailDTO struct {
	SummaryDTO
	LocationID         *uuid.UUID      `json:"location_id"`
	LocationName       *string         `json:"location_name"`
	ShippingAddress1   *string         `json:"shipping_address_1"`
	ShippingAddress2   *string         `json:"shipping_address_2"`
	ShippingCity       *string         `json:"shipping_city"`
	ShippingState      *string         `json:"shipping_state"`
	ShippingPostalCode *string         `json:"shipping_postal_code"`
	ShippingCountry    string          `json:"shipping_country"`
	Notes              *string         `json:"notes"`
	ConfirmedAt        *time.Time      `json:"confirmed_at"`
	Items              []ItemDTO       `json:"items"`
	Files              []AttachmentDTO `json:"files"`
	Groups             []ProductGroup  `json:"groups"`
	GrandTotal         Money           `json:"grand_total"`
}

type ListResult struct {
	Portals    []SummaryDTO `json:"portals"`
	Count      int          `json:"count"`
	TradeShows []string     `json:"trade_shows"`
}

func newSummaryDTO(p models.Portal, url string) SummaryDTO {
	return SummaryDTO{
		ID:            p.ID,
		UniqueLink:    p.UniqueLink,
		URL:           url,
		CustomerID:    p.CustomerID,
		CustomerName:  p.CustomerName,
		CustomerEmail: p.CustomerEmail,
		CustomerPhone: p.CustomerPhone,
		TradeShowName: p.TradeShowName,
		ShipDate:      p.ShipDate.Ptr(),
		Status:        p.Status.String(),
		IsNewCustomer: p.IsNewCustomer,
		CreatedAt:     p.CreatedAt,
	}
}

func newItemDTOs(rows []models.PortalItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ItemDTO{
			ID:           r.ID,
			ProductID:    r.ProductID,
			SKUID:        r.SKUID,
			StyleNumber:  r.StyleNumber,
			Attr2:        r.Attr2,
			Size:         r.Size,
			Quantity:     r.Quantity,
			Price:        NewMoney(r.Price),
			LineTotal:    NewMoney(r.Price.Mul(decimal.NewFromInt(int64(r.Quantity)))),
			DeliveryDate: r.DeliveryDate.Ptr(),
			Notes:        r.Notes,
			ImageURL:     r.ImageURL,
		})
	}
	return out
}

func newAttachmentDTO(a models.PortalAttachment) AttachmentDTO {
	return AttachmentDTO{
		ID:        a.ID,
		FileName:  a.FileName,
		FileURL:   a.FileURL,
		FileType:  a.FileType.String(),
		MimeType:  a.MimeType,
		FileSize:  a.FileSize,
		CreatedAt: a.CreatedAt,
	}
}
