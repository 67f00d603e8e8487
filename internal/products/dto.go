package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

// ImageDTO keeps the {img} shape the order builder already consumes.
type ImageDTO struct {
	Img string `json:"img"`
}

type ProductDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    string          `json:"product_id"`
	StyleNumber  string          `json:"style_number"`
	Description  *string         `json:"description"`
	Category     *string         `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Content      *string         `json:"content"`
	Origin       *string         `json:"origin"`
	Images       []ImageDTO      `json:"images"`
	LastSyncedAt *time.Time      `json:"last_synced_at"`
}

type SKUDTO struct {
	ID           uuid.UUID       `json:"id"`
	SKUID        string          `json:"sku_id"`
	ProductID    string          `json:"product_id"`
	StyleNumber  string          `json:"style_number"`
	Attr2        *string         `json:"attr_2"`
	Size         *string         `json:"size"`
	Price        decimal.Decimal `json:"price"`
	QtyAvailSell int             `json:"qty_avail_sell"`
	QtyInventory int             `json:"qty_inventory"`
	QtyOpenPO    int             `json:"qty_open_po"`
	UPC          *string         `json:"upc"`
	IsActive     bool            `json:"is_active"`
}

func NewProductDTO(p models.Product, images []models.ProductImage) ProductDTO {
	imgs := make([]ImageDTO, 0, len(images))
	for _, img := range images {
		imgs = append(imgs, ImageDTO{Img: img.ImageURL})
	}
	return ProductDTO{
		ID:           p.ID,
		ProductID:    p.ProductID,
		StyleNumber:  p.StyleNumber,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price,
		Content:      p.Content,
		Origin:       p.Origin,
		Images:       imgs,
		LastSyncedAt: p.LastSyncedAt,
	}
}

func NewSKUDTOs(rows []models.ProductSKU) []SKUDTO {
	out := make([]SKUDTO, 0, len(rows))
	for _, s := range rows {
		out = append(out, SKUDTO{
			ID:           s.ID,
			SKUID:        s.SKUID,
			ProductID:    s.ProductID,
			StyleNumber:  s.StyleNumber,
			Attr2:        s.Attr2,
			Size:         s.Size,
			Price:        s.Price,
			QtyAvailSell: s.QtyAvailSell,
			QtyInventory: s.QtyInventory,
			QtyOpenPO:    s.QtyOpenPO,
			UPC:          s.UPC,
			IsActive:     s.IsActive,
		})
	}
	return out
}
