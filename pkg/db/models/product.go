package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog style mirrored from the ERP. Images and SKUs join on
// the ERP product id rather than the local primary key.
type Product struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProductID    string          `gorm:"column:product_id;not null;uniqueIndex"`
	StyleNumber  string          `gorm:"column:style_number;not null;index"`
	Description  *string         `gorm:"column:description"`
	Category     *string         `gorm:"column:category"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	Content      *string         `gorm:"column:content"`
	Origin       *string         `gorm:"column:origin"`
	LastSyncedAt *time.Time      `gorm:"column:last_synced_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (p *Product) PrimaryKey() *uuid.UUID { return &p.ID }

type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID string    `gorm:"column:product_id;not null;index"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ProductImage) TableName() string { return "product_images" }

func (i *ProductImage) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// ProductSKU is a size and color variant. Product sync replaces the catalog
// columns; inventory sync only touches the quantity and costing columns.
type ProductSKU struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SKUID         string          `gorm:"column:sku_id;not null;uniqueIndex"`
	ProductID     string          `gorm:"column:product_id;not null;index"`
	StyleNumber   string          `gorm:"column:style_number;not null"`
	Attr2         *string         `gorm:"column:attr_2"`
	Size          *string         `gorm:"column:size"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	QtyAvailSell  int             `gorm:"column:qty_avail_sell;not null;default:0"`
	QtyInventory  int             `gorm:"column:qty_inventory;not null;default:0"`
	QtyAlloc      int             `gorm:"column:qty_alloc;not null;default:0"`
	QtyAvailAlloc int             `gorm:"column:qty_avail_alloc;not null;default:0"`
	QtyOpenPO     int             `gorm:"column:qty_open_po;not null;default:0"`
	QtyOpenSales  int             `gorm:"column:qty_open_sales;not null;default:0"`
	QtyPicked     int             `gorm:"column:qty_picked;not null;default:0"`
	Cost          decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null;default:0"`
	Location      *string         `gorm:"column:location"`
	UPC           *string         `gorm:"column:upc"`
	IsActive      bool            `gorm:"column:is_active;not null"`
	LastSyncedAt  *time.Time      `gorm:"column:last_synced_at"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductSKU) TableName() string { return "product_skus" }

func (s *ProductSKU) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (s *ProductSKU) PrimaryKey() *uuid.UUID { return &s.ID }
