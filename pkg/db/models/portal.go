package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtypes"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

// Portal is a customer-specific order review page addressed by UniqueLink.
// Customer and location fields are a snapshot taken at creation time.
type Portal struct {
	ID                 uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	UniqueLink         string             `gorm:"column:unique_link;not null;uniqueIndex"`
	CustomerID         *uuid.UUID         `gorm:"column:customer_id;type:uuid;index"`
	CustomerName       string             `gorm:"column:customer_name;not null"`
	CustomerEmail      *string            `gorm:"column:customer_email"`
	CustomerPhone      *string            `gorm:"column:customer_phone"`
	LocationID         *uuid.UUID         `gorm:"column:location_id;type:uuid"`
	LocationName       *string            `gorm:"column:location_name"`
	ShippingAddress1   *string            `gorm:"column:shipping_address_1"`
	ShippingAddress2   *string            `gorm:"column:shipping_address_2"`
	ShippingCity       *string            `gorm:"column:shipping_city"`
	ShippingState      *string            `gorm:"column:shipping_state"`
	ShippingPostalCode *string            `gorm:"column:shipping_postal_code"`
	ShippingCountry    string             `gorm:"column:shipping_country;not null"`
	TradeShowName      *string            `gorm:"column:trade_show_name;index"`
	ShipDate           dbtypes.NullDate   `gorm:"column:ship_date"`
	Notes              *string            `gorm:"column:notes"`
	Status             enums.PortalStatus `gorm:"column:status;not null;index"`
	IsNewCustomer      bool               `gorm:"column:is_new_customer;not null"`
	ConfirmedAt        *time.Time         `gorm:"column:confirmed_at"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Portal) TableName() string { return "portals" }

func (p *Portal) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

type PortalItem struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	PortalID     uuid.UUID        `gorm:"column:portal_id;type:uuid;not null;index"`
	ProductID    *string          `gorm:"column:product_id"`
	SKUID        *string          `gorm:"column:sku_id"`
	StyleNumber  string           `gorm:"column:style_number;not null"`
	Attr2        string           `gorm:"column:attr_2;not null"`
	Size         string           `gorm:"column:size;not null"`
	Quantity     int              `gorm:"column:quantity;not null"`
	Price        decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	DeliveryDate dbtypes.NullDate `gorm:"column:delivery_date"`
	Notes        *string          `gorm:"column:notes"`
	ImageURL     *string          `gorm:"column:image_url"`
	SortOrder    int              `gorm:"column:sort_order;not null"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (PortalItem) TableName() string { return "portal_items" }

func (i *PortalItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

type PortalAttachment struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	PortalID  uuid.UUID      `gorm:"column:portal_id;type:uuid;not null;index"`
	FileName  string         `gorm:"column:file_name;not null"`
	FileURL   string         `gorm:"column:file_url;not null"`
	ObjectKey string         `gorm:"column:object_key;not null"`
	FileType  enums.FileType `gorm:"column:file_type;not null"`
	MimeType  string         `gorm:"column:mime_type;not null"`
	FileSize  int64          `gorm:"column:file_size;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (PortalAttachment) TableName() string { return "portal_attachments" }

func (a *PortalAttachment) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
