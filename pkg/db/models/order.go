package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtypes"
)

type Order struct {
	ID                     uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	ApparelMagicID         string           `gorm:"column:apparel_magic_id;not null;uniqueIndex"`
	CustomerID             *uuid.UUID       `gorm:"column:customer_id;type:uuid;index"`
	ApparelMagicCustomerID *string          `gorm:"column:apparel_magic_customer_id"`
	OrderNumber            string           `gorm:"column:order_number;not null;index"`
	PONumber               *string          `gorm:"column:po_number"`
	OrderStatus            string           `gorm:"column:order_status;not null"`
	OrderDate              dbtypes.NullDate `gorm:"column:order_date"`
	ShipDate               dbtypes.NullDate `gorm:"column:ship_date"`
	CancelDate             dbtypes.NullDate `gorm:"column:cancel_date"`
	Subtotal               decimal.Decimal  `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DiscountAmount         decimal.Decimal  `gorm:"column:discount_amount;type:numeric(12,2);not null"`
	ShippingAmount         decimal.Decimal  `gorm:"column:shipping_amount;type:numeric(12,2);not null"`
	TaxAmount              decimal.Decimal  `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	TotalAmount            decimal.Decimal  `gorm:"column:total_amount;type:numeric(12,2);not null"`
	ShipToName             *string          `gorm:"column:ship_to_name"`
	ShipToAddress1         *string          `gorm:"column:ship_to_address_1"`
	ShipToAddress2         *string          `gorm:"column:ship_to_address_2"`
	ShipToCity             *string          `gorm:"column:ship_to_city"`
	ShipToState            *string          `gorm:"column:ship_to_state"`
	ShipToZip              *string          `gorm:"column:ship_to_zip"`
	ShipToCountry          *string          `gorm:"column:ship_to_country"`
	ShippingMethod         *string          `gorm:"column:shipping_method"`
	TradeShow              *string          `gorm:"column:trade_show"`
	Notes                  *string          `gorm:"column:notes"`
	LastSyncedAt           *time.Time       `gorm:"column:last_synced_at"`
	CreatedAt              time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

func (o *Order) PrimaryKey() *uuid.UUID { return &o.ID }

type OrderItem struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID              uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ApparelMagicID       *string         `gorm:"column:apparel_magic_id"`
	ApparelMagicOrderID  string          `gorm:"column:apparel_magic_order_id;not null;index"`
	ProductID            *string         `gorm:"column:product_id"`
	SKUID                *string         `gorm:"column:sku_id"`
	StyleNumber          *string         `gorm:"column:style_number"`
	Color                *string         `gorm:"column:color"`
	Size                 *string         `gorm:"column:size"`
	QuantityOrdered      int             `gorm:"column:quantity_ordered;not null"`
	QuantityShipped      int             `gorm:"column:quantity_shipped;not null"`
	QuantityCancelled    int             `gorm:"column:quantity_cancelled;not null"`
	UnitPrice            decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	LineTotal            decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null"`
	LineStatus           string          `gorm:"column:line_status;not null"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
