package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtypes"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

type PickTicket struct {
	ID                     uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	PickTicketID           string           `gorm:"column:pick_ticket_id;not null;uniqueIndex"`
	OrderID                *uuid.UUID       `gorm:"column:order_id;type:uuid;index"`
	CustomerID             *uuid.UUID       `gorm:"column:customer_id;type:uuid;index"`
	ApparelMagicOrderID    *string          `gorm:"column:apparel_magic_order_id"`
	ApparelMagicCustomerID *string          `gorm:"column:apparel_magic_customer_id"`
	InvoiceID              *string          `gorm:"column:invoice_id"`
	PickTicketDate         dbtypes.NullDate `gorm:"column:pick_ticket_date"`
	DateDue                dbtypes.NullDate `gorm:"column:date_due"`
	TrackingNumber         *string          `gorm:"column:tracking_number"`
	ShipVia                *string          `gorm:"column:ship_via"`
	ShipToName             *string          `gorm:"column:ship_to_name"`
	ShipToAddress1         *string          `gorm:"column:ship_to_address_1"`
	ShipToAddress2         *string          `gorm:"column:ship_to_address_2"`
	ShipToCity             *string          `gorm:"column:ship_to_city"`
	ShipToState            *string          `gorm:"column:ship_to_state"`
	ShipToZip              *string          `gorm:"column:ship_to_zip"`
	ShipToCountry          *string          `gorm:"column:ship_to_country"`
	Quantity               int              `gorm:"column:qty;not null"`
	Subtotal               decimal.Decimal  `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DiscountAmount         decimal.Decimal  `gorm:"column:discount_amount;type:numeric(12,2);not null"`
	TaxAmount              decimal.Decimal  `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	FreightAmount          decimal.Decimal  `gorm:"column:freight_amount;type:numeric(12,2);not null"`
	TotalAmount            decimal.Decimal  `gorm:"column:total_amount;type:numeric(12,2);not null"`
	IsVoid                 bool             `gorm:"column:is_void;not null"`
	HasError               bool             `gorm:"column:has_error;not null"`
	Notes                  *string          `gorm:"column:notes"`
	LastSyncedAt           *time.Time       `gorm:"column:last_synced_at"`
	CreatedAt              time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (PickTicket) TableName() string { return "pick_tickets" }

func (p *PickTicket) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (p *PickTicket) PrimaryKey() *uuid.UUID { return &p.ID }

type Shipment struct {
	ID                  uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	ShipStationID       string               `gorm:"column:shipstation_id;not null;uniqueIndex"`
	OrderID             *uuid.UUID           `gorm:"column:order_id;type:uuid;index"`
	ShipStationOrderID  *string              `gorm:"column:shipstation_order_id"`
	OrderNumber         *string              `gorm:"column:order_number"`
	TrackingNumber      *string              `gorm:"column:tracking_number"`
	CarrierCode         *string              `gorm:"column:carrier_code"`
	CarrierName         string               `gorm:"column:carrier_name;not null"`
	ServiceCode         *string              `gorm:"column:service_code"`
	ServiceName         *string              `gorm:"column:service_name"`
	Status              enums.ShipmentStatus `gorm:"column:status;not null"`
	ShipDate            *time.Time           `gorm:"column:ship_date"`
	DeliveryDate        *time.Time           `gorm:"column:delivery_date"`
	WeightOz            decimal.Decimal      `gorm:"column:weight_oz;type:numeric(12,2);not null"`
	ShipmentCost        decimal.Decimal      `gorm:"column:shipment_cost;type:numeric(12,2);not null"`
	InsuranceCost       decimal.Decimal      `gorm:"column:insurance_cost;type:numeric(12,2);not null"`
	ShipToName          *string              `gorm:"column:ship_to_name"`
	ShipToCity          *string              `gorm:"column:ship_to_city"`
	ShipToState         *string              `gorm:"column:ship_to_state"`
	ShipToZip           *string              `gorm:"column:ship_to_zip"`
	ShipToCountry       *string              `gorm:"column:ship_to_country"`
	TrackingURL         *string              `gorm:"column:tracking_url"`
	LastSyncedAt        *time.Time           `gorm:"column:last_synced_at"`
	CreatedAt           time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (Shipment) TableName() string { return "shipments" }

func (s *Shipment) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (s *Shipment) PrimaryKey() *uuid.UUID { return &s.ID }
