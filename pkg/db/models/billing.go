package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtypes"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

type Invoice struct {
	ID                     uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	ApparelMagicID         string              `gorm:"column:apparel_magic_id;not null;uniqueIndex"`
	OrderID                *uuid.UUID          `gorm:"column:order_id;type:uuid;index"`
	CustomerID             *uuid.UUID          `gorm:"column:customer_id;type:uuid;index"`
	ApparelMagicOrderID    *string             `gorm:"column:apparel_magic_order_id"`
	ApparelMagicCustomerID *string             `gorm:"column:apparel_magic_customer_id"`
	InvoiceNumber          string              `gorm:"column:invoice_number;not null"`
	InvoiceDate            dbtypes.NullDate    `gorm:"column:invoice_date"`
	DueDate                dbtypes.NullDate    `gorm:"column:due_date"`
	Subtotal               decimal.Decimal     `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DiscountAmount         decimal.Decimal     `gorm:"column:discount_amount;type:numeric(12,2);not null"`
	ShippingAmount         decimal.Decimal     `gorm:"column:shipping_amount;type:numeric(12,2);not null"`
	TaxAmount              decimal.Decimal     `gorm:"column:tax_amount;type:numeric(12,2);not null"`
	TotalAmount            decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null"`
	AmountPaid             decimal.Decimal     `gorm:"column:amount_paid;type:numeric(12,2);not null"`
	BalanceDue             decimal.Decimal     `gorm:"column:balance_due;type:numeric(12,2);not null"`
	PaymentStatus          enums.PaymentStatus `gorm:"column:payment_status;not null"`
	Notes                  *string             `gorm:"column:notes"`
	LastSyncedAt           *time.Time          `gorm:"column:last_synced_at"`
	CreatedAt              time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Invoice) TableName() string { return "invoices" }

func (i *Invoice) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

func (i *Invoice) PrimaryKey() *uuid.UUID { return &i.ID }
