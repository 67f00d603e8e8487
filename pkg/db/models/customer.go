package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer mirrors an ERP customer, or a local-only customer created while
// opening a portal for a buyer the ERP does not know yet.
type Customer struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	AMCustomerID  *string    `gorm:"column:am_customer_id;uniqueIndex"`
	CustomerName  string     `gorm:"column:customer_name;not null"`
	AccountNumber *string    `gorm:"column:account_number"`
	Email         *string    `gorm:"column:email"`
	Phone         *string    `gorm:"column:phone"`
	Address1      *string    `gorm:"column:address_1"`
	Address2      *string    `gorm:"column:address_2"`
	City          *string    `gorm:"column:city"`
	State         *string    `gorm:"column:state"`
	PostalCode    *string    `gorm:"column:postal_code"`
	Country       *string    `gorm:"column:country"`
	CreditLimit   *string    `gorm:"column:credit_limit"`
	Status        *string    `gorm:"column:status"`
	Category      *string    `gorm:"column:category"`
	TermsID       *string    `gorm:"column:terms_id"`
	DivisionID    *string    `gorm:"column:division_id"`
	PriceGroup    *string    `gorm:"column:price_group"`
	Notes         *string    `gorm:"column:notes"`
	IsActive      bool       `gorm:"column:is_active;not null"`
	IsLocalOnly   bool       `gorm:"column:is_local_only;not null;default:false"`
	LastSyncedAt  *time.Time `gorm:"column:last_synced_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (c *Customer) PrimaryKey() *uuid.UUID { return &c.ID }

// CustomerLocation is an ERP ship-to address for a customer.
type CustomerLocation struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	AMLocationID     string     `gorm:"column:am_location_id;not null;uniqueIndex"`
	CustomerID       *uuid.UUID `gorm:"column:customer_id;type:uuid;index"`
	AMCustomerID     *string    `gorm:"column:am_customer_id;index"`
	LocationName     string     `gorm:"column:location_name;not null"`
	Address1         *string    `gorm:"column:address_1"`
	Address2         *string    `gorm:"column:address_2"`
	City             *string    `gorm:"column:city"`
	State            *string    `gorm:"column:state"`
	PostalCode       *string    `gorm:"column:postal_code"`
	Country          *string    `gorm:"column:country"`
	Phone            *string    `gorm:"column:phone"`
	Email            *string    `gorm:"column:email"`
	StoreNumber      *string    `gorm:"column:store_number"`
	DCReference      *string    `gorm:"column:dc_reference"`
	DepartmentNumber *string    `gorm:"column:department_number"`
	IsMainLocation   bool       `gorm:"column:is_main_location;not null;default:false"`
	LastSyncedAt     *time.Time `gorm:"column:last_synced_at"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (CustomerLocation) TableName() string { return "customer_locations" }

func (l *CustomerLocation) BeforeCreate(*gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

func (l *CustomerLocation) PrimaryKey() *uuid.UUID { return &l.ID }
