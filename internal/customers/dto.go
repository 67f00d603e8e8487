package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

type CustomerDTO struct {
	ID            uuid.UUID  `json:"id"`
	AMCustomerID  *string    `json:"am_customer_id"`
	CustomerName  string     `json:"customer_name"`
	AccountNumber *string    `json:"account_number"`
	Email         *string    `json:"email"`
	Phone         *string    `json:"phone"`
	Address1      *string    `json:"address_1"`
	Address2      *string    `json:"address_2"`
	City          *string    `json:"city"`
	State         *string    `json:"state"`
	PostalCode    *string    `json:"postal_code"`
	Country       *string    `json:"country"`
	Status        *string    `json:"status"`
	Category      *string    `json:"category"`
	PriceGroup    *string    `json:"price_group"`
	IsActive      bool       `json:"is_active"`
	IsLocalOnly   bool       `json:"is_local_only"`
	LastSyncedAt  *time.Time `json:"last_synced_at"`
}

type LocationDTO struct {
	ID               uuid.UUID  `json:"id"`
	AMLocationID     string     `json:"am_location_id"`
	CustomerID       *uuid.UUID `json:"customer_id"`
	AMCustomerID     *string    `json:"am_customer_id"`
	LocationName     string     `json:"location_name"`
	Address1         *string    `json:"address_1"`
	Address2         *string    `json:"address_2"`
	City             *string    `json:"city"`
	State            *string    `json:"state"`
	PostalCode       *string    `json:"postal_code"`
	Country          *string    `json:"country"`
	Phone            *string    `json:"phone"`
	Email            *string    `json:"email"`
	StoreNumber      *string    `json:"store_number"`
	DCReference      *string    `json:"dc_reference"`
	DepartmentNumber *string    `json:"department_number"`
	IsMainLocation   bool       `json:"is_main_location"`
}

func NewCustomerDTO(c models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:            c.ID,
		AMCustomerID:  c.AMCustomerID,
		CustomerName:  c.CustomerName,
		AccountNumber: c.AccountNumber,
		Email:         c.Email,
		Phone:         c.Phone,
		Address1:      c.Address1,
		Address2:      c.Address2,
		City:          c.City,
		State:         c.State,
		PostalCode:    c.PostalCode,
		Country:       c.Country,
		Status:        c.Status,
		Category:      c.Category,
		PriceGroup:    c.PriceGroup,
		IsActive:      c.IsActive,
		IsLocalOnly:   c.IsLocalOnly,
		LastSyncedAt:  c.LastSyncedAt,
	}
}

func NewCustomerDTOs(rows []models.Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, NewCustomerDTO(c))
	}
	return out
}

func NewLocationDTOs(rows []models.CustomerLocation) []LocationDTO {
	out := make([]LocationDTO, 0, len(rows))
	for _, l := range rows {
		out = append(out, LocationDTO{
			ID:               l.ID,
			AMLocationID:     l.AMLocationID,
			CustomerID:       l.CustomerID,
			AMCustomerID:     l.AMCustomerID,
			LocationName:     l.LocationName,
			Address1:         l.Address1,
			Address2:         l.Address2,
			City:             l.City,
			State:            l.State,
			PostalCode:       l.PostalCode,
			Country:          l.Country,
			Phone:            l.Phone,
			Email:            l.Email,
			StoreNumber:      l.StoreNumber,
			DCReference:      l.DCReference,
			DepartmentNumber: l.DepartmentNumber,
			IsMainLocation:   l.IsMainLocation,
		})
	}
	return out
}
