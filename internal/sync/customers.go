package sync

import (
	"context"
	"errors"

	"github.com/advanceapparels/tradeshow-portal/internal/apparelmagic"
	"github.com/advanceapparels/tradeshow-portal/internal/fieldmap"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

var errMissingKey = errors.New("record has no identifier")

func outcomeOf(created bool) Outcome {
	if created {
		return Created
	}
	return Updated
}

func (s *Service) customersDescriptor() Descriptor[apparelmagic.Customer] {
	return Descriptor[apparelmagic.Customer]{
		Kind:    enums.SyncKindCustomers,
		Fetch:   s.collection(apparelmagic.ResourceCustomers),
		IDField: "customer_id",
		Key:     func(c apparelmagic.Customer) string { return c.CustomerID.String() },
		Apply: func(ctx context.Context, env *Env, c apparelmagic.Customer) (Outcome, error) {
			model := mapCustomer(c, env)
			if model.AMCustomerID == nil {
				return Skipped, errMissingKey
			}
			_, created, err := s.customers.UpsertByExternalID(ctx, model)
			return outcomeOf(created), err
		},
	}
}

func mapCustomer(c apparelmagic.Customer, env *Env) *models.Customer {
	synced := env.SyncedAt
	return &models.Customer{
		AMCustomerID:  fieldmap.Text(c.CustomerID.String()),
		CustomerName:  fieldmap.TextOr(c.CustomerName.String(), "Unknown"),
		AccountNumber: fieldmap.Text(c.AccountNumber.String()),
		Email:         fieldmap.Text(c.Email.String()),
		Phone:         fieldmap.Text(c.Phone.String()),
		Address1:      fieldmap.Text(c.Address1.String()),
		Address2:      fieldmap.Text(c.Address2.String()),
		City:          fieldmap.Text(c.City.String()),
		State:         fieldmap.Text(c.State.String()),
		PostalCode:    fieldmap.Text(c.PostalCode.String()),
		Country:       fieldmap.Text(c.Country.String()),
		CreditLimit:   fieldmap.Text(c.CreditLimit.String()),
		Status:        fieldmap.Text(c.Status.String()),
		Category:      fieldmap.Text(c.Category.String()),
		TermsID:       fieldmap.Text(c.TermsID.String()),
		DivisionID:    fieldmap.Text(c.DivisionID.String()),
		PriceGroup:    fieldmap.Text(c.PriceGroup.String()),
		Notes:         fieldmap.Text(c.Notes.String()),
		IsActive:      fieldmap.Flag(c.IsActive.String()),
		LastSyncedAt:  &synced,
	}
}

func (s *Service) locationsDescriptor() Descriptor[apparelmagic.Location] {
	return Descriptor[apparelmagic.Location]{
		Kind:    enums.SyncKindLocations,
		Fetch:   s.collection(apparelmagic.ResourceLocations),
		IDField: "ship_to_id",
		Lookups: LookupSpec{Customers: true},
		Key:     func(l apparelmagic.Location) string { return l.ShipToID.String() },
		Apply: func(ctx context.Context, env *Env, l apparelmagic.Location) (Outcome, error) {
			if l.ShipToID.IsEmpty() {
				return Skipped, errMissingKey
			}
			_, created, err := s.customers.UpsertLocation(ctx, mapLocation(l, env))
			return outcomeOf(created), err
		},
	}
}

func mapLocation(l apparelmagic.Location, env *Env) *models.CustomerLocation {
	synced := env.SyncedAt
	amCustomer := l.CustomerID.String()
	return &models.CustomerLocation{
		AMLocationID:     l.ShipToID.String(),
		CustomerID:       env.customerID(amCustomer),
		AMCustomerID:     fieldmap.Text(amCustomer),
		LocationName:     fieldmap.TextOr(l.Name.String(), "Unnamed Location"),
		Address1:         fieldmap.Text(l.Address1.String()),
		Address2:         fieldmap.Text(l.Address2.String()),
		City:             fieldmap.Text(l.City.String()),
		State:            fieldmap.Text(l.State.String()),
		PostalCode:       fieldmap.Text(l.PostalCode.String()),
		Country:          fieldmap.Text(l.Country.String()),
		Phone:            fieldmap.Text(l.Phone.String()),
		Email:            fieldmap.Text(l.Email.String()),
		StoreNumber:      fieldmap.Text(l.StoreNumber.String()),
		DCReference:      fieldmap.Text(l.DCReference.String()),
		DepartmentNumber: fieldmap.Text(l.DepartmentNumber.String()),
		IsMainLocation:   fieldmap.Flag(l.IsMainLocation.String()),
		LastSyncedAt:     &synced,
	}
}
