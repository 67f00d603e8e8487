package sync

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/advanceapparels/tradeshow-portal/internal/apparelmagic"
	"github.com/advanceapparels/tradeshow-portal/internal/fieldmap"
	"github.com/advanceapparels/tradeshow-portal/internal/shipstation"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtypes"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

func (s *Service) pickTicketsDescriptor() Descriptor[apparelmagic.PickTicket] {
	return Descriptor[apparelmagic.PickTicket]{
		Kind:    enums.SyncKindPickTickets,
		Fetch:   s.collection(apparelmagic.ResourcePickTickets),
		IDField: "pick_ticket_id",
		Lookups: LookupSpec{Customers: true, Orders: true},
		Key:     func(p apparelmagic.PickTicket) string { return p.PickTicketID.String() },
		Apply: func(ctx context.Context, env *Env, p apparelmagic.PickTicket) (Outcome, error) {
			if p.PickTicketID.IsEmpty() {
				return Skipped, errMissingKey
			}
			_, created, err := s.fulfillment.UpsertPickTicket(ctx, mapPickTicket(p, env))
			return outcomeOf(created), err
		},
	}
}

func mapPickTicket(p apparelmagic.PickTicket, env *Env) *models.PickTicket {
	synced := env.SyncedAt
	amOrder := p.OrderID.String()
	amCustomer := p.CustomerID.String()
	return &models.PickTicket{
		PickTicketID:           p.PickTicketID.String(),
		OrderID:                env.orderID(amOrder),
		CustomerID:             env.customerID(amCustomer),
		ApparelMagicOrderID:    fieldmap.Text(amOrder),
		ApparelMagicCustomerID: fieldmap.Text(amCustomer),
		InvoiceID:              fieldmap.Text(p.InvoiceID.String()),
		PickTicketDate:         dbtypes.NewNullDate(fieldmap.Date(p.Date.String())),
		DateDue:                dbtypes.NewNullDate(fieldmap.Date(p.DateDue.String())),
		TrackingNumber:         fieldmap.Text(p.TrackingNumber.String()),
		ShipVia:                fieldmap.Text(p.ShipVia.String()),
		ShipToName:             fieldmap.Text(p.ShipToName.String()),
		ShipToAddress1:         fieldmap.Text(p.Address1.String()),
		ShipToAddress2:         fieldmap.Text(p.Address2.String()),
		ShipToCity:             fieldmap.Text(p.City.String()),
		ShipToState:            fieldmap.Text(p.State.String()),
		ShipToZip:              fieldmap.Text(p.PostalCode.String()),
		ShipToCountry:          fieldmap.Text(p.Country.String()),
		Quantity:               fieldmap.Int(p.Qty.String()),
		Subtotal:               fieldmap.Decimal(p.AmountSubtotal.String()),
		DiscountAmount:         fieldmap.Decimal(p.AmountDiscount.String()),
		TaxAmount:              fieldmap.Decimal(p.AmountTax.String()),
		FreightAmount:          fieldmap.Decimal(p.AmountFreight.String()),
		TotalAmount:            fieldmap.Decimal(p.Amount.String()),
		IsVoid:                 fieldmap.Flag(p.Void.String()),
		HasError:               fieldmap.Flag(p.Error.String()),
		Notes:                  fieldmap.Text(p.Notes.String()),
		LastSyncedAt:           &synced,
	}
}

func (s *Service) shipmentsDescriptor() Descriptor[shipstation.Shipment] {
	return Descriptor[shipstation.Shipment]{
		Kind:    enums.SyncKindShipments,
		Fetch:   s.carrier.Shipments,
		IDField: "shipmentId",
		Lookups: LookupSpec{OrderNumbers: true},
		Key:     func(sh shipstation.Shipment) string { return sh.ShipmentID.String() },
		Apply: func(ctx context.Context, env *Env, sh shipstation.Shipment) (Outcome, error) {
			if sh.ShipmentID.IsEmpty() {
				return Skipped, errMissingKey
			}
			_, created, err := s.fulfillment.UpsertShipment(ctx, mapShipment(sh, env))
			return outcomeOf(created), err
		},
	}
}

func mapShipment(sh shipstation.Shipment, env *Env) *models.Shipment {
	synced := env.SyncedAt
	carrier := sh.CarrierCode.String()
	tracking := sh.TrackingNumber.String()
	orderNumber := sh.OrderNumber.String()

	status := enums.ShipmentStatusShipped
	if sh.Voided {
		status = enums.ShipmentStatusVoided
	}

	weight := decimal.Zero
	if sh.Weight != nil {
		weight = decimal.NewFromFloat(sh.Weight.Value)
	}

	out := &models.Shipment{
		ShipStationID:      sh.ShipmentID.String(),
		OrderID:            env.orderByNumber(orderNumber),
		ShipStationOrderID: fieldmap.Text(sh.OrderID.String()),
		OrderNumber:        fieldmap.Text(orderNumber),
		TrackingNumber:     fieldmap.Text(tracking),
		CarrierCode:        fieldmap.Text(carrier),
		CarrierName:        fieldmap.CarrierName(carrier),
		ServiceCode:        fieldmap.Text(sh.ServiceCode.String()),
		ServiceName:        fieldmap.Text(sh.ServiceName.String()),
		Status:             status,
		ShipDate:           fieldmap.Timestamp(sh.ShipDate.String()),
		DeliveryDate:       fieldmap.Timestamp(sh.DeliveryDate.String()),
		WeightOz:           weight,
		ShipmentCost:       fieldmap.Decimal(sh.ShipmentCost.String()),
		InsuranceCost:      fieldmap.Decimal(sh.InsuranceCost.String()),
		TrackingURL:        fieldmap.TrackingURL(carrier, tracking),
		LastSyncedAt:       &synced,
	}
	if sh.ShipTo != nil {
		out.ShipToName = fieldmap.Text(sh.ShipTo.Name)
		out.ShipToCity = fieldmap.Text(sh.ShipTo.City)
		out.ShipToState = fieldmap.Text(sh.ShipTo.State)
		out.ShipToZip = fieldmap.Text(sh.ShipTo.PostalCode)
		out.ShipToCountry = fieldmap.Text(sh.ShipTo.Country)
	}
	return out
}
