package sync

import (
	"context"

	"github.com/advanceapparels/tradeshow-portal/internal/apparelmagic"
	"github.com/advanceapparels/tradeshow-portal/internal/fieldmap"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtypes"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

const (
	statusOpen    = "open"
	statusShipped = "shipped"
)

func (s *Service) ordersDescriptor() Descriptor[apparelmagic.Order] {
	return Descriptor[apparelmagic.Order]{
		Kind:    enums.SyncKindOrders,
		Fetch:   s.collection(apparelmagic.ResourceOrders),
		IDField: "order_id",
		Lookups: LookupSpec{Customers: true},
		Key:     func(o apparelmagic.Order) string { return o.OrderID.String() },
		Apply:   s.applyOrder,
	}
}

func (s *Service) applyOrder(ctx context.Context, env *Env, o apparelmagic.Order) (Outcome, error) {
	amID := o.OrderID.String()
	if amID == "" {
		return Skipped, errMissingKey
	}

	id, created, err := s.orders.UpsertOrder(ctx, mapOrder(o, env))
	if err != nil {
		return Skipped, err
	}

	// A missing order_items array leaves the stored lines alone.
	if o.OrderItems != nil {
		items := make([]models.OrderItem, 0, len(o.OrderItems))
		for _, it := range o.OrderItems {
			items = append(items, mapOrderItem(it))
		}
		if err := s.orders.ReplaceItems(ctx, id, amID, items); err != nil {
			return Skipped, err
		}
		env.Count("items", len(items))
	}
	return outcomeOf(created), nil
}

func mapOrder(o apparelmagic.Order, env *Env) *models.Order {
	synced := env.SyncedAt
	amID := o.OrderID.String()
	amCustomer := o.CustomerID.String()

	status := o.Status.String()
	if status == "" {
		status = statusOpen
		if fieldmap.Float(o.QtyShipped.String()) > 0 {
			status = statusShipped
		}
	}

	return &models.Order{
		ApparelMagicID:         amID,
		CustomerID:             env.customerID(amCustomer),
		ApparelMagicCustomerID: fieldmap.Text(amCustomer),
		OrderNumber:            amID,
		PONumber:               fieldmap.Text(o.CustomerPO.String()),
		OrderStatus:            status,
		OrderDate:              dbtypes.NewNullDate(fieldmap.Date(o.Date.String())),
		ShipDate:               dbtypes.NewNullDate(fieldmap.Date(o.DateStart.String())),
		CancelDate:             dbtypes.NewNullDate(fieldmap.Date(o.DateDue.String())),
		Subtotal:               fieldmap.Decimal(o.AmountSubtotal.String()),
		DiscountAmount:         fieldmap.Decimal(o.AmountDiscount.String()),
		ShippingAmount:         fieldmap.Decimal(o.AmountFreight.String()),
		TaxAmount:              fieldmap.Decimal(o.AmountTaxTotal.String()),
		TotalAmount:            fieldmap.Decimal(o.Amount.String()),
		ShipToName:             fieldmap.FirstText(o.Name.String(), o.CustomerName.String()),
		ShipToAddress1:         fieldmap.Text(o.Address1.String()),
		ShipToAddress2:         fieldmap.Text(o.Address2.String()),
		ShipToCity:             fieldmap.Text(o.City.String()),
		ShipToState:            fieldmap.Text(o.State.String()),
		ShipToZip:              fieldmap.Text(o.PostalCode.String()),
		ShipToCountry:          fieldmap.Text(o.Country.String()),
		ShippingMethod:         fieldmap.Text(o.ShipVia.String()),
		TradeShow:              fieldmap.Text(o.Season.String()),
		Notes:                  fieldmap.Text(o.Notes.String()),
		LastSyncedAt:           &synced,
	}
}

func mapOrderItem(it apparelmagic.OrderItem) models.OrderItem {
	shipped := fieldmap.Int(it.QtyShipped.String())
	lineStatus := statusOpen
	if shipped > 0 {
		lineStatus = statusShipped
	}
	return models.OrderItem{
		ApparelMagicID:    fieldmap.Text(it.ID.String()),
		ProductID:         fieldmap.Text(it.ProductID.String()),
		SKUID:             fieldmap.Text(it.SKUID.String()),
		StyleNumber:       fieldmap.Text(it.StyleNumber.String()),
		Color:             fieldmap.Text(it.Attr2.String()),
		Size:              fieldmap.Text(it.Size.String()),
		QuantityOrdered:   fieldmap.Int(it.Qty.String()),
		QuantityShipped:   shipped,
		QuantityCancelled: fieldmap.Int(it.QtyCxl.String()),
		UnitPrice:         fieldmap.Decimal(it.UnitPrice.String()),
		LineTotal:         fieldmap.Decimal(it.Amount.String()),
		LineStatus:        lineStatus,
	}
}

func (s *Service) invoicesDescriptor() Descriptor[apparelmagic.Invoice] {
	return Descriptor[apparelmagic.Invoice]{
		Kind:    enums.SyncKindInvoices,
		Fetch:   s.collection(apparelmagic.ResourceInvoices),
		IDField: "invoice_id",
		Lookups: LookupSpec{Customers: true, Orders: true},
		Key:     func(i apparelmagic.Invoice) string { return i.InvoiceID.String() },
		Apply: func(ctx context.Context, env *Env, i apparelmagic.Invoice) (Outcome, error) {
			if i.InvoiceID.IsEmpty() {
				return Skipped, errMissingKey
			}
			_, created, err := s.billing.UpsertInvoice(ctx, mapInvoice(i, env))
			return outcomeOf(created), err
		},
	}
}

func mapInvoice(i apparelmagic.Invoice, env *Env) *models.Invoice {
	synced := env.SyncedAt
	amID := i.InvoiceID.String()
	amOrder := i.OrderID.String()
	amCustomer := i.CustomerID.String()
	total := fieldmap.Decimal(i.Amount.String())
	paid := fieldmap.Decimal(i.AmountPaid.String())
	balance := fieldmap.Decimal(i.Balance.String())

	return &models.Invoice{
		ApparelMagicID:         amID,
		OrderID:                env.orderID(amOrder),
		CustomerID:             env.customerID(amCustomer),
		ApparelMagicOrderID:    fieldmap.Text(amOrder),
		ApparelMagicCustomerID: fieldmap.Text(amCustomer),
		InvoiceNumber:          amID,
		InvoiceDate:            dbtypes.NewNullDate(fieldmap.Date(i.Date.String())),
		DueDate:                dbtypes.NewNullDate(fieldmap.Date(i.DateDue.String())),
		Subtotal:               fieldmap.Decimal(i.AmountSubtotal.String()),
		DiscountAmount:         fieldmap.Decimal(i.AmountDiscount.String()),
		ShippingAmount:         fieldmap.Decimal(i.AmountFreight.String()),
		TaxAmount:              fieldmap.Decimal(i.AmountTax.String()),
		TotalAmount:            total,
		AmountPaid:             paid,
		BalanceDue:             balance,
		PaymentStatus:          fieldmap.PaymentStatus(balance, paid, total),
		Notes:                  fieldmap.Text(i.Notes.String()),
		LastSyncedAt:           &synced,
	}
}
