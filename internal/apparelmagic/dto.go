package apparelmagic

import "github.com/advanceapparels/tradeshow-portal/pkg/types"

type Customer struct {
	CustomerID    types.Flex `json:"customer_id"`
	CustomerName  types.Flex `json:"customer_name"`
	AccountNumber types.Flex `json:"account_number"`
	Email         types.Flex `json:"email"`
	Phone         types.Flex `json:"phone"`
	Address1      types.Flex `json:"address_1"`
	Address2      types.Flex `json:"address_2"`
	City          types.Flex `json:"city"`
	State         types.Flex `json:"state"`
	PostalCode    types.Flex `json:"postal_code"`
	Country       types.Flex `json:"country"`
	CreditLimit   types.Flex `json:"credit_limit"`
	Status        types.Flex `json:"status"`
	Category      types.Flex `json:"category"`
	TermsID       types.Flex `json:"terms_id"`
	DivisionID    types.Flex `json:"division_id"`
	PriceGroup    types.Flex `json:"price_group"`
	Notes         types.Flex `json:"notes"`
	IsActive      types.Flex `json:"is_active"`
}

// Location is a customer ship-to address.
type Location struct {
	ShipToID         types.Flex `json:"ship_to_id"`
	CustomerID       types.Flex `json:"customer_id"`
	Name             types.Flex `json:"name"`
	Address1         types.Flex `json:"address_1"`
	Address2         types.Flex `json:"address_2"`
	City             types.Flex `json:"city"`
	State            types.Flex `json:"state"`
	PostalCode       types.Flex `json:"postal_code"`
	Country          types.Flex `json:"country"`
	Phone            types.Flex `json:"phone"`
	Email            types.Flex `json:"email"`
	StoreNumber      types.Flex `json:"store_number"`
	DCReference      types.Flex `json:"dc_reference"`
	DepartmentNumber types.Flex `json:"department_number"`
	IsMainLocation   types.Flex `json:"is_main_location"`
}

type ProductImage struct {
	Img types.Flex `json:"img"`
}

type Product struct {
	ProductID   types.Flex     `json:"product_id"`
	StyleNumber types.Flex     `json:"style_number"`
	Description types.Flex     `json:"description"`
	Price       types.Flex     `json:"price"`
	Category    types.Flex     `json:"category"`
	Content     types.Flex     `json:"content"`
	Origin      types.Flex     `json:"origin"`
	Images      []ProductImage `json:"images"`
}

// Colorway is one product_attributes row; only its images are used.
type Colorway struct {
	Attr2  types.Flex     `json:"attr_2"`
	Images []ProductImage `json:"images"`
}

type SKU struct {
	SKUID        types.Flex `json:"sku_id"`
	Attr2        types.Flex `json:"attr_2"`
	Size         types.Flex `json:"size"`
	Price        types.Flex `json:"price"`
	QtyAvailSell types.Flex `json:"qty_avail_sell"`
}

type InventoryRecord struct {
	SKUID         types.Flex `json:"sku_id"`
	QtyAvailSell  types.Flex `json:"qty_avail_sell"`
	QtyInventory  types.Flex `json:"qty_inventory"`
	QtyAlloc      types.Flex `json:"qty_alloc"`
	QtyAvailAlloc types.Flex `json:"qty_avail_alloc"`
	QtyOpenPO     types.Flex `json:"qty_open_po"`
	QtyOpenSales  types.Flex `json:"qty_open_sales"`
	QtyPicked     types.Flex `json:"qty_picked"`
	Cost          types.Flex `json:"cost"`
	Location      types.Flex `json:"location"`
	UPCDisplay    types.Flex `json:"upc_display"`
	Active        types.Flex `json:"active"`
}

type Order struct {
	OrderID        types.Flex  `json:"order_id"`
	CustomerID     types.Flex  `json:"customer_id"`
	CustomerName   types.Flex  `json:"customer_name"`
	CustomerPO     types.Flex  `json:"customer_po"`
	Status         types.Flex  `json:"status"`
	QtyShipped     types.Flex  `json:"qty_shipped"`
	Date           types.Flex  `json:"date"`
	DateStart      types.Flex  `json:"date_start"`
	DateDue        types.Flex  `json:"date_due"`
	AmountSubtotal types.Flex  `json:"amount_subtotal"`
	AmountDiscount types.Flex  `json:"amount_discount"`
	AmountFreight  types.Flex  `json:"amount_freight"`
	AmountTaxTotal types.Flex  `json:"amount_tax_total"`
	Amount         types.Flex  `json:"amount"`
	Name           types.Flex  `json:"name"`
	Address1       types.Flex  `json:"address_1"`
	Address2       types.Flex  `json:"address_2"`
	City           types.Flex  `json:"city"`
	State          types.Flex  `json:"state"`
	PostalCode     types.Flex  `json:"postal_code"`
	Country        types.Flex  `json:"country"`
	ShipVia        types.Flex  `json:"ship_via"`
	Season         types.Flex  `json:"season"`
	Notes          types.Flex  `json:"notes"`
	OrderItems     []OrderItem `json:"order_items"`
}

type OrderItem struct {
	ID          types.Flex `json:"id"`
	ProductID   types.Flex `json:"product_id"`
	SKUID       types.Flex `json:"sku_id"`
	StyleNumber types.Flex `json:"style_number"`
	Attr2       types.Flex `json:"attr_2"`
	Size        types.Flex `json:"size"`
	Qty         types.Flex `json:"qty"`
	QtyShipped  types.Flex `json:"qty_shipped"`
	QtyCxl      types.Flex `json:"qty_cxl"`
	UnitPrice   types.Flex `json:"unit_price"`
	Amount      types.Flex `json:"amount"`
}

type Invoice struct {
	InvoiceID      types.Flex `json:"invoice_id"`
	OrderID        types.Flex `json:"order_id"`
	CustomerID     types.Flex `json:"customer_id"`
	Date           types.Flex `json:"date"`
	DateDue        types.Flex `json:"date_due"`
	AmountSubtotal types.Flex `json:"amount_subtotal"`
	AmountDiscount types.Flex `json:"amount_discount"`
	AmountFreight  types.Flex `json:"amount_freight"`
	AmountTax      types.Flex `json:"amount_tax"`
	Amount         types.Flex `json:"amount"`
	AmountPaid     types.Flex `json:"amount_paid"`
	Balance        types.Flex `json:"balance"`
	Notes          types.Flex `json:"notes"`
}

type PickTicket struct {
	PickTicketID   types.Flex `json:"pick_ticket_id"`
	OrderID        types.Flex `json:"order_id"`
	CustomerID     types.Flex `json:"customer_id"`
	InvoiceID      types.Flex `json:"invoice_id"`
	Date           types.Flex `json:"date"`
	DateDue        types.Flex `json:"date_due"`
	TrackingNumber types.Flex `json:"tracking_number"`
	ShipVia        types.Flex `json:"ship_via"`
	ShipToName     types.Flex `json:"ship_to_name"`
	Address1       types.Flex `json:"address_1"`
	Address2       types.Flex `json:"address_2"`
	City           types.Flex `json:"city"`
	State          types.Flex `json:"state"`
	PostalCode     types.Flex `json:"postal_code"`
	Country        types.Flex `json:"country"`
	Qty            types.Flex `json:"qty"`
	AmountSubtotal types.Flex `json:"amount_subtotal"`
	AmountDiscount types.Flex `json:"amount_discount"`
	AmountTax      types.Flex `json:"amount_tax"`
	AmountFreight  types.Flex `json:"amount_freight"`
	Amount         types.Flex `json:"amount"`
	Void           types.Flex `json:"void"`
	Error          types.Flex `json:"error"`
	Notes          types.Flex `json:"notes"`
}
