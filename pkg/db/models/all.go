package models

// All lists every persisted model. Tests and local sqlite databases use it
// with AutoMigrate; postgres schemas come from the goose migrations.
func All() []any {
	return []any{
		&Customer{},
		&CustomerLocation{},
		&Product{},
		&ProductImage{},
		&ProductSKU{},
		&Order{},
		&OrderItem{},
		&Invoice{},
		&PickTicket{},
		&Shipment{},
		&Portal{},
		&PortalItem{},
		&PortalAttachment{},
		&SyncLog{},
	}
}
