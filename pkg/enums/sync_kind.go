package enums

import (
	"fmt"
	"strings"
)

// SyncKind names one mirrored entity collection.
type SyncKind string

const (
	SyncKindCustomers   SyncKind = "customers"
	SyncKindLocations   SyncKind = "locations"
	SyncKindProducts    SyncKind = "products"
	SyncKindInventory   SyncKind = "inventory"
	SyncKindOrders      SyncKind = "orders"
	SyncKindInvoices    SyncKind = "invoices"
	SyncKindPickTickets SyncKind = "pick_tickets"
	SyncKindShipments   SyncKind = "shipments"
)

// SyncOrder is the dependency order used by a full sync: parents before the
// entities that resolve foreign keys against them.
var SyncOrder = []SyncKind{
	SyncKindCustomers,
	SyncKindLocations,
	SyncKindProducts,
	SyncKindInventory,
	SyncKindOrders,
	SyncKindInvoices,
	SyncKindPickTickets,
	SyncKindShipments,
}

// String implements fmt.Stringer.
func (k SyncKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SyncKind.
func (k SyncKind) IsValid() bool {
	for _, candidate := range SyncOrder {
		if candidate == k {
			return true
		}
	}
	return false
}

// Source reports which remote system backs the kind.
func (k SyncKind) Source() SyncSource {
	if k == SyncKindShipments {
		return SyncSourceShipStation
	}
	return SyncSourceApparelMagic
}

// Slug is the URL form used by the admin sync routes.
func (k SyncKind) Slug() string {
	return strings.ReplaceAll(string(k), "_", "-")
}

// ParseSyncKind accepts both the stored form and the URL slug.
func ParseSyncKind(value string) (SyncKind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
	for _, candidate := range SyncOrder {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sync kind %q", value)
}
