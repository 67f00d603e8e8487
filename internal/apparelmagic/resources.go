package apparelmagic

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	ResourceCustomers   = "customers"
	ResourceLocations   = "locations"
	ResourceProducts    = "products"
	ResourceInventory   = "inventory"
	ResourceOrders      = "orders"
	ResourceInvoices    = "invoices"
	ResourcePickTickets = "pick_tickets"
)

// DefaultPaging holds the page size and ceiling used for each collection.
var DefaultPaging = map[string]PageOptions{
	ResourceCustomers:   {PageSize: 500, MaxPages: 20},
	ResourceLocations:   {PageSize: 1000, MaxPages: 30},
	ResourceProducts:    {PageSize: 1000, MaxPages: 10},
	ResourceInventory:   {PageSize: 1000, MaxPages: 100},
	ResourceOrders:      {PageSize: 200, MaxPages: 200},
	ResourceInvoices:    {PageSize: 200, MaxPages: 200},
	ResourcePickTickets: {PageSize: 200, MaxPages: 200},
}

// Collection reads every record of a resource using its default paging. The
// records are returned undecoded; see FetchRaw.
func (c *Client) Collection(ctx context.Context, resource string) ([]json.RawMessage, error) {
	opts, ok := DefaultPaging[resource]
	if !ok {
		return nil, fmt.Errorf("apparelmagic: unknown resource %q", resource)
	}
	return FetchRaw(ctx, c, resource, opts)
}
