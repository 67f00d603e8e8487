package apparelmagic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advanceapparels/tradeshow-portal/pkg/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.ApparelMagicConfig{
		BaseURL:   srv.URL + "/api/json/",
		Token:     "secret",
		UserAgent: "TradeShowPortal/1.0",
		Timeout:   5 * time.Second,
	}, nil)
	require.NoError(t, err)
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient(config.ApparelMagicConfig{BaseURL: "http://x"}, nil)
	assert.Error(t, err)
}

func TestListPageSendsAuthAndPagination(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/json/customers", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1700000000", q.Get("time"))
		assert.Equal(t, "secret", q.Get("token"))
		assert.Equal(t, "500", q.Get("pagination[page_size]"))
		assert.Equal(t, "42", q.Get("pagination[last_id]"))
		assert.Equal(t, "TradeShowPortal/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"response":[{"customer_id":7}],"meta":{"pagination":{"last_id":99}}}`))
	})

	page, err := c.ListPage(context.Background(), ResourceCustomers, PageRequest{PageSize: 500, LastID: "42"})
	require.NoError(t, err)
	assert.Len(t, page.Records, 1)
	assert.Equal(t, "99", page.LastID)
}

func TestListPageReturnsHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	})

	_, err := c.ListPage(context.Background(), ResourceOrders, PageRequest{})
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "bad token", httpErr.Body)
}

func TestFetchAllFollowsCursorUntilMissing(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("pagination[last_id]") {
		case "":
			_, _ = w.Write([]byte(`{"response":[{"customer_id":"1","customer_name":"A"},{"customer_id":"2","customer_name":"B"}],"meta":{"pagination":{"last_id":"2"}}}`))
		case "2":
			_, _ = w.Write([]byte(`{"response":[{"customer_id":3,"customer_name":"C","is_active":true}],"meta":{"pagination":{}}}`))
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("pagination[last_id]"))
		}
	})

	customers, err := FetchAll[Customer](context.Background(), c, ResourceCustomers, DefaultPaging[ResourceCustomers])
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "3", customers[2].CustomerID.String())
	assert.Equal(t, "1", customers[2].IsActive.String())
}

func TestFetchAllStopsOnEmptyPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":[],"meta":{"pagination":{"last_id":"5"}}}`))
	})

	out, err := FetchAll[Invoice](context.Background(), c, ResourceInvoices, PageOptions{PageSize: 10, MaxPages: 5})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFetchAllHonorsPageCeiling(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"response":[{"order_id":"%d"}],"meta":{"pagination":{"last_id":"%d"}}}`, calls, calls)
	})

	orders, err := FetchAll[Order](context.Background(), c, ResourceOrders, PageOptions{PageSize: 1, MaxPages: 3})
	require.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Equal(t, 3, calls)
}

func TestCollectionKeepsMalformedRecordsRaw(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/json/orders", r.URL.Path)
		assert.Equal(t, "200", r.URL.Query().Get("pagination[page_size]"))
		_, _ = w.Write([]byte(`{"response":[{"order_id":"1","order_items":[]},{"order_id":"2","order_items":{}},"oops"],"meta":{"pagination":{}}}`))
	})

	raws, err := c.Collection(context.Background(), ResourceOrders)
	require.NoError(t, err)
	require.Len(t, raws, 3)
	assert.JSONEq(t, `{"order_id":"2","order_items":{}}`, string(raws[1]))

	_, err = FetchAll[Order](context.Background(), c, ResourceOrders, PageOptions{PageSize: 200, MaxPages: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders record 1")
}

func TestCollectionRejectsUnknownResource(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})
	_, err := c.Collection(context.Background(), "widgets")
	assert.Error(t, err)
}

func TestProductEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/json/products/55/skus":
			_, _ = w.Write([]byte(`{"response":[{"sku_id":"900","attr_2":"NAVY","size":"M","price":"12.50","qty_avail_sell":4}]}`))
		case "/api/json/product_attributes":
			assert.Equal(t, "55", r.URL.Query().Get("product_id"))
			_, _ = w.Write([]byte(`{"response":[{"attr_2":"NAVY","images":[{"img":"https://img/1.jpg"}]}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	skus, err := c.ProductSKUs(context.Background(), "55")
	require.NoError(t, err)
	require.Len(t, skus, 1)
	assert.Equal(t, "12.50", skus[0].Price.String())
	assert.Equal(t, "4", skus[0].QtyAvailSell.String())

	colorways, err := c.ProductAttributes(context.Background(), "55")
	require.NoError(t, err)
	require.Len(t, colorways, 1)
	assert.Equal(t, "https://img/1.jpg", colorways[0].Images[0].Img.String())
}
