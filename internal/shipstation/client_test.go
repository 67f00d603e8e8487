package shipstation

import (
	"context"
	"encoding/base64"
	"encoding/json"
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
	c, err := NewClient(config.ShipStationConfig{BaseURL: srv.URL, APIKey: "key", APISecret: "secret"}, nil)
	require.NoError(t, err)
	return c
}

func TestListShipmentsSendsBasicAuth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		want := "Basic " + base64.StdEncoding.EncodeToString([]byte("key:secret"))
		assert.Equal(t, want, r.Header.Get("Authorization"))
		assert.Equal(t, "/shipments", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "500", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "ShipDate", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "DESC", r.URL.Query().Get("sortDir"))
		_, _ = w.Write([]byte(`{"shipments":[{"shipmentId":123,"orderNumber":"SO-1","carrierCode":"ups","voided":false,"shipmentCost":7.5,"weight":{"value":16,"units":"ounces"},"shipTo":{"name":"Jo","city":"Austin"}}],"total":1,"page":2,"pages":2}`))
	})

	page, err := c.ListShipments(context.Background(), 2, 500)
	require.NoError(t, err)
	require.Len(t, page.Shipments, 1)
	s := page.Shipments[0]
	assert.Equal(t, "123", s.ShipmentID.String())
	assert.Equal(t, "7.5", s.ShipmentCost.String())
	assert.Equal(t, 16.0, s.Weight.Value)
	assert.Equal(t, "Austin", s.ShipTo.City)
	assert.Equal(t, 2, page.Pages)
}

func TestListShipmentsHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	_, err := c.ListShipments(context.Background(), 1, 10)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Status)
}

func TestFetchAllShipmentsStopsAtReportedPages(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"shipments":[{"shipmentId":%d}],"pages":3}`, calls)
	})

	out, err := c.FetchAllShipments(context.Background(), PageOptions{PageSize: 1, MaxPages: 20, Delay: time.Millisecond})
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, 3, calls)
}

func TestFetchAllShipmentsHonorsCeiling(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"shipments":[{"shipmentId":1}],"pages":50}`))
	})

	out, err := c.FetchAllShipments(context.Background(), PageOptions{PageSize: 1, MaxPages: 2})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 2, calls)
}

func TestFetchAllShipmentsStopsOnCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"shipments":[],"pages":5}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchAllShipments(ctx, PageOptions{PageSize: 1, MaxPages: 5, Delay: time.Hour})
	assert.Error(t, err)
}

func TestFetchAllShipmentsKeepsMalformedShipments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"shipments":[{"shipmentId":1,"weight":{"value":8}},{"shipmentId":2,"weight":"heavy"}],"pages":1}`))
	})

	out, err := c.FetchAllShipments(context.Background(), PageOptions{PageSize: 2, MaxPages: 1})
	require.NoError(t, err)
	require.Len(t, out, 2)

	var first Shipment
	require.NoError(t, json.Unmarshal(out[0], &first))
	assert.Equal(t, "1", first.ShipmentID.String())
	var second Shipment
	assert.Error(t, json.Unmarshal(out[1], &second))

	_, err = c.ListShipments(context.Background(), 1, 2)
	assert.Error(t, err)
}

func TestFetchAllShipmentsSkipsDelayAfterLastPage(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"shipments":[{"shipmentId":1}],"pages":1}`))
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// A delay after the only page would outlive the context.
	out, err := c.FetchAllShipments(ctx, PageOptions{PageSize: 1, MaxPages: 5, Delay: time.Hour})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 1, calls)
}
