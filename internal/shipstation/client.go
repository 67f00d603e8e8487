package shipstation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/advanceapparels/tradeshow-portal/pkg/config"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
	"github.com/advanceapparels/tradeshow-portal/pkg/types"
)

// Client reads shipments from the ShipStation REST API using Basic auth.
type Client struct {
	baseURL string
	auth    string
	http    *http.Client
	paging  PageOptions
	logg    *logger.Logger
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Status int
	Body   string
}

// HTTPStatus exposes the upstream status to error dumps.
func (e *HTTPError) HTTPStatus() int { return e.Status }

func (e *HTTPError) Error() string {
	return fmt.Sprintf("shipstation: http status %d: %s", e.Status, e.Body)
}

// PageOptions bounds a full shipment walk. Delay spaces requests to stay under
// the 40 requests per minute limit.
type PageOptions struct {
	PageSize int
	MaxPages int
	Delay    time.Duration
}

func NewClient(cfg config.ShipStationConfig, logg *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("shipstation api key and secret are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		auth:    "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.APIKey+":"+cfg.APISecret)),
		http:    &http.Client{Timeout: timeout},
		paging:  PageOptions{PageSize: cfg.PageSize, MaxPages: cfg.MaxPages, Delay: cfg.PageDelay},
		logg:    logg,
	}, nil
}

type Address struct {
	Name       string `json:"name"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type Weight struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

type Shipment struct {
	ShipmentID     types.Flex `json:"shipmentId"`
	OrderID        types.Flex `json:"orderId"`
	OrderNumber    types.Flex `json:"orderNumber"`
	TrackingNumber types.Flex `json:"trackingNumber"`
	CarrierCode    types.Flex `json:"carrierCode"`
	ServiceCode    types.Flex `json:"serviceCode"`
	ServiceName    types.Flex `json:"serviceName"`
	ShipDate       types.Flex `json:"shipDate"`
	DeliveryDate   types.Flex `json:"deliveryDate"`
	Voided         bool       `json:"voided"`
	ShipmentCost   types.Flex `json:"shipmentCost"`
	InsuranceCost  types.Flex `json:"insuranceCost"`
	Weight         *Weight    `json:"weight"`
	ShipTo         *Address   `json:"shipTo"`
}

type ShipmentsPage struct {
	Shipments []Shipment `json:"shipments"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	Pages     int        `json:"pages"`
}

// rawPage keeps shipments undecoded so a malformed one does not sink the page.
type rawPage struct {
	Shipments []json.RawMessage `json:"shipments"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	Pages     int               `json:"pages"`
}

// ListShipments returns one page, newest ship date first. Every shipment on
// the page must decode.
func (c *Client) ListShipments(ctx context.Context, page, pageSize int) (*ShipmentsPage, error) {
	raw, err := c.listPage(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	out := &ShipmentsPage{Total: raw.Total, Page: raw.Page, Pages: raw.Pages}
	out.Shipments = make([]Shipment, 0, len(raw.Shipments))
	for i, rec := range raw.Shipments {
		var sh Shipment
		if err := json.Unmarshal(rec, &sh); err != nil {
			return nil, fmt.Errorf("decoding shipstation shipment %d: %w", i, err)
		}
		out.Shipments = append(out.Shipments, sh)
	}
	return out, nil
}

func (c *Client) listPage(ctx context.Context, page, pageSize int) (*rawPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("sortBy", "ShipDate")
	params.Set("sortDir", "DESC")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/shipments?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building shipstation request: %w", err)
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shipstation shipments: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && c.logg != nil {
			c.logg.Warn(ctx, "closing shipstation response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out rawPage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding shipstation shipments: %w", err)
	}
	return &out, nil
}

// Shipments walks every page using the configured paging.
func (c *Client) Shipments(ctx context.Context) ([]json.RawMessage, error) {
	return c.FetchAllShipments(ctx, c.paging)
}

// FetchAllShipments reads pages while page <= pages reported by the API and
// page <= MaxPages, sleeping Delay between requests. Shipments are returned
// undecoded for the caller to decode one at a time.
func (c *Client) FetchAllShipments(ctx context.Context, opts PageOptions) ([]json.RawMessage, error) {
	if opts.PageSize <= 0 {
		opts.PageSize = 500
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 20
	}

	var all []json.RawMessage
	pages := 1
	for page := 1; page <= pages && page <= opts.MaxPages; page++ {
		res, err := c.listPage(ctx, page, opts.PageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Shipments...)
		pages = res.Pages
		if pages < 1 {
			pages = 1
		}

		if opts.Delay > 0 && page < pages && page < opts.MaxPages {
			timer := time.NewTimer(opts.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	if pages > opts.MaxPages && c.logg != nil {
		ctx = c.logg.WithFields(ctx, map[string]any{"pages": pages, "max_pages": opts.MaxPages, "records": len(all)})
		c.logg.Warn(ctx, "shipstation page ceiling reached; shipments truncated")
	}
	return all, nil
}
