package apparelmagic

import (
	"context"
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

const maxErrorBody = 2048

// Client reads collections from the ApparelMagic JSON API. Every request is
// authenticated with the shared token and the current unix time.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
	now       func() time.Time
	logg      *logger.Logger
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Status int
	Body   string
}

// HTTPStatus exposes the upstream status to error dumps.
func (e *HTTPError) HTTPStatus() int { return e.Status }

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("apparelmagic: http status %d", e.Status)
	}
	return fmt.Sprintf("apparelmagic: http status %d: %s", e.Status, e.Body)
}

func NewClient(cfg config.ApparelMagicConfig, logg *logger.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, errors.New("apparelmagic token is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("apparelmagic base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout},
		now:       time.Now,
		logg:      logg,
	}, nil
}

// PageRequest selects one page of a resource. Filters are passed through as
// extra query parameters.
type PageRequest struct {
	PageSize int
	LastID   string
	Filters  map[string]string
}

// Page is the raw page envelope. Records stay undecoded so callers pick the DTO.
type Page struct {
	Records []json.RawMessage
	LastID  string
}

type pageEnvelope struct {
	Response []json.RawMessage `json:"response"`
	Meta     struct {
		Pagination struct {
			LastID types.Flex `json:"last_id"`
		} `json:"pagination"`
	} `json:"meta"`
}

// ListPage fetches a single page of resource.
func (c *Client) ListPage(ctx context.Context, resource string, req PageRequest) (*Page, error) {
	params := url.Values{}
	if req.PageSize > 0 {
		params.Set("pagination[page_size]", strconv.Itoa(req.PageSize))
	}
	if req.LastID != "" {
		params.Set("pagination[last_id]", req.LastID)
	}
	for k, v := range req.Filters {
		params.Set(k, v)
	}

	var env pageEnvelope
	if err := c.get(ctx, resource, params, &env); err != nil {
		return nil, err
	}
	return &Page{Records: env.Response, LastID: env.Meta.Pagination.LastID.String()}, nil
}

// ProductSKUs lists the variants of one product.
func (c *Client) ProductSKUs(ctx context.Context, productID string) ([]SKU, error) {
	var env struct {
		Response []SKU `json:"response"`
	}
	if err := c.get(ctx, "products/"+url.PathEscape(productID)+"/skus", nil, &env); err != nil {
		return nil, err
	}
	return env.Response, nil
}

// ProductAttributes lists the colorways of one product along with their images.
func (c *Client) ProductAttributes(ctx context.Context, productID string) ([]Colorway, error) {
	params := url.Values{}
	params.Set("product_id", productID)
	var env struct {
		Response []Colorway `json:"response"`
	}
	if err := c.get(ctx, "product_attributes", params, &env); err != nil {
		return nil, err
	}
	return env.Response, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("time", strconv.FormatInt(c.now().Unix(), 10))
	params.Set("token", c.token)

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/") + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building apparelmagic request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apparelmagic %s: %w", path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && c.logg != nil {
			c.logg.Warn(ctx, "closing apparelmagic response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding apparelmagic %s: %w", path, err)
	}
	return nil
}
