package portals

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advanceapparels/tradeshow-portal/internal/customers"
	"github.com/advanceapparels/tradeshow-portal/pkg/db"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/dbtest"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
	pkgerrors "github.com/advanceapparels/tradeshow-portal/pkg/errors"
	"github.com/advanceapparels/tradeshow-portal/pkg/logger"
	"github.com/advanceapparels/tradeshow-portal/pkg/storage/gcs"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	failPut bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Upload(_ context.Context, bucket, name, contentType string, body io.Reader) (*gcs.Object, error) {
	if f.failPut {
		return nil, fmt.Errorf("bucket unavailable")
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[name] = b
	return &gcs.Object{
		Bucket:      "portal-attachments",
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(b)),
		URL:         "https://storage.example/portal-attachments/" + name,
	}, nil
}

func (f *fakeStore) Delete(_ context.Context, _, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, name)
	f.deleted = append(f.deleted, name)
	return nil
}

type fixture struct {
	client *db.Client
	svc    *Service
	store  *fakeStore
	now    time.Time
}

func newFixture(t *testing.T, links LinkGenerator) *fixture {
	t.Helper()
	client := dbtest.OpenClient(t)
	store := newFakeStore()
	now := time.Date(2025, 3, 7, 15, 4, 5, 0, time.UTC)
	svc, err := NewService(ServiceParams{
		Repo:           NewRepository(client.DB()),
		Customers:      customers.NewRepository(client.DB()),
		Tx:             client,
		Storage:        store,
		Logger:         logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		PublicURL:      "https://portal.example/",
		MaxUploadBytes: 1 << 20,
		Links:          links,
		Now:            func() time.Time { return now },
	})
	require.NoError(t, err)
	return &fixture{client: client, svc: svc, store: store, now: now}
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestCreateNewCustomerPortal(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	out, err := f.svc.Create(ctx, CreateInput{CustomerName: "  Acme Co ", IsNewCustomer: true})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]{12}$`), out.UniqueLink)
	assert.Equal(t, "Acme Co", out.CustomerName)
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "https://portal.example/portal/"+out.UniqueLink, out.URL)
	require.NotNil(t, out.CustomerID)

	var customer models.Customer
	require.NoError(t, f.client.DB().First(&customer, "id = ?", *out.CustomerID).Error)
	assert.True(t, customer.IsLocalOnly)
	assert.True(t, customer.IsActive)
	assert.Nil(t, customer.AMCustomerID)
	require.NotNil(t, customer.Country)
	assert.Equal(t, "USA", *customer.Country)
}

func TestCreateRequiresCustomerName(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Create(context.Background(), CreateInput{CustomerName: "   ", IsNewCustomer: true})
	requireCode(t, err, pkgerrors.CodeValidation)

	var n int64
	require.NoError(t, f.client.DB().Model(&models.Customer{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateRejectsUnknownCustomer(t *testing.T) {
	f := newFixture(t, nil)
	id := uuid.New()
	_, err := f.svc.Create(context.Background(), CreateInput{CustomerName: "Acme", CustomerID: &id})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateRejectsBadShipDate(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Create(context.Background(), CreateInput{CustomerName: "Acme", ShipDate: "next tuesday"})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateConflictsWhenLinksExhausted(t *testing.T) {
	f := newFixture(t, func() (string, error) { return "samelinkzzzz", nil })
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateInput{CustomerName: "First"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, CreateInput{CustomerName: "Second", IsNewCustomer: true})
	requireCode(t, err, pkgerrors.CodeConflict)

	// No local customer is left behind by the failed attempt.
	var n int64
	require.NoError(t, f.client.DB().Model(&models.Customer{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGetByLinkBuildsMatrix(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	price := decimal.RequireFromString("12.50")

	created, err := f.svc.Create(ctx, CreateInput{
		CustomerName:  "Acme",
		TradeShowName: "Magic Vegas",
		ShipDate:      "4/1/2025",
		Items: []ItemInput{
			{StyleNumber: "ST-1", Attr2: "Red", Size: "S", Quantity: 2, Price: price},
			{StyleNumber: "ST-1", Attr2: "Red", Size: "M", Quantity: 3, Price: price},
			{StyleNumber: "ST-1", Attr2: "Blue", Size: "S", Quantity: 1, Price: price},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, created.ShipDate)
	assert.Equal(t, "2025-04-01", *created.ShipDate)

	detail, err := f.svc.GetByLink(ctx, created.UniqueLink)
	require.NoError(t, err)
	assert.Len(t, detail.Items, 3)
	require.Len(t, detail.Groups, 1)
	assert.Equal(t, []string{"Red", "Blue"}, detail.Groups[0].Colors)
	assert.Equal(t, []string{"S", "M"}, detail.Groups[0].Sizes)
	assert.Equal(t, 6, detail.Groups[0].TotalQuantity)
	assert.Equal(t, "75.00", detail.GrandTotal.StringFixed(2))
	assert.Empty(t, detail.Files)
	assert.Equal(t, "USA", detail.ShippingCountry)
}

func TestGetByLinkMissing(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.GetByLink(context.Background(), "doesnotexist")
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestListFiltersAndSorts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	a, err := f.svc.Create(ctx, CreateInput{CustomerName: "Bravo", TradeShowName: "Magic", ShipDate: "2025-05-01"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, CreateInput{CustomerName: "Alpha", TradeShowName: "Magic", IsNewCustomer: true})
	require.NoError(t, err)
	c, err := f.svc.Create(ctx, CreateInput{CustomerName: "Charlie", TradeShowName: "Coterie", ShipDate: "2025-04-01"})
	require.NoError(t, err)
	require.NoError(t, f.svc.UpdateStatus(ctx, c.ID, "shipped"))

	all, err := f.svc.List(ctx, ListFilter{SortBy: "customer_name", SortOrder: "asc"})
	require.NoError(t, err)
	require.Equal(t, 3, all.Count)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, names(all.Portals))
	assert.Equal(t, []string{"Coterie", "Magic"}, all.TradeShows)

	byDate, err := f.svc.List(ctx, ListFilter{SortBy: "ship_date", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie", "Bravo", "Alpha"}, names(byDate.Portals))

	magic, err := f.svc.List(ctx, ListFilter{TradeShow: "Magic", CustomerType: "existing"})
	require.NoError(t, err)
	require.Len(t, magic.Portals, 1)
	assert.Equal(t, a.ID, magic.Portals[0].ID)

	shipped, err := f.svc.List(ctx, ListFilter{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlie"}, names(shipped.Portals))

	limited, err := f.svc.List(ctx, ListFilter{Limit: 1, Status: "all"})
	require.NoError(t, err)
	assert.Len(t, limited.Portals, 1)

	_, err = f.svc.List(ctx, ListFilter{Status: "archived"})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func names(rows []SummaryDTO) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.CustomerName)
	}
	return out
}

func TestStatusSurfaces(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, CreateInput{CustomerName: "Acme"})
	require.NoError(t, err)

	requireCode(t, f.svc.AdminUpdateStatus(ctx, p.ID, "shipped"), pkgerrors.CodeValidation)
	requireCode(t, f.svc.AdminUpdateStatus(ctx, p.ID, "bogus"), pkgerrors.CodeValidation)
	require.NoError(t, f.svc.AdminUpdateStatus(ctx, p.ID, "completed"))
	require.NoError(t, f.svc.UpdateStatus(ctx, p.ID, "shipped"))
	requireCode(t, f.svc.UpdateStatus(ctx, uuid.New(), "active"), pkgerrors.CodeNotFound)
	requireCode(t, f.svc.UpdateStatus(ctx, uuid.Nil, "active"), pkgerrors.CodeValidation)

	var row models.Portal
	require.NoError(t, f.client.DB().First(&row, "id = ?", p.ID).Error)
	assert.Equal(t, enums.PortalStatusShipped, row.Status)
}

func TestConfirmSetsStatusAndTimestamp(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, CreateInput{CustomerName: "Acme"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Confirm(ctx, p.UniqueLink))
	detail, err := f.svc.GetByLink(ctx, p.UniqueLink)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", detail.Status)
	require.NotNil(t, detail.ConfirmedAt)
	assert.True(t, f.now.Equal(*detail.ConfirmedAt))

	requireCode(t, f.svc.Confirm(ctx, "missinglink0"), pkgerrors.CodeNotFound)
}

func TestReplaceItems(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, CreateInput{
		CustomerName: "Acme",
		Items:        []ItemInput{{StyleNumber: "OLD", Quantity: 1}},
	})
	require.NoError(t, err)

	items, err := f.svc.ReplaceItems(ctx, p.ID, []ItemInput{
		{StyleNumber: "NEW-1", Attr2: "Navy", Size: "M", Quantity: 4, Price: decimal.NewFromInt(10)},
		{StyleNumber: "NEW-2", Attr2: "Navy", Size: "L", Quantity: 1, Price: decimal.NewFromInt(12), DeliveryDate: "2025-06-01"},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "NEW-1", items[0].StyleNumber)
	assert.Equal(t, "40.00", items[0].LineTotal.StringFixed(2))
	require.NotNil(t, items[1].DeliveryDate)

	_, err = f.svc.ReplaceItems(ctx, p.ID, []ItemInput{{StyleNumber: "X", Quantity: -1}})
	requireCode(t, err, pkgerrors.CodeValidation)
	_, err = f.svc.ReplaceItems(ctx, uuid.New(), nil)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestUploadClassifiesAndNamesObjects(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, CreateInput{CustomerName: "Acme"})
	require.NoError(t, err)

	photo, err := f.svc.Upload(ctx, UploadInput{
		PortalID: p.ID,
		FileName: `C:\Users\buyer\Booth Photo.PNG`,
		Size:     int64(len(pngHeader)),
		Body:     bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, "photo", photo.FileType)
	assert.Equal(t, "image/png", photo.MimeType)
	assert.Equal(t, "Booth Photo.PNG", photo.FileName)
	keyPattern := regexp.MustCompile(fmt.Sprintf(`^%s/%d-[a-z0-9]{6}\.png$`, p.ID, f.now.UnixMilli()))
	assert.True(t, strings.HasSuffix(photo.FileURL, ".png"))

	var row models.PortalAttachment
	require.NoError(t, f.client.DB().First(&row, "id = ?", photo.ID).Error)
	assert.Regexp(t, keyPattern, row.ObjectKey)
	assert.Equal(t, pngHeader, f.store.objects[row.ObjectKey])

	doc, err := f.svc.Upload(ctx, UploadInput{
		PortalID:    p.ID,
		FileName:    "order-notes.txt",
		ContentType: "text/plain",
		Size:        11,
		Body:        strings.NewReader("hello buyer"),
	})
	require.NoError(t, err)
	assert.Equal(t, "document", doc.FileType)
	assert.Equal(t, "text/plain", doc.MimeType)

	detail, err := f.svc.GetByLink(ctx, p.UniqueLink)
	require.NoError(t, err)
	assert.Len(t, detail.Files, 2)
}

func TestUploadValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, CreateInput{CustomerName: "Acme"})
	require.NoError(t, err)

	_, err = f.svc.Upload(ctx, UploadInput{PortalID: p.ID, FileName: "big.pdf", Size: 2 << 20, Body: strings.NewReader("x")})
	requireCode(t, err, pkgerrors.CodeTooLarge)

	_, err = f.svc.Upload(ctx, UploadInput{PortalID: uuid.New(), FileName: "a.txt", Size: 1, Body: strings.NewReader("x")})
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = f.svc.Upload(ctx, UploadInput{PortalID: p.ID, FileName: "empty.txt", Body: strings.NewReader("")})
	requireCode(t, err, pkgerrors.CodeValidation)

	f.store.failPut = true
	_, err = f.svc.Upload(ctx, UploadInput{PortalID: p.ID, FileName: "a.txt", Size: 1, Body: strings.NewReader("x")})
	requireCode(t, err, pkgerrors.CodeDependency)
}

func TestDeleteCascadesAndRemovesObjects(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, CreateInput{
		CustomerName: "Acme",
		Items:        []ItemInput{{StyleNumber: "ST-1", Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = f.svc.Upload(ctx, UploadInput{PortalID: p.ID, FileName: "a.txt", Size: 1, Body: strings.NewReader("x")})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, p.ID))

	for _, m := range []any{&models.Portal{}, &models.PortalItem{}, &models.PortalAttachment{}} {
		var n int64
		require.NoError(t, f.client.DB().Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T", m)
	}
	assert.Len(t, f.store.deleted, 1)
	assert.Empty(t, f.store.objects)

	requireCode(t, f.svc.Delete(ctx, p.ID), pkgerrors.CodeNotFound)
}
