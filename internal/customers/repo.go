package customers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/internal/repo"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

// Repository persists mirrored and local customers and their ship-to locations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertByExternalID(ctx context.Context, customer *models.Customer) (uuid.UUID, bool, error)
	CreateLocal(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	IDMap(ctx context.Context) (map[string]uuid.UUID, error)
	Search(ctx context.Context, query string, limit int) ([]models.Customer, error)
	ListActive(ctx context.Context, limit int) ([]models.Customer, error)
	UpsertLocation(ctx context.Context, location *models.CustomerLocation) (uuid.UUID, bool, error)
	ListLocations(ctx context.Context, filter LocationFilter) ([]models.CustomerLocation, error)
}

// LocationFilter selects locations by local id or ERP id. CustomerID wins when both are set.
type LocationFilter struct {
	CustomerID   *uuid.UUID
	AMCustomerID string
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) UpsertByExternalID(ctx context.Context, customer *models.Customer) (uuid.UUID, bool, error) {
	key := ""
	if customer.AMCustomerID != nil {
		key = *customer.AMCustomerID
	}
	return repo.UpsertByKey(r.db.WithContext(ctx), customer, "am_customer_id", key)
}

func (r *repository) CreateLocal(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	customer.IsLocalOnly = true
	customer.IsActive = true
	customer.AMCustomerID = nil
	if customer.Country == nil || strings.TrimSpace(*customer.Country) == "" {
		usa := defaultCountry
		customer.Country = &usa
	}
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) IDMap(ctx context.Context) (map[string]uuid.UUID, error) {
	return repo.IDMap(r.db.WithContext(ctx), "customers", "am_customer_id")
}

// Search matches name, email and account number case-insensitively.
func (r *repository) Search(ctx context.Context, query string, limit int) ([]models.Customer, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var out []models.Customer
	err := r.db.WithContext(ctx).
		Where("LOWER(customer_name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(account_number) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern).
		Order("customer_name ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) ListActive(ctx context.Context, limit int) ([]models.Customer, error) {
	var out []models.Customer
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("customer_name ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) UpsertLocation(ctx context.Context, location *models.CustomerLocation) (uuid.UUID, bool, error) {
	return repo.UpsertByKey(r.db.WithContext(ctx), location, "am_location_id", location.AMLocationID)
}

// ListLocations returns the main location first, then the rest by name.
func (r *repository) ListLocations(ctx context.Context, filter LocationFilter) ([]models.CustomerLocation, error) {
	q := r.db.WithContext(ctx).Model(&models.CustomerLocation{})
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	} else {
		q = q.Where("am_customer_id = ?", filter.AMCustomerID)
	}
	var out []models.CustomerLocation
	err := q.Order("is_main_location DESC").Order("location_name ASC").Find(&out).Error
	return out, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
