package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/internal/repo"
	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

// Repository persists warehouse pick tickets and carrier shipments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertPickTicket(ctx context.Context, ticket *models.PickTicket) (uuid.UUID, bool, error)
	UpsertShipment(ctx context.Context, shipment *models.Shipment) (uuid.UUID, bool, error)
	ShipmentsForOrder(ctx context.Context, orderID uuid.UUID) ([]models.Shipment, error)
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

func (r *repository) UpsertPickTicket(ctx context.Context, ticket *models.PickTicket) (uuid.UUID, bool, error) {
	return repo.UpsertByKey(r.db.WithContext(ctx), ticket, "pick_ticket_id", ticket.PickTicketID)
}

func (r *repository) UpsertShipment(ctx context.Context, shipment *models.Shipment) (uuid.UUID, bool, error) {
	return repo.UpsertByKey(r.db.WithContext(ctx), shipment, "shipstation_id", shipment.ShipStationID)
}

func (r *repository) ShipmentsForOrder(ctx context.Context, orderID uuid.UUID) ([]models.Shipment, error) {
	var out []models.Shipment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("ship_date DESC").Find(&out).Error
	return out, err
}
