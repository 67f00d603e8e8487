package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/advanceapparels/tradeshow-portal/pkg/enums"
)

// SyncLog is the append-only audit row for one sync invocation.
type SyncLog struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	SyncType         enums.SyncKind   `gorm:"column:sync_type;not null;index"`
	Source           enums.SyncSource `gorm:"column:source;not null"`
	Status           enums.SyncStatus `gorm:"column:status;not null"`
	RecordsProcessed int              `gorm:"column:records_processed;not null"`
	RecordsCreated   int              `gorm:"column:records_created;not null"`
	RecordsUpdated   int              `gorm:"column:records_updated;not null"`
	RecordsSkipped   int              `gorm:"column:records_skipped;not null"`
	Errors           int              `gorm:"column:errors;not null"`
	ErrorDetails     *string          `gorm:"column:error_details"`
	DurationSeconds  *float64         `gorm:"column:duration_seconds"`
	StartedAt        time.Time        `gorm:"column:started_at;not null"`
	CompletedAt      *time.Time       `gorm:"column:completed_at"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (SyncLog) TableName() string { return "sync_log" }

func (s *SyncLog) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
