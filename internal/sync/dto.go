package sync

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/advanceapparels/tradeshow-portal/pkg/db/models"
)

// LogEntryDTO is a sync_log row as shown on the admin dashboard.
type LogEntryDTO struct {
	ID               uuid.UUID       `json:"id"`
	SyncType         string          `json:"sync_type"`
	Source           string          `json:"source"`
	Status           string          `json:"status"`
	RecordsProcessed int             `json:"records_processed"`
	RecordsCreated   int             `json:"records_created"`
	RecordsUpdated   int             `json:"records_updated"`
	RecordsSkipped   int             `json:"records_skipped"`
	Errors           int             `json:"errors"`
	ErrorDetails     json.RawMessage `json:"error_details,omitempty"`
	DurationSeconds  *float64        `json:"duration_seconds"`
	StartedAt        time.Time       `json:"started_at"`
	CompletedAt      *time.Time      `json:"completed_at"`
}

func NewLogEntryDTOs(rows []models.SyncLog) []LogEntryDTO {
	out := make([]LogEntryDTO, 0, len(rows))
	for _, r := range rows {
		dto := LogEntryDTO{
			ID:               r.ID,
			SyncType:         r.SyncType.String(),
			Source:           r.Source.String(),
			Status:           r.Status.String(),
			RecordsProcessed: r.RecordsProcessed,
			RecordsCreated:   r.RecordsCreated,
			RecordsUpdated:   r.RecordsUpdated,
			RecordsSkipped:   r.RecordsSkipped,
			Errors:           r.Errors,
			DurationSeconds:  r.DurationSeconds,
			StartedAt:        r.StartedAt,
			CompletedAt:      r.CompletedAt,
		}
		if r.ErrorDetails != nil && json.Valid([]byte(*r.ErrorDetails)) {
			dto.ErrorDetails = json.RawMessage(*r.ErrorDetails)
		}
		out = append(out, dto)
	}
	return out
}
