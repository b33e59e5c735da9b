package audit

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda/internal/models"
)

// Logger persists events into audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	entry := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: encodeMetadata(ev),
	}
	return l.db.WithContext(ctx).Create(&entry).Error
}

// encodeMetadata keeps the row even when the metadata cannot be encoded.
func encodeMetadata(ev Event) string {
	if ev.Metadata == nil {
		return ""
	}
	b, err := json.Marshal(ev.Metadata)
	if err != nil {
		log.Warn().Err(err).Str("action", ev.Action).Msg("audit metadata not encodable")
		return ""
	}
	return string(b)
}

var _ Sink = (*Logger)(nil)
