package audit

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/rehabflow/care-scheduler/internal/models"
)

// Logger records audit events to the structured log and, when a database
// is configured, to the audit_logs table.
type Logger struct {
	db  *gorm.DB
	log zerolog.Logger
}

func New(db *gorm.DB, log zerolog.Logger) *Logger {
	return &Logger{db: db, log: log}
}

func (l *Logger) Log(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	l.log.Info().
		Str("actor_id", ev.ActorID).
		Str("action", ev.Action).
		Str("entity", ev.Entity).
		Str("entity_id", ev.EntityID).
		RawJSON("metadata", rawOrNull(metaJSON)).
		Msg("audit")

	if l.db == nil {
		return nil
	}

	row := models.AuditLog{
		ActorID:  ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}
	return l.db.Create(&row).Error
}

func rawOrNull(s string) []byte {
	if s == "" {
		return []byte("null")
	}
	return []byte(s)
}
