// file: internals/features/sync/model/sync_outbox_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OutboxStatusEnum string

const (
	OutboxPending OutboxStatusEnum = "pending"
	OutboxSent    OutboxStatusEnum = "sent"
	OutboxFailed  OutboxStatusEnum = "failed"
)

// SyncOutboxModel is a durable queue of messages for the SIS link. Rows are
// written in the same transaction as the local schedule mutation, so a network
// failure can delay remote agreement but never roll back local state.
type SyncOutboxModel struct {
	SyncOutboxID uuid.UUID `gorm:"column:sync_outbox_id;type:uuid;primaryKey" json:"sync_outbox_id"`

	Endpoint string            `gorm:"column:endpoint;type:varchar(120);not null" json:"endpoint"`
	Payload  datatypes.JSONMap `gorm:"column:payload;not null" json:"payload"`

	Status        OutboxStatusEnum `gorm:"column:status;type:varchar(20);not null;default:'pending';index" json:"status"`
	Attempts      int              `gorm:"column:attempts;not null;default:0" json:"attempts"`
	NextAttemptAt time.Time        `gorm:"column:next_attempt_at;not null;index" json:"next_attempt_at"`
	LastError     *string          `gorm:"column:last_error;type:text" json:"last_error,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (SyncOutboxModel) TableName() string { return "sync_outbox" }

func (m *SyncOutboxModel) BeforeCreate(tx *gorm.DB) error {
	if m.SyncOutboxID == uuid.Nil {
		m.SyncOutboxID = uuid.New()
	}
	if m.NextAttemptAt.IsZero() {
		m.NextAttemptAt = time.Now()
	}
	return nil
}
