// file: internals/features/scheduling/model/substitute_assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubstituteStatusEnum string

const (
	SubstituteActive   SubstituteStatusEnum = "active"
	SubstituteRestored SubstituteStatusEnum = "restored"
)

// SubstituteAssignmentModel records who really owns a schedule while a
// substitute teaches it. The schedule row itself only carries the current
// teacher, so this row is the single source of truth for restoration — callers
// are never trusted to remember the original id on their own.
type SubstituteAssignmentModel struct {
	SubstituteAssignmentID uuid.UUID `gorm:"column:substitute_assignment_id;type:uuid;primaryKey" json:"substitute_assignment_id"`

	ScheduleID          uuid.UUID  `gorm:"column:schedule_id;type:uuid;not null;index" json:"schedule_id"`
	OriginalFacultyID   uuid.UUID  `gorm:"column:original_faculty_id;type:uuid;not null" json:"original_faculty_id"`
	SubstituteFacultyID uuid.UUID  `gorm:"column:substitute_faculty_id;type:uuid;not null" json:"substitute_faculty_id"`
	LeaveID             *uuid.UUID `gorm:"column:leave_id;type:uuid" json:"leave_id,omitempty"`

	Status     SubstituteStatusEnum `gorm:"column:status;type:varchar(20);not null;default:'active'" json:"status"`
	ActiveFrom time.Time            `gorm:"column:active_from;not null" json:"active_from"`
	ActiveTo   *time.Time           `gorm:"column:active_to" json:"active_to,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (SubstituteAssignmentModel) TableName() string { return "substitute_assignments" }

func (m *SubstituteAssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubstituteAssignmentID == uuid.Nil {
		m.SubstituteAssignmentID = uuid.New()
	}
	return nil
}
