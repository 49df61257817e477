// file: internals/features/scheduling/model/leave_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveStatusEnum — leave rows are lifecycle-managed by the HR leave module;
// the scheduling core only reads them.
type LeaveStatusEnum string

const (
	LeavePending   LeaveStatusEnum = "pending"
	LeaveApproved  LeaveStatusEnum = "approved"
	LeaveRejected  LeaveStatusEnum = "rejected"
	LeaveCancelled LeaveStatusEnum = "cancelled"
)

type LeaveModel struct {
	LeaveID uuid.UUID `gorm:"column:leave_id;type:uuid;primaryKey" json:"leave_id"`

	FacultyID uuid.UUID `gorm:"column:faculty_id;type:uuid;not null;index" json:"faculty_id"`

	LeaveType string    `gorm:"column:leave_type;type:varchar(40)" json:"leave_type,omitempty"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null" json:"end_date"`

	Status LeaveStatusEnum `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	Reason string          `gorm:"column:reason;type:text" json:"reason,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (LeaveModel) TableName() string { return "leaves" }

func (m *LeaveModel) BeforeCreate(tx *gorm.DB) error {
	if m.LeaveID == uuid.Nil {
		m.LeaveID = uuid.New()
	}
	return nil
}

// ActiveOn: approved and the date (date-only comparison) falls inside
// [start_date, end_date].
func (m *LeaveModel) ActiveOn(t time.Time) bool {
	if m.Status != LeaveApproved {
		return false
	}
	d := dateOnly(t)
	return !d.Before(dateOnly(m.StartDate)) && !d.After(dateOnly(m.EndDate))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
