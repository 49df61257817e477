// file: internals/features/scheduling/model/schedule_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CherylPlj/HRMS-sub008/internals/constants"
	"github.com/CherylPlj/HRMS-sub008/internals/helpers/timerange"
)

// ScheduleModel is one recurring teaching assignment: this teacher, this
// subject, this section, every <day> at <time>. faculty_id always holds the
// CURRENT teacher; the original during a substitution lives in
// substitute_assignments, not here.
type ScheduleModel struct {
	ScheduleID uuid.UUID `gorm:"column:schedule_id;type:uuid;primaryKey" json:"schedule_id"`

	FacultyID      uuid.UUID `gorm:"column:faculty_id;type:uuid;not null;index" json:"faculty_id"`
	SubjectID      uuid.UUID `gorm:"column:subject_id;type:uuid;not null" json:"subject_id"`
	ClassSectionID uuid.UUID `gorm:"column:class_section_id;type:uuid;not null;index" json:"class_section_id"`

	Day  string `gorm:"column:day;type:varchar(10);not null" json:"day"`
	Time string `gorm:"column:time;type:varchar(16);not null" json:"time"`

	// Normalized minute offsets, kept in sync by BeforeSave. The Postgres
	// exclusion constraints (see databases.EnsureSchedulingConstraints) range
	// over these, so they must never drift from Time.
	StartMin int `gorm:"column:start_min;not null" json:"start_min"`
	EndMin   int `gorm:"column:end_min;not null" json:"end_min"`

	DurationMinutes int `gorm:"column:duration_minutes;not null" json:"duration_minutes"`

	// SIS-side schedule row this maps to, when known
	SISScheduleID *string `gorm:"column:sis_schedule_id;type:varchar(64)" json:"sis_schedule_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (ScheduleModel) TableName() string { return "schedules" }

func (m *ScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ScheduleID == uuid.Nil {
		m.ScheduleID = uuid.New()
	}
	return nil
}

// BeforeSave normalizes day casing and derives the minute columns. Writes with
// an unparseable time never reach the table.
func (m *ScheduleModel) BeforeSave(tx *gorm.DB) error {
	day, ok := constants.NormalizeDay(m.Day)
	if !ok {
		return fmt.Errorf("schedule: invalid day %q", m.Day)
	}
	m.Day = day

	iv, err := timerange.Parse(m.Time)
	if err != nil {
		return err
	}
	m.Time = iv.String()
	m.StartMin = iv.StartMin
	m.EndMin = iv.EndMin
	m.DurationMinutes = iv.Duration()
	return nil
}

// Interval re-parses the stored time string. Rows that predate validation may
// fail; callers treat those as integrity noise, not as conflicts.
func (m *ScheduleModel) Interval() (timerange.Interval, error) {
	return timerange.Parse(m.Time)
}
