// file: internals/features/scheduling/model/faculty_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EmploymentStatusEnum mirrors the employment_status values HR maintains.
type EmploymentStatusEnum string

const (
	EmploymentActive       EmploymentStatusEnum = "active"
	EmploymentProbationary EmploymentStatusEnum = "probationary"
	EmploymentOnLeave      EmploymentStatusEnum = "on_leave"
	EmploymentResigned     EmploymentStatusEnum = "resigned"
	EmploymentRetired      EmploymentStatusEnum = "retired"
)

type FacultyModel struct {
	FacultyID uuid.UUID `gorm:"column:faculty_id;type:uuid;primaryKey" json:"faculty_id"`

	// user identity this teacher belongs to
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"user_id"`

	FullName string `gorm:"column:full_name;type:varchar(160);not null" json:"full_name"`

	EmploymentStatus EmploymentStatusEnum `gorm:"column:employment_status;type:varchar(20);not null;default:'active'" json:"employment_status"`
	IsActive         bool                 `gorm:"column:is_active;not null;default:true" json:"is_active"`

	// subject codes this teacher can cover; used to rank substitute candidates
	Expertise pq.StringArray `gorm:"column:expertise;type:text[]" json:"expertise,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (FacultyModel) TableName() string { return "faculties" }

func (m *FacultyModel) BeforeCreate(tx *gorm.DB) error {
	if m.FacultyID == uuid.Nil {
		m.FacultyID = uuid.New()
	}
	return nil
}

// Schedulable: employed and account active. Resigned/retired staff never enter
// the availability pool even when their rows are still around.
func (m *FacultyModel) Schedulable() bool {
	return m.IsActive &&
		m.EmploymentStatus != EmploymentResigned &&
		m.EmploymentStatus != EmploymentRetired
}

// CanTeach reports whether a subject code is in this teacher's expertise list.
// An empty list means no claim either way; callers treat that as false.
func (m *FacultyModel) CanTeach(subjectCode string) bool {
	for _, code := range m.Expertise {
		if code == subjectCode {
			return true
		}
	}
	return false
}
