// file: internals/features/scheduling/model/class_section_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassSectionModel struct {
	ClassSectionID uuid.UUID `gorm:"column:class_section_id;type:uuid;primaryKey" json:"class_section_id"`

	Name       string `gorm:"column:name;type:varchar(120);not null" json:"name"`
	GradeLevel string `gorm:"column:grade_level;type:varchar(40)" json:"grade_level,omitempty"`

	// SIS-side identifier for this section, when known
	SISSectionID *string `gorm:"column:sis_section_id;type:varchar(64)" json:"sis_section_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }

func (m *ClassSectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSectionID == uuid.Nil {
		m.ClassSectionID = uuid.New()
	}
	return nil
}
