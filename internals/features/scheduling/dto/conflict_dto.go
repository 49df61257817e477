// file: internals/features/scheduling/dto/conflict_dto.go
package dto

import (
	"fmt"

	"github.com/google/uuid"

	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
)

/* =========================================================
   Conflict report — request-scoped, never persisted
   ========================================================= */

type ConflictType string

const (
	ConflictTeacher ConflictType = "teacher"
	ConflictSection ConflictType = "section"
)

// ScheduleSnapshot is the slice of a schedule row a caller needs to render a
// colliding entry.
type ScheduleSnapshot struct {
	ScheduleID     uuid.UUID `json:"schedule_id"`
	FacultyID      uuid.UUID `json:"faculty_id"`
	SubjectID      uuid.UUID `json:"subject_id"`
	ClassSectionID uuid.UUID `json:"class_section_id"`
	Day            string    `json:"day"`
	Time           string    `json:"time"`
}

func SnapshotFromModel(s *m.ScheduleModel) ScheduleSnapshot {
	return ScheduleSnapshot{
		ScheduleID:     s.ScheduleID,
		FacultyID:      s.FacultyID,
		SubjectID:      s.SubjectID,
		ClassSectionID: s.ClassSectionID,
		Day:            s.Day,
		Time:           s.Time,
	}
}

type ScheduleConflict struct {
	Type                ConflictType     `json:"type"`
	Message             string           `json:"message"`
	ConflictingSchedule ScheduleSnapshot `json:"conflicting_schedule"`
}

func NewTeacherConflict(existing *m.ScheduleModel) ScheduleConflict {
	return ScheduleConflict{
		Type: ConflictTeacher,
		Message: fmt.Sprintf("teacher already assigned on %s %s (section %s)",
			existing.Day, existing.Time, existing.ClassSectionID),
		ConflictingSchedule: SnapshotFromModel(existing),
	}
}

func NewSectionConflict(existing *m.ScheduleModel) ScheduleConflict {
	return ScheduleConflict{
		Type: ConflictSection,
		Message: fmt.Sprintf("section already taught by another teacher on %s %s",
			existing.Day, existing.Time),
		ConflictingSchedule: SnapshotFromModel(existing),
	}
}

/* =========================================================
   Conflict check endpoint payloads
   ========================================================= */

type ConflictCheckRequest struct {
	FacultyID      uuid.UUID  `json:"facultyId" validate:"required"`
	SubjectID      uuid.UUID  `json:"subjectId" validate:"required"`
	ClassSectionID uuid.UUID  `json:"classSectionId" validate:"required"`
	Day            string     `json:"day" validate:"required"`
	Time           string     `json:"time" validate:"required"`
	ScheduleID     *uuid.UUID `json:"scheduleId,omitempty"`
}

type ConflictCheckResponse struct {
	HasConflicts bool               `json:"hasConflicts"`
	Conflicts    []ScheduleConflict `json:"conflicts"`
}
