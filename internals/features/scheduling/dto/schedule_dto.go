// file: internals/features/scheduling/dto/schedule_dto.go
package dto

import (
	"github.com/google/uuid"

	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
)

/* =========================================================
   Requests
   ========================================================= */

type CreateScheduleRequest struct {
	FacultyID      uuid.UUID `json:"facultyId" validate:"required"`
	SubjectID      uuid.UUID `json:"subjectId" validate:"required"`
	ClassSectionID uuid.UUID `json:"classSectionId" validate:"required"`
	Day            string    `json:"day" validate:"required"`
	Time           string    `json:"time" validate:"required"`
	SyncToSIS      bool      `json:"syncToSis"`
}

func (r *CreateScheduleRequest) ToModel() *m.ScheduleModel {
	return &m.ScheduleModel{
		FacultyID:      r.FacultyID,
		SubjectID:      r.SubjectID,
		ClassSectionID: r.ClassSectionID,
		Day:            r.Day,
		Time:           r.Time,
	}
}

// UpdateScheduleRequest is a full replace of the assignable fields; the
// validator re-runs with the edited row excluded from the comparison set.
type UpdateScheduleRequest struct {
	FacultyID      uuid.UUID `json:"facultyId" validate:"required"`
	SubjectID      uuid.UUID `json:"subjectId" validate:"required"`
	ClassSectionID uuid.UUID `json:"classSectionId" validate:"required"`
	Day            string    `json:"day" validate:"required"`
	Time           string    `json:"time" validate:"required"`
	SyncToSIS      bool      `json:"syncToSis"`
}

/* =========================================================
   Responses
   ========================================================= */

type ScheduleResponse struct {
	ScheduleID      uuid.UUID `json:"schedule_id"`
	FacultyID       uuid.UUID `json:"faculty_id"`
	SubjectID       uuid.UUID `json:"subject_id"`
	ClassSectionID  uuid.UUID `json:"class_section_id"`
	Day             string    `json:"day"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"duration_minutes"`
	SISScheduleID   *string   `json:"sis_schedule_id,omitempty"`
}

func ScheduleResponseFromModel(s *m.ScheduleModel) ScheduleResponse {
	return ScheduleResponse{
		ScheduleID:      s.ScheduleID,
		FacultyID:       s.FacultyID,
		SubjectID:       s.SubjectID,
		ClassSectionID:  s.ClassSectionID,
		Day:             s.Day,
		Time:            s.Time,
		DurationMinutes: s.DurationMinutes,
		SISScheduleID:   s.SISScheduleID,
	}
}
