// file: internals/features/scheduling/dto/availability_dto.go
package dto

import (
	"github.com/google/uuid"

	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
)

// AvailableTeacher annotates a free teacher with a load signal. CurrentLoad is
// the teacher's total schedule count — a tie-break for the caller, not a cap
// enforced here. CoversSubject is only set when the query named a subject.
type AvailableTeacher struct {
	FacultyID     uuid.UUID `json:"faculty_id"`
	FullName      string    `json:"full_name"`
	CurrentLoad   int64     `json:"current_load"`
	CoversSubject *bool     `json:"covers_subject,omitempty"`
}

// FacultyLeaveStatus is one entry of the batched leave-status query used by
// schedule dashboards to flag absent teachers.
type FacultyLeaveStatus struct {
	IsOnLeave bool          `json:"isOnLeave"`
	Leave     *m.LeaveModel `json:"leave,omitempty"`
}
