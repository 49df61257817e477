// file: internals/features/scheduling/dto/substitute_dto.go
package dto

import (
	"github.com/google/uuid"
)

type AssignSubstituteRequest struct {
	ScheduleID          uuid.UUID  `json:"scheduleId" validate:"required"`
	SubstituteFacultyID uuid.UUID  `json:"substituteFacultyId" validate:"required"`
	LeaveID             *uuid.UUID `json:"leaveId,omitempty"`
	SyncToSIS           bool       `json:"syncToSis"`
}

type RestoreOriginalRequest struct {
	HRMSScheduleID uuid.UUID `json:"hrmsScheduleId" validate:"required"`
	// Optional cross-check; the substitute_assignments row is authoritative.
	OriginalFacultyID *uuid.UUID `json:"originalFacultyId,omitempty"`
	SISScheduleID     *string    `json:"sisScheduleId,omitempty"`
	SyncToSIS         bool       `json:"syncToSis"`
}

// SubstituteResult reports both halves of a transition: the local mutation
// (always committed when present) and the sync side effect (queued, never
// blocking).
type SubstituteResult struct {
	Schedule   ScheduleResponse `json:"schedule"`
	SyncQueued bool             `json:"sync_queued"`
}
