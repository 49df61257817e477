// file: internals/features/sync/service/outbox_service.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	m "github.com/CherylPlj/HRMS-sub008/internals/features/sync/model"
)

// SIS endpoints messages can be queued for.
const (
	EndpointAssignment = "/api/hrms/sync/assignment"
)

// EnqueueAssignmentSync stages an assignment-change push for the outbox worker.
// Call it inside the same transaction as the schedule mutation so local commit
// and queued message are atomic; delivery happens later, out of band.
func EnqueueAssignmentSync(tx *gorm.DB, scheduleID uuid.UUID, sisScheduleID *string, employeeID uuid.UUID, assigned bool) error {
	payload := datatypes.JSONMap{
		"scheduleId": scheduleID.String(),
		"employeeId": employeeID.String(),
		"assigned":   assigned,
	}
	if sisScheduleID != nil {
		payload["sisScheduleId"] = *sisScheduleID
	}
	row := m.SyncOutboxModel{
		Endpoint:      EndpointAssignment,
		Payload:       payload,
		Status:        m.OutboxPending,
		NextAttemptAt: time.Now(),
	}
	return tx.Create(&row).Error
}
