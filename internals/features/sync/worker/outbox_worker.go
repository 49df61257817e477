// file: internals/features/sync/worker/outbox_worker.go
package worker

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CherylPlj/HRMS-sub008/internals/features/sync/client"
	m "github.com/CherylPlj/HRMS-sub008/internals/features/sync/model"
)

const (
	drainInterval = 30 * time.Second
	batchSize     = 20
	maxAttempts   = 8
	maxBackoff    = 60 * time.Minute
)

// StartSyncOutboxWorker drains pending outbox rows on a loop. Transport and
// server-side failures back off and retry (each retry is re-signed with a
// fresh timestamp); auth-class rejections mark the row failed immediately
// since replaying them can never succeed.
func StartSyncOutboxWorker(db *gorm.DB, sis *client.SISClient) {
	go func() {
		for {
			drainOnce(db, sis)
			time.Sleep(drainInterval)
		}
	}()
}

func drainOnce(db *gorm.DB, sis *client.SISClient) {
	var due []m.SyncOutboxModel
	err := db.Where("status = ? AND next_attempt_at <= ?", m.OutboxPending, time.Now()).
		Order("next_attempt_at ASC").
		Limit(batchSize).
		Find(&due).Error
	if err != nil {
		log.Printf("[OUTBOX] fetch failed: %v", err)
		return
	}
	for i := range due {
		deliver(db, sis, &due[i])
	}
}

func deliver(db *gorm.DB, sis *client.SISClient, row *m.SyncOutboxModel) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := send(ctx, sis, row)
	row.Attempts++

	switch {
	case err == nil:
		row.Status = m.OutboxSent
		row.LastError = nil
		log.Printf("[OUTBOX] %s delivered to %s after %d attempt(s)", row.SyncOutboxID, row.Endpoint, row.Attempts)
	case client.IsAuthRejection(err):
		row.Status = m.OutboxFailed
		msg := err.Error()
		row.LastError = &msg
		log.Printf("[OUTBOX] %s failed permanently (auth rejection): %v", row.SyncOutboxID, err)
	case row.Attempts >= maxAttempts:
		row.Status = m.OutboxFailed
		msg := err.Error()
		row.LastError = &msg
		log.Printf("[OUTBOX] %s failed after %d attempts: %v", row.SyncOutboxID, row.Attempts, err)
	default:
		msg := err.Error()
		row.LastError = &msg
		row.NextAttemptAt = time.Now().Add(backoff(row.Attempts))
		log.Printf("[OUTBOX] %s attempt %d failed, retrying at %s: %v",
			row.SyncOutboxID, row.Attempts, row.NextAttemptAt.Format(time.RFC3339), err)
	}

	if err := db.Save(row).Error; err != nil {
		log.Printf("[OUTBOX] save failed for %s: %v", row.SyncOutboxID, err)
	}
}

func send(ctx context.Context, sis *client.SISClient, row *m.SyncOutboxModel) error {
	payload := client.AssignmentSync{
		ScheduleID: stringField(row.Payload, "scheduleId"),
		EmployeeID: stringField(row.Payload, "employeeId"),
	}
	if v, ok := row.Payload["sisScheduleId"].(string); ok {
		payload.SISScheduleID = v
	}
	if v, ok := row.Payload["assigned"].(bool); ok {
		payload.Assigned = v
	}
	if _, err := uuid.Parse(payload.ScheduleID); err != nil {
		return err
	}
	return sis.SyncAssignment(ctx, payload)
}

func stringField(p map[string]any, key string) string {
	v, _ := p[key].(string)
	return v
}

// backoff: 2^n minutes, capped.
func backoff(attempts int) time.Duration {
	d := time.Minute << uint(attempts)
	if d > maxBackoff || d <= 0 {
		return maxBackoff
	}
	return d
}
