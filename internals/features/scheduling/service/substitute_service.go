// file: internals/features/scheduling/service/substitute_service.go
package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/dto"
	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
	syncSvc "github.com/CherylPlj/HRMS-sub008/internals/features/sync/service"
)

type AssignSubstituteInput struct {
	ScheduleID          uuid.UUID
	SubstituteFacultyID uuid.UUID
	LeaveID             *uuid.UUID
	SyncToSIS           bool
	// Now drives the "substitute currently on leave" check; zero means time.Now().
	Now time.Time
}

type RestoreOriginalInput struct {
	ScheduleID        uuid.UUID
	OriginalFacultyID *uuid.UUID // optional cross-check against the recorded original
	SISScheduleID     *string
	SyncToSIS         bool
}

// AssignSubstitute swaps a schedule's teacher to a substitute while the
// original is away. Validation, the substitution record, the schedule rewrite,
// and the outbox message all commit in one transaction; a non-empty conflict
// slice means nothing was written.
func AssignSubstitute(db *gorm.DB, in AssignSubstituteInput) (*m.ScheduleModel, []dto.ScheduleConflict, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	var schedule m.ScheduleModel
	var conflicts []dto.ScheduleConflict

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&schedule, "schedule_id = ?", in.ScheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScheduleNotFound
			}
			return err
		}
		if schedule.FacultyID == in.SubstituteFacultyID {
			return ErrSameTeacher
		}

		// One active substitution per schedule; restore before re-substituting.
		var existing m.SubstituteAssignmentModel
		err := tx.Where("schedule_id = ? AND status = ?", in.ScheduleID, m.SubstituteActive).
			First(&existing).Error
		if err == nil {
			return ErrAlreadySubstituted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		substitute, err := requireSchedulableFaculty(tx, in.SubstituteFacultyID)
		if err != nil {
			return err
		}
		away, err := activeLeavesByFaculty(tx, []uuid.UUID{substitute.FacultyID}, now)
		if err != nil {
			return err
		}
		if _, onLeave := away[substitute.FacultyID]; onLeave {
			return ErrFacultyOnLeave
		}

		cs, err := ValidateAssignment(tx, ProposedAssignment{
			FacultyID:      in.SubstituteFacultyID,
			SubjectID:      schedule.SubjectID,
			ClassSectionID: schedule.ClassSectionID,
			Day:            schedule.Day,
			Time:           schedule.Time,
		}, &schedule.ScheduleID)
		if err != nil {
			return err
		}
		if len(cs) > 0 {
			conflicts = cs
			return errConflictsFound
		}

		record := m.SubstituteAssignmentModel{
			ScheduleID:          schedule.ScheduleID,
			OriginalFacultyID:   schedule.FacultyID,
			SubstituteFacultyID: in.SubstituteFacultyID,
			LeaveID:             in.LeaveID,
			Status:              m.SubstituteActive,
			ActiveFrom:          now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		schedule.FacultyID = in.SubstituteFacultyID
		if err := tx.Save(&schedule).Error; err != nil {
			return err
		}

		if in.SyncToSIS {
			if err := syncSvc.EnqueueAssignmentSync(tx, schedule.ScheduleID, schedule.SISScheduleID, in.SubstituteFacultyID, true); err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(err, errConflictsFound) {
		return nil, conflicts, nil
	}
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[SUBSTITUTE] schedule %s: teacher swapped to %s", schedule.ScheduleID, in.SubstituteFacultyID)
	return &schedule, nil, nil
}

// RestoreOriginalTeacher reverses an active substitution, typically once the
// leave has ended. The substitution record is the source of truth for who the
// original teacher is; a payload-supplied id is only cross-checked. The
// original's conflicts ARE re-validated before the rewrite — the slot may have
// been reassigned while the substitution was active.
func RestoreOriginalTeacher(db *gorm.DB, in RestoreOriginalInput) (*m.ScheduleModel, []dto.ScheduleConflict, error) {
	var schedule m.ScheduleModel
	var conflicts []dto.ScheduleConflict

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&schedule, "schedule_id = ?", in.ScheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScheduleNotFound
			}
			return err
		}

		var record m.SubstituteAssignmentModel
		err := tx.Where("schedule_id = ? AND status = ?", in.ScheduleID, m.SubstituteActive).
			Order("active_from DESC").
			First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveSubstitution
			}
			return err
		}
		if in.OriginalFacultyID != nil && *in.OriginalFacultyID != record.OriginalFacultyID {
			return ErrOriginalMismatch
		}

		original, err := requireSchedulableFaculty(tx, record.OriginalFacultyID)
		if err != nil {
			return err
		}

		cs, err := ValidateAssignment(tx, ProposedAssignment{
			FacultyID:      original.FacultyID,
			SubjectID:      schedule.SubjectID,
			ClassSectionID: schedule.ClassSectionID,
			Day:            schedule.Day,
			Time:           schedule.Time,
		}, &schedule.ScheduleID)
		if err != nil {
			return err
		}
		if len(cs) > 0 {
			conflicts = cs
			return errConflictsFound
		}

		schedule.FacultyID = original.FacultyID
		if in.SISScheduleID != nil && schedule.SISScheduleID == nil {
			schedule.SISScheduleID = in.SISScheduleID
		}
		if err := tx.Save(&schedule).Error; err != nil {
			return err
		}

		closedAt := time.Now()
		record.Status = m.SubstituteRestored
		record.ActiveTo = &closedAt
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		if in.SyncToSIS {
			if err := syncSvc.EnqueueAssignmentSync(tx, schedule.ScheduleID, schedule.SISScheduleID, original.FacultyID, true); err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(err, errConflictsFound) {
		return nil, conflicts, nil
	}
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[SUBSTITUTE] schedule %s: original teacher %s restored", schedule.ScheduleID, schedule.FacultyID)
	return &schedule, nil, nil
}

// errConflictsFound aborts the transaction without masking the conflict list.
var errConflictsFound = errors.New("assignment conflicts found")

func requireSchedulableFaculty(tx *gorm.DB, id uuid.UUID) (*m.FacultyModel, error) {
	var f m.FacultyModel
	if err := tx.First(&f, "faculty_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFacultyNotFound, id)
		}
		return nil, err
	}
	if !f.Schedulable() {
		return nil, ErrFacultyNotSchedulable
	}
	return &f, nil
}
