// file: internals/features/scheduling/service/conflict_service.go
package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CherylPlj/HRMS-sub008/internals/constants"
	"github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/dto"
	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
	"github.com/CherylPlj/HRMS-sub008/internals/helpers/timerange"
)

// ProposedAssignment is the tuple the conflict validator reasons about.
type ProposedAssignment struct {
	FacultyID      uuid.UUID
	SubjectID      uuid.UUID
	ClassSectionID uuid.UUID
	Day            string
	Time           string
}

// ValidateAssignment checks a proposed (teacher, subject, section, day, time)
// against every live schedule it could collide with. An empty slice means the
// assignment is safe to commit. excludeScheduleID drops one row from the
// comparison set — used when validating an in-place edit.
//
// The comparison set joins live sections and live faculty so schedule rows
// left dangling by deleted downstream entities are treated as data-integrity
// noise: excluded from comparison, counted and logged, never reported as a
// conflict and never the reason for a false "no conflict".
func ValidateAssignment(db *gorm.DB, p ProposedAssignment, excludeScheduleID *uuid.UUID) ([]dto.ScheduleConflict, error) {
	day, ok := constants.NormalizeDay(p.Day)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, p.Day)
	}
	proposed, err := timerange.Parse(p.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	// A referenced entity that no longer exists is an input error, not
	// something to silently evaluate against stale rows. Faculty additionally
	// has to be in a schedulable employment state.
	var section m.ClassSectionModel
	if err := db.First(&section, "class_section_id = ?", p.ClassSectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	if _, err := requireSchedulableFaculty(db, p.FacultyID); err != nil {
		return nil, err
	}
	var subject m.SubjectModel
	if err := db.First(&subject, "subject_id = ?", p.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	logOrphanedRows(db, day)

	conflicts := []dto.ScheduleConflict{}

	// 1) teacher exclusivity: same teacher, same day, overlapping time
	teacherRows, err := liveSchedulesOnDay(db, day, excludeScheduleID).
		Where("schedules.faculty_id = ?", p.FacultyID).
		All()
	if err != nil {
		return nil, err
	}
	for i := range teacherRows {
		if overlapsProposed(&teacherRows[i], proposed) {
			conflicts = append(conflicts, dto.NewTeacherConflict(&teacherRows[i]))
		}
	}

	// 2) section exclusivity: same section, same day, DIFFERENT teacher.
	// Same-teacher rows in the same section are already covered by check 1.
	sectionRows, err := liveSchedulesOnDay(db, day, excludeScheduleID).
		Where("schedules.class_section_id = ? AND schedules.faculty_id <> ?", p.ClassSectionID, p.FacultyID).
		All()
	if err != nil {
		return nil, err
	}
	for i := range sectionRows {
		if overlapsProposed(&sectionRows[i], proposed) {
			conflicts = append(conflicts, dto.NewSectionConflict(&sectionRows[i]))
		}
	}

	return conflicts, nil
}

// scheduleQuery is a tiny builder so both exclusivity checks share the same
// live-rows-only base query and deterministic ordering.
type scheduleQuery struct{ q *gorm.DB }

func liveSchedulesOnDay(db *gorm.DB, day string, excludeScheduleID *uuid.UUID) *scheduleQuery {
	q := db.Model(&m.ScheduleModel{}).
		Joins("JOIN class_sections cs ON cs.class_section_id = schedules.class_section_id AND cs.deleted_at IS NULL").
		Joins("JOIN faculties f ON f.faculty_id = schedules.faculty_id AND f.deleted_at IS NULL").
		Where("schedules.day = ?", day).
		Order("schedules.start_min ASC, schedules.schedule_id ASC")
	if excludeScheduleID != nil {
		q = q.Where("schedules.schedule_id <> ?", *excludeScheduleID)
	}
	return &scheduleQuery{q: q}
}

func (s *scheduleQuery) Where(query string, args ...any) *scheduleQuery {
	s.q = s.q.Where(query, args...)
	return s
}

func (s *scheduleQuery) All() ([]m.ScheduleModel, error) {
	var rows []m.ScheduleModel
	if err := s.q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// overlapsProposed re-parses the stored time; a row that cannot be parsed can
// never conflict (fail-open for comparison — the write path rejects such
// values before they are stored).
func overlapsProposed(existing *m.ScheduleModel, proposed timerange.Interval) bool {
	iv, err := existing.Interval()
	if err != nil {
		log.Printf("[INTEGRITY] schedule %s has unparseable time %q, skipped in conflict check",
			existing.ScheduleID, existing.Time)
		return false
	}
	return iv.Overlaps(proposed)
}

// logOrphanedRows surfaces dangling schedule rows for offline cleanup. They
// are never deleted inline with a user-triggered request.
func logOrphanedRows(db *gorm.DB, day string) {
	var orphans int64
	err := db.Model(&m.ScheduleModel{}).
		Joins("LEFT JOIN class_sections cs ON cs.class_section_id = schedules.class_section_id AND cs.deleted_at IS NULL").
		Where("schedules.day = ? AND cs.class_section_id IS NULL", day).
		Count(&orphans).Error
	if err != nil {
		log.Printf("[INTEGRITY] orphan scan failed: %v", err)
		return
	}
	if orphans > 0 {
		log.Printf("[INTEGRITY] %d schedule row(s) on %s reference deleted sections; excluded from conflict checks", orphans, day)
	}
}
