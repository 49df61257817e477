// file: internals/features/scheduling/service/availability_service.go
package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CherylPlj/HRMS-sub008/internals/constants"
	"github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/dto"
	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
	"github.com/CherylPlj/HRMS-sub008/internals/helpers/timerange"
)

// AvailabilityQuery: which slot to fill, who to skip, and optionally which
// subject the slot teaches (enables the expertise annotation).
type AvailabilityQuery struct {
	Day              string
	Time             string
	ExcludeFacultyID *uuid.UUID
	SubjectID        *uuid.UUID
	// Now is the instant "on leave" is evaluated against; zero means time.Now().
	Now time.Time
}

// FindAvailableTeachers computes the set of teachers who are simultaneously
// (a) schedulable by employment/account status, (b) free of overlapping
// schedules in the slot, and (c) not on approved leave covering today.
// Results are sorted by current load ascending so callers can favor
// less-loaded teachers when suggesting substitutes.
func FindAvailableTeachers(db *gorm.DB, q AvailabilityQuery) ([]dto.AvailableTeacher, error) {
	day, ok := constants.NormalizeDay(q.Day)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, q.Day)
	}
	slot, err := timerange.Parse(q.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	var subjectCode string
	if q.SubjectID != nil {
		var subject m.SubjectModel
		if err := db.First(&subject, "subject_id = ?", *q.SubjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSubjectNotFound
			}
			return nil, err
		}
		subjectCode = subject.Code
	}

	// Candidate pool: active accounts still employed here.
	fq := db.Where("is_active = ? AND employment_status NOT IN ?",
		true, []string{string(m.EmploymentResigned), string(m.EmploymentRetired)})
	if q.ExcludeFacultyID != nil {
		fq = fq.Where("faculty_id <> ?", *q.ExcludeFacultyID)
	}
	var candidates []m.FacultyModel
	if err := fq.Order("full_name ASC").Find(&candidates).Error; err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []dto.AvailableTeacher{}, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for i := range candidates {
		ids = append(ids, candidates[i].FacultyID)
	}

	busy, err := busyOnSlot(db, ids, day, slot)
	if err != nil {
		return nil, err
	}
	onLeave, err := activeLeavesByFaculty(db, ids, now)
	if err != nil {
		return nil, err
	}
	loads, err := scheduleLoads(db, ids)
	if err != nil {
		return nil, err
	}

	out := []dto.AvailableTeacher{}
	for i := range candidates {
		f := &candidates[i]
		if busy[f.FacultyID] {
			continue
		}
		if _, away := onLeave[f.FacultyID]; away {
			continue
		}
		entry := dto.AvailableTeacher{
			FacultyID:   f.FacultyID,
			FullName:    f.FullName,
			CurrentLoad: loads[f.FacultyID],
		}
		if subjectCode != "" {
			covers := f.CanTeach(subjectCode)
			entry.CoversSubject = &covers
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrentLoad < out[j].CurrentLoad
	})
	return out, nil
}

// LeaveStatus batches the "is this teacher absent right now" check for many
// teachers in one pass. Every requested id gets an entry, absent or not.
func LeaveStatus(db *gorm.DB, facultyIDs []uuid.UUID, now time.Time) (map[uuid.UUID]dto.FacultyLeaveStatus, error) {
	if now.IsZero() {
		now = time.Now()
	}
	out := make(map[uuid.UUID]dto.FacultyLeaveStatus, len(facultyIDs))
	for _, id := range facultyIDs {
		out[id] = dto.FacultyLeaveStatus{IsOnLeave: false}
	}
	if len(facultyIDs) == 0 {
		return out, nil
	}

	active, err := activeLeavesByFaculty(db, facultyIDs, now)
	if err != nil {
		return nil, err
	}
	for id, leave := range active {
		out[id] = dto.FacultyLeaveStatus{IsOnLeave: true, Leave: leave}
	}
	return out, nil
}

// busyOnSlot: faculty ids with a live schedule overlapping the slot that day.
// Rows pointing at deleted sections stay out of the comparison, matching the
// conflict validator.
func busyOnSlot(db *gorm.DB, ids []uuid.UUID, day string, slot timerange.Interval) (map[uuid.UUID]bool, error) {
	var rows []m.ScheduleModel
	err := db.Model(&m.ScheduleModel{}).
		Joins("JOIN class_sections cs ON cs.class_section_id = schedules.class_section_id AND cs.deleted_at IS NULL").
		Where("schedules.day = ? AND schedules.faculty_id IN ?", day, ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	busy := map[uuid.UUID]bool{}
	for i := range rows {
		if overlapsProposed(&rows[i], slot) {
			busy[rows[i].FacultyID] = true
		}
	}
	return busy, nil
}

// activeLeavesByFaculty narrows to approved leaves in SQL, then applies the
// date-only window in Go so date semantics don't depend on the SQL dialect.
func activeLeavesByFaculty(db *gorm.DB, ids []uuid.UUID, now time.Time) (map[uuid.UUID]*m.LeaveModel, error) {
	var leaves []m.LeaveModel
	err := db.Where("faculty_id IN ? AND status = ?", ids, m.LeaveApproved).
		Order("start_date ASC").
		Find(&leaves).Error
	if err != nil {
		return nil, err
	}
	active := map[uuid.UUID]*m.LeaveModel{}
	for i := range leaves {
		if leaves[i].ActiveOn(now) {
			if _, seen := active[leaves[i].FacultyID]; !seen {
				active[leaves[i].FacultyID] = &leaves[i]
			}
		}
	}
	return active, nil
}

func scheduleLoads(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	type row struct {
		FacultyID uuid.UUID
		N         int64
	}
	var rows []row
	err := db.Model(&m.ScheduleModel{}).
		Select("faculty_id, COUNT(*) AS n").
		Where("faculty_id IN ?", ids).
		Group("faculty_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	loads := map[uuid.UUID]int64{}
	for _, r := range rows {
		loads[r.FacultyID] = r.N
	}
	return loads, nil
}
