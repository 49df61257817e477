package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
	syncModel "github.com/CherylPlj/HRMS-sub008/internals/features/sync/model"
)

func TestAssignSubstitute_SwapsTeacherAndQueuesSync(t *testing.T) {
	db := setupDB(t)
	original := seedFaculty(t, db, "Alice Reyes")
	sub := seedFaculty(t, db, "Ben Cruz")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	sched := seedSchedule(t, db, original, subj, sec, "Monday", "08:00-09:00")
	sisID := "SIS-42"
	sched.SISScheduleID = &sisID
	if err := db.Save(sched).Error; err != nil {
		t.Fatal(err)
	}

	got, conflicts, err := AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID:          sched.ScheduleID,
		SubstituteFacultyID: sub.FacultyID,
		SyncToSIS:           true,
		Now:                 testNow,
	})
	if err != nil || len(conflicts) != 0 {
		t.Fatalf("assign: err=%v conflicts=%+v", err, conflicts)
	}
	if got.FacultyID != sub.FacultyID {
		t.Fatalf("schedule faculty not swapped: %+v", got)
	}

	var record m.SubstituteAssignmentModel
	if err := db.First(&record, "schedule_id = ?", sched.ScheduleID).Error; err != nil {
		t.Fatalf("substitution record missing: %v", err)
	}
	if record.OriginalFacultyID != original.FacultyID || record.Status != m.SubstituteActive {
		t.Fatalf("bad record: %+v", record)
	}

	var row syncModel.SyncOutboxModel
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("outbox row missing: %v", err)
	}
	if row.Status != syncModel.OutboxPending {
		t.Errorf("outbox status = %s, want pending", row.Status)
	}
	if row.Payload["employeeId"] != sub.FacultyID.String() {
		t.Errorf("outbox payload employeeId = %v", row.Payload["employeeId"])
	}
	if row.Payload["sisScheduleId"] != sisID {
		t.Errorf("outbox payload sisScheduleId = %v", row.Payload["sisScheduleId"])
	}
}

func TestAssignSubstitute_ConflictWritesNothing(t *testing.T) {
	db := setupDB(t)
	original := seedFaculty(t, db, "Alice Reyes")
	sub := seedFaculty(t, db, "Ben Cruz")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	other := seedSection(t, db, "Grade 7 - Rosal")
	sched := seedSchedule(t, db, original, subj, sec, "Monday", "08:00-09:00")
	// substitute already teaches an overlapping slot elsewhere
	seedSchedule(t, db, sub, subj, other, "Monday", "08:30-09:30")

	got, conflicts, err := AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID:          sched.ScheduleID,
		SubstituteFacultyID: sub.FacultyID,
		Now:                 testNow,
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got != nil || len(conflicts) != 1 {
		t.Fatalf("want nil schedule and 1 conflict, got %+v / %+v", got, conflicts)
	}

	var reread m.ScheduleModel
	if err := db.First(&reread, "schedule_id = ?", sched.ScheduleID).Error; err != nil {
		t.Fatal(err)
	}
	if reread.FacultyID != original.FacultyID {
		t.Error("schedule must be untouched after conflict")
	}
	var n int64
	db.Model(&m.SubstituteAssignmentModel{}).Count(&n)
	if n != 0 {
		t.Error("no substitution record may exist after conflict")
	}
	db.Model(&syncModel.SyncOutboxModel{}).Count(&n)
	if n != 0 {
		t.Error("no outbox row may exist after conflict")
	}
}

func TestAssignSubstitute_Rejections(t *testing.T) {
	db := setupDB(t)
	original := seedFaculty(t, db, "Alice Reyes")
	sub := seedFaculty(t, db, "Ben Cruz")
	away := seedFaculty(t, db, "Carla Diaz")
	seedLeave(t, db, away,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		m.LeaveApproved)
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	sched := seedSchedule(t, db, original, subj, sec, "Monday", "08:00-09:00")

	_, _, err := AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID: uuid.New(), SubstituteFacultyID: sub.FacultyID, Now: testNow,
	})
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("unknown schedule: got %v", err)
	}

	_, _, err = AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID: sched.ScheduleID, SubstituteFacultyID: original.FacultyID, Now: testNow,
	})
	if !errors.Is(err, ErrSameTeacher) {
		t.Errorf("same teacher: got %v", err)
	}

	_, _, err = AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID: sched.ScheduleID, SubstituteFacultyID: away.FacultyID, Now: testNow,
	})
	if !errors.Is(err, ErrFacultyOnLeave) {
		t.Errorf("substitute on leave: got %v", err)
	}

	// first substitution succeeds, a second one is refused until restore
	if _, _, err := AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID: sched.ScheduleID, SubstituteFacultyID: sub.FacultyID, Now: testNow,
	}); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	third := seedFaculty(t, db, "Dan Lim")
	_, _, err = AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID: sched.ScheduleID, SubstituteFacultyID: third.FacultyID, Now: testNow,
	})
	if !errors.Is(err, ErrAlreadySubstituted) {
		t.Errorf("double substitution: got %v", err)
	}
}

func TestRestoreOriginalTeacher_FullCycle(t *testing.T) {
	db := setupDB(t)
	original := seedFaculty(t, db, "Alice Reyes")
	sub := seedFaculty(t, db, "Ben Cruz")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	sched := seedSchedule(t, db, original, subj, sec, "Monday", "08:00-09:00")

	if _, _, err := AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID: sched.ScheduleID, SubstituteFacultyID: sub.FacultyID, Now: testNow,
	}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	sisID := "SIS-42"
	got, conflicts, err := RestoreOriginalTeacher(db, RestoreOriginalInput{
		ScheduleID:        sched.ScheduleID,
		OriginalFacultyID: &original.FacultyID,
		SISScheduleID:     &sisID,
		SyncToSIS:         true,
	})
	if err != nil || len(conflicts) != 0 {
		t.Fatalf("restore: err=%v conflicts=%+v", err, conflicts)
	}
	if got.FacultyID != original.FacultyID {
		t.Fatalf("teacher not restored: %+v", got)
	}
	if got.SISScheduleID == nil || *got.SISScheduleID != sisID {
		t.Errorf("late-bound sis schedule id not stored: %v", got.SISScheduleID)
	}

	var record m.SubstituteAssignmentModel
	if err := db.First(&record, "schedule_id = ?", sched.ScheduleID).Error; err != nil {
		t.Fatal(err)
	}
	if record.Status != m.SubstituteRestored || record.ActiveTo == nil {
		t.Fatalf("record not closed: %+v", record)
	}

	var n int64
	db.Model(&syncModel.SyncOutboxModel{}).Count(&n)
	if n != 1 {
		t.Errorf("restore with sync must enqueue one message, got %d", n)
	}

	// schedule is free for a fresh substitution again
	if _, _, err := AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID: sched.ScheduleID, SubstituteFacultyID: sub.FacultyID, Now: testNow,
	}); err != nil {
		t.Errorf("re-substitution after restore: %v", err)
	}
}

func TestRestoreOriginalTeacher_Rejections(t *testing.T) {
	db := setupDB(t)
	original := seedFaculty(t, db, "Alice Reyes")
	sub := seedFaculty(t, db, "Ben Cruz")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	sched := seedSchedule(t, db, original, subj, sec, "Monday", "08:00-09:00")

	_, _, err := RestoreOriginalTeacher(db, RestoreOriginalInput{ScheduleID: sched.ScheduleID})
	if !errors.Is(err, ErrNoActiveSubstitution) {
		t.Errorf("no active substitution: got %v", err)
	}

	if _, _, err := AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID: sched.ScheduleID, SubstituteFacultyID: sub.FacultyID, Now: testNow,
	}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	wrong := uuid.New()
	_, _, err = RestoreOriginalTeacher(db, RestoreOriginalInput{
		ScheduleID: sched.ScheduleID, OriginalFacultyID: &wrong,
	})
	if !errors.Is(err, ErrOriginalMismatch) {
		t.Errorf("original mismatch: got %v", err)
	}
}

// The original may have picked up an overlapping slot while the substitution
// was active; restore must then refuse and leave everything in place.
func TestRestoreOriginalTeacher_RevalidatesConflicts(t *testing.T) {
	db := setupDB(t)
	original := seedFaculty(t, db, "Alice Reyes")
	sub := seedFaculty(t, db, "Ben Cruz")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	other := seedSection(t, db, "Grade 7 - Rosal")
	sched := seedSchedule(t, db, original, subj, sec, "Monday", "08:00-09:00")

	if _, _, err := AssignSubstitute(db, AssignSubstituteInput{
		ScheduleID: sched.ScheduleID, SubstituteFacultyID: sub.FacultyID, Now: testNow,
	}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	// original takes an overlapping class meanwhile
	seedSchedule(t, db, original, subj, other, "Monday", "08:30-09:30")

	got, conflicts, err := RestoreOriginalTeacher(db, RestoreOriginalInput{ScheduleID: sched.ScheduleID})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got != nil || len(conflicts) != 1 {
		t.Fatalf("want nil schedule and 1 conflict, got %+v / %+v", got, conflicts)
	}

	var reread m.ScheduleModel
	if err := db.First(&reread, "schedule_id = ?", sched.ScheduleID).Error; err != nil {
		t.Fatal(err)
	}
	if reread.FacultyID != sub.FacultyID {
		t.Error("schedule must still carry the substitute after refused restore")
	}
	var record m.SubstituteAssignmentModel
	if err := db.First(&record, "schedule_id = ?", sched.ScheduleID).Error; err != nil {
		t.Fatal(err)
	}
	if record.Status != m.SubstituteActive {
		t.Error("substitution record must stay active after refused restore")
	}
}
