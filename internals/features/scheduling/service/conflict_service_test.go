package service

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/dto"
	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
)

// Scenario: teacher already booked Monday 08:00-09:00; proposing an
// overlapping Monday slot for the same teacher yields one teacher conflict.
func TestValidateAssignment_TeacherConflict(t *testing.T) {
	db := setupDB(t)
	f1 := seedFaculty(t, db, "Alice Reyes")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	seedSchedule(t, db, f1, subj, sec, "Monday", "08:00-09:00")

	conflicts, err := ValidateAssignment(db, ProposedAssignment{
		FacultyID:      f1.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "08:30-09:30",
	}, nil)
	if err != nil {
		t.Fatalf("ValidateAssignment: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d: %+v", len(conflicts), conflicts)
	}
	if conflicts[0].Type != dto.ConflictTeacher {
		t.Errorf("expected teacher conflict, got %q", conflicts[0].Type)
	}
}

// Scenario: section taught by teacher 1 Monday 08:00-09:00; a different
// teacher proposed into the same section at 08:30-09:00 yields one section
// conflict.
func TestValidateAssignment_SectionConflict(t *testing.T) {
	db := setupDB(t)
	f1 := seedFaculty(t, db, "Alice Reyes")
	f2 := seedFaculty(t, db, "Ben Cruz")
	subj := seedSubject(t, db, "SCI7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	seedSchedule(t, db, f1, subj, sec, "Monday", "08:00-09:00")

	conflicts, err := ValidateAssignment(db, ProposedAssignment{
		FacultyID:      f2.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "08:30-09:00",
	}, nil)
	if err != nil {
		t.Fatalf("ValidateAssignment: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d: %+v", len(conflicts), conflicts)
	}
	if conflicts[0].Type != dto.ConflictSection {
		t.Errorf("expected section conflict, got %q", conflicts[0].Type)
	}
}

// Scenario: same teacher, same section, back-to-back slots → zero conflicts.
func TestValidateAssignment_BackToBackIsClean(t *testing.T) {
	db := setupDB(t)
	f1 := seedFaculty(t, db, "Alice Reyes")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	seedSchedule(t, db, f1, subj, sec, "Monday", "08:00-09:00")

	conflicts, err := ValidateAssignment(db, ProposedAssignment{
		FacultyID:      f1.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "09:00-10:00",
	}, nil)
	if err != nil {
		t.Fatalf("ValidateAssignment: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %+v", conflicts)
	}
}

// Different day never conflicts.
func TestValidateAssignment_DifferentDay(t *testing.T) {
	db := setupDB(t)
	f1 := seedFaculty(t, db, "Alice Reyes")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	seedSchedule(t, db, f1, subj, sec, "Monday", "08:00-09:00")

	conflicts, err := ValidateAssignment(db, ProposedAssignment{
		FacultyID:      f1.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Tuesday",
		Time:           "08:00-09:00",
	}, nil)
	if err != nil {
		t.Fatalf("ValidateAssignment: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %+v", conflicts)
	}
}

// Validation is a pure read: running it twice on an unmodified store yields
// an identical report.
func TestValidateAssignment_Idempotent(t *testing.T) {
	db := setupDB(t)
	f1 := seedFaculty(t, db, "Alice Reyes")
	f2 := seedFaculty(t, db, "Ben Cruz")
	subj := seedSubject(t, db, "ENG7")
	sec := seedSection(t, db, "Grade 7 - Rosal")
	seedSchedule(t, db, f1, subj, sec, "Friday", "10:00-11:00")
	seedSchedule(t, db, f2, subj, sec, "Friday", "10:30-11:30")

	proposed := ProposedAssignment{
		FacultyID:      f1.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Friday",
		Time:           "10:15-11:15",
	}
	first, err := ValidateAssignment(db, proposed, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ValidateAssignment(db, proposed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ across identical runs:\n%+v\n%+v", first, second)
	}
	if len(first) != 2 { // one teacher clash (own slot), one section clash (f2's slot)
		t.Errorf("expected 2 conflicts, got %d: %+v", len(first), first)
	}
}

// A deleted section is an input error up front, never evaluated against stale rows.
func TestValidateAssignment_DeletedSectionRejected(t *testing.T) {
	db := setupDB(t)
	f1 := seedFaculty(t, db, "Alice Reyes")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	if err := db.Delete(sec).Error; err != nil {
		t.Fatal(err)
	}

	_, err := ValidateAssignment(db, ProposedAssignment{
		FacultyID:      f1.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "08:00-09:00",
	}, nil)
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

// Schedule rows referencing a deleted section are integrity noise: excluded
// from the comparison set, not reported as conflicts.
func TestValidateAssignment_OrphanRowsExcluded(t *testing.T) {
	db := setupDB(t)
	f1 := seedFaculty(t, db, "Alice Reyes")
	subj := seedSubject(t, db, "MATH7")
	deadSec := seedSection(t, db, "Grade 8 - Closed")
	liveSec := seedSection(t, db, "Grade 7 - Sampaguita")
	seedSchedule(t, db, f1, subj, deadSec, "Monday", "08:00-09:00")
	if err := db.Delete(deadSec).Error; err != nil {
		t.Fatal(err)
	}

	// Same teacher, overlapping time — but the only row that would collide
	// points at a deleted section, so it must not count.
	conflicts, err := ValidateAssignment(db, ProposedAssignment{
		FacultyID:      f1.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: liveSec.ClassSectionID,
		Day:            "Monday",
		Time:           "08:30-09:30",
	}, nil)
	if err != nil {
		t.Fatalf("ValidateAssignment: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("orphan row must not produce conflicts, got %+v", conflicts)
	}
}

// excludeScheduleID lets an in-place edit skip its own row.
func TestValidateAssignment_ExcludeSelf(t *testing.T) {
	db := setupDB(t)
	f1 := seedFaculty(t, db, "Alice Reyes")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")
	existing := seedSchedule(t, db, f1, subj, sec, "Monday", "08:00-09:00")

	conflicts, err := ValidateAssignment(db, ProposedAssignment{
		FacultyID:      f1.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "08:00-09:30",
	}, &existing.ScheduleID)
	if err != nil {
		t.Fatalf("ValidateAssignment: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("editing a schedule must not conflict with itself, got %+v", conflicts)
	}
}

func TestValidateAssignment_InputErrors(t *testing.T) {
	db := setupDB(t)
	sec := seedSection(t, db, "Grade 7 - Sampaguita")

	_, err := ValidateAssignment(db, ProposedAssignment{
		FacultyID:      uuid.New(),
		SubjectID:      uuid.New(),
		ClassSectionID: sec.ClassSectionID,
		Day:            "Funday",
		Time:           "08:00-09:00",
	}, nil)
	if !errors.Is(err, ErrInvalidDay) {
		t.Errorf("expected ErrInvalidDay, got %v", err)
	}

	_, err = ValidateAssignment(db, ProposedAssignment{
		FacultyID:      uuid.New(),
		SubjectID:      uuid.New(),
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "09:00-08:00",
	}, nil)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("expected ErrInvalidTimeRange, got %v", err)
	}
}

// A faculty or subject id that points at nothing is an input error up front,
// same as a deleted section — never "validated clean".
func TestValidateAssignment_GhostReferencesRejected(t *testing.T) {
	db := setupDB(t)
	f1 := seedFaculty(t, db, "Alice Reyes")
	subj := seedSubject(t, db, "MATH7")
	sec := seedSection(t, db, "Grade 7 - Sampaguita")

	_, err := ValidateAssignment(db, ProposedAssignment{
		FacultyID:      uuid.New(),
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "08:00-09:00",
	}, nil)
	if !errors.Is(err, ErrFacultyNotFound) {
		t.Errorf("unknown faculty: expected ErrFacultyNotFound, got %v", err)
	}

	_, err = ValidateAssignment(db, ProposedAssignment{
		FacultyID:      f1.FacultyID,
		SubjectID:      uuid.New(),
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "08:00-09:00",
	}, nil)
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("unknown subject: expected ErrSubjectNotFound, got %v", err)
	}

	gone := seedFaculty(t, db, "Ben Cruz")
	if err := db.Delete(gone).Error; err != nil {
		t.Fatal(err)
	}
	_, err = ValidateAssignment(db, ProposedAssignment{
		FacultyID:      gone.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "08:00-09:00",
	}, nil)
	if !errors.Is(err, ErrFacultyNotFound) {
		t.Errorf("soft-deleted faculty: expected ErrFacultyNotFound, got %v", err)
	}

	retired := seedFaculty(t, db, "Carla Diaz")
	retired.EmploymentStatus = m.EmploymentRetired
	if err := db.Save(retired).Error; err != nil {
		t.Fatal(err)
	}
	_, err = ValidateAssignment(db, ProposedAssignment{
		FacultyID:      retired.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            "Monday",
		Time:           "08:00-09:00",
	}, nil)
	if !errors.Is(err, ErrFacultyNotSchedulable) {
		t.Errorf("retired faculty: expected ErrFacultyNotSchedulable, got %v", err)
	}
}
