package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
	syncModel "github.com/CherylPlj/HRMS-sub008/internals/features/sync/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&m.FacultyModel{},
		&m.SubjectModel{},
		&m.ClassSectionModel{},
		&m.ScheduleModel{},
		&m.LeaveModel{},
		&m.SubstituteAssignmentModel{},
		&syncModel.SyncOutboxModel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedFaculty(t *testing.T, db *gorm.DB, name string) *m.FacultyModel {
	t.Helper()
	f := &m.FacultyModel{
		UserID:           uuid.New(),
		FullName:         name,
		EmploymentStatus: m.EmploymentActive,
		IsActive:         true,
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("seed faculty %s: %v", name, err)
	}
	return f
}

func seedSubject(t *testing.T, db *gorm.DB, code string) *m.SubjectModel {
	t.Helper()
	s := &m.SubjectModel{Code: code, Name: code}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed subject %s: %v", code, err)
	}
	return s
}

func seedSection(t *testing.T, db *gorm.DB, name string) *m.ClassSectionModel {
	t.Helper()
	s := &m.ClassSectionModel{Name: name}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed section %s: %v", name, err)
	}
	return s
}

func seedSchedule(t *testing.T, db *gorm.DB, f *m.FacultyModel, subj *m.SubjectModel, sec *m.ClassSectionModel, day, slot string) *m.ScheduleModel {
	t.Helper()
	s := &m.ScheduleModel{
		FacultyID:      f.FacultyID,
		SubjectID:      subj.SubjectID,
		ClassSectionID: sec.ClassSectionID,
		Day:            day,
		Time:           slot,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	return s
}

func seedLeave(t *testing.T, db *gorm.DB, f *m.FacultyModel, start, end time.Time, status m.LeaveStatusEnum) *m.LeaveModel {
	t.Helper()
	l := &m.LeaveModel{
		FacultyID: f.FacultyID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed leave: %v", err)
	}
	return l
}
