// file: internals/features/scheduling/controller/schedule_controller.go
package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	d "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/dto"
	m "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
	svc "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/service"
	syncSvc "github.com/CherylPlj/HRMS-sub008/internals/features/sync/service"
	helper "github.com/CherylPlj/HRMS-sub008/internals/helpers"
)

var errCreateConflicts = errors.New("create conflicts")

/*
========================= Create =========================
*/

// Create validates and commits in ONE transaction: two concurrent requests for
// the same slot cannot both pass the read phase and both commit — the loser
// hits the exclusion constraint and gets the same 409 a validation miss would
// produce.
func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	var req d.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Schedule.Create] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	model := req.ToModel()
	var conflicts []d.ScheduleConflict

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		cs, err := svc.ValidateAssignment(tx, svc.ProposedAssignment{
			FacultyID:      req.FacultyID,
			SubjectID:      req.SubjectID,
			ClassSectionID: req.ClassSectionID,
			Day:            req.Day,
			Time:           req.Time,
		}, nil)
		if err != nil {
			return err
		}
		if len(cs) > 0 {
			conflicts = cs
			return errCreateConflicts
		}
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if req.SyncToSIS {
			return syncSvc.EnqueueAssignmentSync(tx, model.ScheduleID, model.SISScheduleID, model.FacultyID, true)
		}
		return nil
	})

	if errors.Is(txErr, errCreateConflicts) {
		return helper.JsonErrorWithData(c, http.StatusConflict, "schedule conflicts detected",
			d.ConflictCheckResponse{HasConflicts: true, Conflicts: conflicts})
	}
	if txErr != nil {
		return writeServiceError(c, txErr)
	}
	return helper.JsonCreated(c, "schedule created", d.ScheduleResponseFromModel(model))
}

/*
========================= Update =========================
*/

func (ctl *ScheduleController) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid schedule id")
	}

	var req d.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var schedule m.ScheduleModel
	var conflicts []d.ScheduleConflict

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&schedule, "schedule_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return svc.ErrScheduleNotFound
			}
			return err
		}

		// exclude the row being edited from its own comparison set
		cs, err := svc.ValidateAssignment(tx, svc.ProposedAssignment{
			FacultyID:      req.FacultyID,
			SubjectID:      req.SubjectID,
			ClassSectionID: req.ClassSectionID,
			Day:            req.Day,
			Time:           req.Time,
		}, &id)
		if err != nil {
			return err
		}
		if len(cs) > 0 {
			conflicts = cs
			return errCreateConflicts
		}

		schedule.FacultyID = req.FacultyID
		schedule.SubjectID = req.SubjectID
		schedule.ClassSectionID = req.ClassSectionID
		schedule.Day = req.Day
		schedule.Time = req.Time
		if err := tx.Save(&schedule).Error; err != nil {
			return err
		}
		if req.SyncToSIS {
			return syncSvc.EnqueueAssignmentSync(tx, schedule.ScheduleID, schedule.SISScheduleID, schedule.FacultyID, true)
		}
		return nil
	})

	if errors.Is(txErr, errCreateConflicts) {
		return helper.JsonErrorWithData(c, http.StatusConflict, "schedule conflicts detected",
			d.ConflictCheckResponse{HasConflicts: true, Conflicts: conflicts})
	}
	if txErr != nil {
		return writeServiceError(c, txErr)
	}
	return helper.JsonUpdated(c, "schedule updated", d.ScheduleResponseFromModel(&schedule))
}

/*
========================= Read / Delete =========================
*/

func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&m.ScheduleModel{})
	if day := c.Query("day"); day != "" {
		q = q.Where("day = ?", day)
	}
	if facultyID := c.Query("facultyId"); facultyID != "" {
		q = q.Where("faculty_id = ?", facultyID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	var rows []m.ScheduleModel
	if err := q.Order("day ASC, start_min ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	out := make([]d.ScheduleResponse, 0, len(rows))
	for i := range rows {
		out = append(out, d.ScheduleResponseFromModel(&rows[i]))
	}
	return helper.JsonList(c, "schedules", out, total)
}

func (ctl *ScheduleController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid schedule id")
	}
	var schedule m.ScheduleModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&schedule, "schedule_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusNotFound, "schedule not found")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "schedule", d.ScheduleResponseFromModel(&schedule))
}

func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid schedule id")
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&m.ScheduleModel{}, "schedule_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, http.StatusNotFound, "schedule not found")
	}
	return helper.JsonDeleted(c, "schedule deleted", fiber.Map{"schedule_id": id})
}

/*
========================= Conflict check =========================
*/

// CheckConflicts is the dry-run surface: same validation, no write.
func (ctl *ScheduleController) CheckConflicts(c *fiber.Ctx) error {
	var req d.ConflictCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	conflicts, err := svc.ValidateAssignment(ctl.DB.WithContext(c.UserContext()), svc.ProposedAssignment{
		FacultyID:      req.FacultyID,
		SubjectID:      req.SubjectID,
		ClassSectionID: req.ClassSectionID,
		Day:            req.Day,
		Time:           req.Time,
	}, req.ScheduleID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonOK(c, "conflict check", d.ConflictCheckResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	})
}
