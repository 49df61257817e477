// file: internals/features/scheduling/controller/substitute_controller.go
package controller

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	d "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/dto"
	svc "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/service"
	helper "github.com/CherylPlj/HRMS-sub008/internals/helpers"
)

/*
========================= Assign substitute =========================
*/

func (ctl *ScheduleController) AssignSubstitute(c *fiber.Ctx) error {
	var req d.AssignSubstituteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	schedule, conflicts, err := svc.AssignSubstitute(ctl.DB.WithContext(c.UserContext()), svc.AssignSubstituteInput{
		ScheduleID:          req.ScheduleID,
		SubstituteFacultyID: req.SubstituteFacultyID,
		LeaveID:             req.LeaveID,
		SyncToSIS:           req.SyncToSIS,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	if len(conflicts) > 0 {
		return helper.JsonErrorWithData(c, http.StatusConflict, "substitute has conflicting schedules",
			d.ConflictCheckResponse{HasConflicts: true, Conflicts: conflicts})
	}

	return helper.JsonUpdated(c, "substitute assigned", d.SubstituteResult{
		Schedule:   d.ScheduleResponseFromModel(schedule),
		SyncQueued: req.SyncToSIS,
	})
}

/*
========================= Restore original teacher =========================
*/

func (ctl *ScheduleController) RestoreOriginalTeacher(c *fiber.Ctx) error {
	var req d.RestoreOriginalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	schedule, conflicts, err := svc.RestoreOriginalTeacher(ctl.DB.WithContext(c.UserContext()), svc.RestoreOriginalInput{
		ScheduleID:        req.HRMSScheduleID,
		OriginalFacultyID: req.OriginalFacultyID,
		SISScheduleID:     req.SISScheduleID,
		SyncToSIS:         req.SyncToSIS,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	if len(conflicts) > 0 {
		return helper.JsonErrorWithData(c, http.StatusConflict, "original teacher now has conflicting schedules",
			d.ConflictCheckResponse{HasConflicts: true, Conflicts: conflicts})
	}

	return helper.JsonUpdated(c, "original teacher restored", d.SubstituteResult{
		Schedule:   d.ScheduleResponseFromModel(schedule),
		SyncQueued: req.SyncToSIS,
	})
}
