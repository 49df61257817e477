// file: internals/features/sync/controller/sync_controller.go
package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	schedDto "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/dto"
	schedModel "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/model"
	schedSvc "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/service"
	helper "github.com/CherylPlj/HRMS-sub008/internals/helpers"
	"github.com/CherylPlj/HRMS-sub008/internals/middlewares/syncauth"
)

/* =========================
   Controller & Constructor
   ========================= */

// SyncController serves the machine side of the SIS link. Every handler here
// sits behind syncauth.SignedRequest — by the time a request lands, the API
// key, timestamp, and signature have all passed.
type SyncController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *SyncController {
	return &SyncController{DB: db, Validate: v}
}

func peerOf(c *fiber.Ctx) string {
	peer, _ := c.Locals(syncauth.LocalPeer).(string)
	return peer
}

/* =========================
   Fetch-all dumps
   ========================= */

// FetchSchedules answers {data:"fetch-all-schedules"} with every live schedule.
func (ctl *SyncController) FetchSchedules(c *fiber.Ctx) error {
	log.Printf("[SYNC] peer=%s fetch-all-schedules", peerOf(c))

	var rows []schedModel.ScheduleModel
	if err := ctl.DB.WithContext(c.UserContext()).Order("day ASC, start_min ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	out := make([]schedDto.ScheduleResponse, 0, len(rows))
	for i := range rows {
		out = append(out, schedDto.ScheduleResponseFromModel(&rows[i]))
	}
	return helper.JsonList(c, "schedules", out, int64(len(out)))
}

// FetchSections answers {data:"fetch-all-sections"} with every live section.
func (ctl *SyncController) FetchSections(c *fiber.Ctx) error {
	log.Printf("[SYNC] peer=%s fetch-all-sections", peerOf(c))

	var rows []schedModel.ClassSectionModel
	if err := ctl.DB.WithContext(c.UserContext()).Order("name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "sections", rows, int64(len(rows)))
}

/* =========================
   Inbound assignment push
   ========================= */

type assignmentPushRequest struct {
	ScheduleID    string `json:"scheduleId" validate:"required"`
	SISScheduleID string `json:"sisScheduleId"`
	EmployeeID    string `json:"employeeId" validate:"required"`
	Assigned      bool   `json:"assigned"`
}

// PushAssignment applies an assignment change coming FROM the peer. The change
// goes through the same conflict validation as an operator edit; a clash is a
// 409 with the structured list, not a silent overwrite.
func (ctl *SyncController) PushAssignment(c *fiber.Ctx) error {
	var req assignmentPushRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	facultyID, err := uuid.Parse(strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "employeeId must be a UUID")
	}
	if !req.Assigned {
		// Unassign pushes are not part of the protocol yet; reject loudly
		// rather than guessing at semantics.
		return helper.JsonError(c, http.StatusBadRequest, "assigned=false is not supported")
	}

	log.Printf("[SYNC] peer=%s push-assignment schedule=%s employee=%s", peerOf(c), req.ScheduleID, req.EmployeeID)

	var schedule schedModel.ScheduleModel
	var conflicts []schedDto.ScheduleConflict

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := findScheduleByEitherID(tx, req.ScheduleID, req.SISScheduleID, &schedule); err != nil {
			return err
		}
		if schedule.FacultyID == facultyID {
			return nil // already in the pushed state
		}

		cs, err := schedSvc.ValidateAssignment(tx, schedSvc.ProposedAssignment{
			FacultyID:      facultyID,
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
			return errPushConflicts
		}

		schedule.FacultyID = facultyID
		return tx.Save(&schedule).Error
	})

	switch {
	case errors.Is(txErr, errPushConflicts):
		return helper.JsonErrorWithData(c, http.StatusConflict, "assignment conflicts with existing schedules",
			schedDto.ConflictCheckResponse{HasConflicts: true, Conflicts: conflicts})
	case errors.Is(txErr, schedSvc.ErrScheduleNotFound):
		return helper.JsonError(c, http.StatusNotFound, "schedule not found")
	case errors.Is(txErr, schedSvc.ErrSectionNotFound), errors.Is(txErr, schedSvc.ErrFacultyNotFound),
		errors.Is(txErr, schedSvc.ErrSubjectNotFound), errors.Is(txErr, schedSvc.ErrFacultyNotSchedulable),
		errors.Is(txErr, schedSvc.ErrInvalidDay), errors.Is(txErr, schedSvc.ErrInvalidTimeRange):
		return helper.JsonError(c, http.StatusBadRequest, txErr.Error())
	case txErr != nil:
		return helper.JsonError(c, http.StatusInternalServerError, txErr.Error())
	}

	return helper.JsonUpdated(c, "assignment applied", schedDto.ScheduleResponseFromModel(&schedule))
}

var errPushConflicts = errors.New("push conflicts")

// findScheduleByEitherID resolves the pushed id against our schedule_id first,
// then against the stored SIS mapping.
func findScheduleByEitherID(tx *gorm.DB, scheduleID, sisScheduleID string, out *schedModel.ScheduleModel) error {
	if id, err := uuid.Parse(strings.TrimSpace(scheduleID)); err == nil {
		err := tx.First(out, "schedule_id = ?", id).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	lookup := strings.TrimSpace(sisScheduleID)
	if lookup == "" {
		lookup = strings.TrimSpace(scheduleID)
	}
	err := tx.First(out, "sis_schedule_id = ?", lookup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return schedSvc.ErrScheduleNotFound
	}
	return err
}
