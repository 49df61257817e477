// file: internals/features/scheduling/controller/availability_controller.go
package controller

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	svc "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/service"
	helper "github.com/CherylPlj/HRMS-sub008/internals/helpers"
)

/*
========================= Available teachers =========================
*/

// AvailableTeachers: GET ?day=&time=&excludeFacultyId=&subjectId=
func (ctl *ScheduleController) AvailableTeachers(c *fiber.Ctx) error {
	day := strings.TrimSpace(c.Query("day"))
	slot := strings.TrimSpace(c.Query("time"))
	if day == "" || slot == "" {
		return helper.JsonError(c, http.StatusBadRequest, "day and time are required")
	}

	q := svc.AvailabilityQuery{Day: day, Time: slot}
	if raw := strings.TrimSpace(c.Query("excludeFacultyId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "excludeFacultyId must be a UUID")
		}
		q.ExcludeFacultyID = &id
	}
	if raw := strings.TrimSpace(c.Query("subjectId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "subjectId must be a UUID")
		}
		q.SubjectID = &id
	}

	teachers, err := svc.FindAvailableTeachers(ctl.DB.WithContext(c.UserContext()), q)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":           true,
		"availableTeachers": teachers,
		"total":             len(teachers),
	})
}

/*
========================= Leave status =========================
*/

// FacultyLeaveStatus: GET ?facultyIds=<uuid>,<uuid>,... — batched absence
// check for schedule dashboards.
func (ctl *ScheduleController) FacultyLeaveStatus(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("facultyIds"))
	if raw == "" {
		return helper.JsonError(c, http.StatusBadRequest, "facultyIds is required")
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "facultyIds contains a non-UUID value: "+part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return helper.JsonError(c, http.StatusBadRequest, "facultyIds is required")
	}

	status, err := svc.LeaveStatus(ctl.DB.WithContext(c.UserContext()), ids, timeNow())
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	// string keys for JSON
	out := make(map[string]any, len(status))
	for id, entry := range status {
		out[id.String()] = entry
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":     true,
		"leaveStatus": out,
	})
}
