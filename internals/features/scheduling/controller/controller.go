// file: internals/features/scheduling/controller/controller.go
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	svc "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/service"
	helper "github.com/CherylPlj/HRMS-sub008/internals/helpers"
)

/* =========================
   Controller & Constructor
   ========================= */

type ScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *ScheduleController {
	return &ScheduleController{DB: db, Validate: v}
}

// swappable clock for handler tests
var timeNow = time.Now

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// --- PG error mapping ---
// A constraint violation at commit time is the database catching a race the
// read-phase validator could not see; it surfaces as a conflict, never a 500.

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func mapPGError(err error) (int, string) {
	// 23P01 = exclusion_violation (overlapping time range)
	// 23503 = foreign_key_violation
	// 23505 = unique_violation
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		switch pgErr.SQLState() {
		case "23P01":
			return http.StatusConflict, "Schedule conflict: time range overlaps an existing assignment."
		case "23503":
			return http.StatusBadRequest, "Referenced record not found (FK violation)."
		case "23505":
			return http.StatusConflict, "Duplicate record (unique violation)."
		}
	}
	return http.StatusInternalServerError, err.Error()
}

// writeServiceError maps the scheduling service's error taxonomy onto HTTP.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, svc.ErrInvalidDay),
		errors.Is(err, svc.ErrInvalidTimeRange),
		errors.Is(err, svc.ErrSameTeacher):
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, svc.ErrSectionNotFound),
		errors.Is(err, svc.ErrFacultyNotFound),
		errors.Is(err, svc.ErrSubjectNotFound),
		errors.Is(err, svc.ErrScheduleNotFound):
		return helper.JsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, svc.ErrFacultyNotSchedulable),
		errors.Is(err, svc.ErrFacultyOnLeave),
		errors.Is(err, svc.ErrAlreadySubstituted),
		errors.Is(err, svc.ErrNoActiveSubstitution),
		errors.Is(err, svc.ErrOriginalMismatch):
		return helper.JsonError(c, http.StatusUnprocessableEntity, err.Error())
	}
	code, msg := mapPGError(err)
	return helper.JsonError(c, code, msg)
}
