// file: internals/features/scheduling/route/scheduling_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schedCtl "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/controller"
	"github.com/CherylPlj/HRMS-sub008/internals/middlewares/auth"
)

// SchedulingRoutes: the operator surface, JWT-protected.
func SchedulingRoutes(api fiber.Router, db *gorm.DB) {
	ctl := schedCtl.New(db, validator.New())

	grp := api.Group("/schedules", auth.AuthMiddleware())

	grp.Post("/", ctl.Create)
	grp.Get("/", ctl.List)

	grp.Post("/check-conflicts", ctl.CheckConflicts)
	grp.Get("/available-teachers", ctl.AvailableTeachers)
	grp.Get("/faculty-leave-status", ctl.FacultyLeaveStatus)
	grp.Post("/assign-substitute", ctl.AssignSubstitute)
	grp.Post("/restore-original-teacher", ctl.RestoreOriginalTeacher)

	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
