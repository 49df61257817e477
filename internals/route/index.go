// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schedRoute "github.com/CherylPlj/HRMS-sub008/internals/features/scheduling/route"
	syncRoute "github.com/CherylPlj/HRMS-sub008/internals/features/sync/route"
	authRoute "github.com/CherylPlj/HRMS-sub008/internals/features/users/auth/route"
)

// SetupRoutes mounts every route group under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)
	schedRoute.SchedulingRoutes(api, db)
	syncRoute.SyncRoutes(api, db)
}
