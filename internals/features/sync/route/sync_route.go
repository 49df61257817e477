// file: internals/features/sync/route/sync_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/CherylPlj/HRMS-sub008/internals/configs"
	syncCtl "github.com/CherylPlj/HRMS-sub008/internals/features/sync/controller"
	"github.com/CherylPlj/HRMS-sub008/internals/middlewares/syncauth"
)

// SyncRoutes: machine-to-machine endpoints for SIS/LMS, signed-request only.
func SyncRoutes(api fiber.Router, db *gorm.DB) {
	ctl := syncCtl.New(db, validator.New())

	grp := api.Group("/sync", syncauth.SignedRequest(syncauth.Config{
		APIKeys: configs.PeerAPIKeys(),
		Secret:  configs.SyncSharedSecret,
	}))

	grp.Post("/schedules", ctl.FetchSchedules)
	grp.Post("/sections", ctl.FetchSections)
	grp.Post("/assignment", ctl.PushAssignment)
}
