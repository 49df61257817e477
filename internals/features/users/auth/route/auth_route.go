// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authCtl "github.com/CherylPlj/HRMS-sub008/internals/features/users/auth/controller"
	"github.com/CherylPlj/HRMS-sub008/internals/middlewares"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctl := authCtl.New(db, validator.New())

	grp := api.Group("/auth")
	grp.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
}
