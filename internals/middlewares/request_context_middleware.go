// file: internals/middlewares/request_context_middleware.go
package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// requestTimeout bounds handler work per request (aligned with
// statement_timeout in the DB).
const requestTimeout = 5 * time.Second

// RequestContext tags every request with an id, logs its duration, and puts a
// deadline on the user context. Controllers pass c.UserContext() into GORM, so
// a request past its budget cancels its own DB work.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		start := time.Now()
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
