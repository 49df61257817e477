// internals/middlewares/syncauth/signed_request_middleware.go
package syncauth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CherylPlj/HRMS-sub008/internals/features/sync/signature"
)

const (
	HeaderTimestamp = "x-timestamp"
	HeaderSignature = "x-signature"

	// LocalPeer holds the authenticated peer name ("sis"/"lms"/"hrms") for handlers.
	LocalPeer = "sync_peer"
)

// Config for the signed-request gate. APIKeys maps raw key → peer name.
type Config struct {
	APIKeys map[string]string
	Secret  string
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// SignedRequest authenticates machine-to-machine calls: bearer API key in the
// allow-list, fresh x-timestamp, and an HMAC signature over the raw body.
// The payload is not parsed until all three checks pass.
func SignedRequest(cfg Config) fiber.Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		apiKey := extractBearerKey(c)
		if apiKey == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing API key")
		}
		peer, ok := cfg.APIKeys[apiKey]
		if !ok {
			log.Printf("[SYNC] rejected request with unknown API key from %s", c.IP())
			return fiber.NewError(fiber.StatusUnauthorized, "unknown API key")
		}

		ts := strings.TrimSpace(c.Get(HeaderTimestamp))
		if err := signature.CheckFreshness(ts, now()); err != nil {
			log.Printf("[SYNC] rejected request from peer=%s: %v", peer, err)
			return fiber.NewError(fiber.StatusUnauthorized, "stale or invalid timestamp")
		}

		sig := strings.TrimSpace(c.Get(HeaderSignature))
		if sig == "" || !signature.Verify(cfg.Secret, c.Body(), ts, sig) {
			log.Printf("[SYNC] rejected request from peer=%s: signature mismatch", peer)
			return fiber.NewError(fiber.StatusUnauthorized, "invalid signature")
		}

		c.Locals(LocalPeer, peer)
		return c.Next()
	}
}

func extractBearerKey(c *fiber.Ctx) string {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[len("bearer "):])
	}
	return ""
}
