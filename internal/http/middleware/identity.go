package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// CallerIdentityLocalKey is the key used to store the caller identity
	// in Fiber's context locals.
	CallerIdentityLocalKey = "caller_identity"
)

// Identity extracts the opaque caller identity from the Authorization
// header (Bearer scheme) and stores it in context locals.
//
// The token is supplied by an external, trusted authentication layer and
// is not verified here; the registry treats it as an unforgeable opaque
// value. Requests without one are rejected before any handler runs.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if auth == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing caller identity")
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		c.Locals(CallerIdentityLocalKey, parts[1])
		return c.Next()
	}
}

// CallerIdentity returns the identity stored by Identity, or "" when the
// middleware did not run.
func CallerIdentity(c *fiber.Ctx) string {
	if v := c.Locals(CallerIdentityLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
