package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gestobra/gestobra-api/internal/types"
)

// LocalAPIVersion is the locals key holding the negotiated API version.
const LocalAPIVersion = "apiVersion"

// CurrentAPIVersion is the version this build serves.
const CurrentAPIVersion = "1.0.0"

// VersionMiddleware negotiates the X-Api-Version header: aliases expand to
// the full version, unsupported majors are rejected, and the negotiated
// version is echoed on the response.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", CurrentAPIVersion)
		switch version {
		case "1", "1.0":
			version = CurrentAPIVersion
		}
		if !strings.HasPrefix(version, "1.") {
			return types.BadRequest("unsupported api version: " + version)
		}

		c.Locals(LocalAPIVersion, version)
		c.Set("X-Api-Version", version)
		return c.Next()
	}
}
