package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestobra/gestobra-api/internal/config"
	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
)

// Locals keys set by the auth middleware.
const (
	LocalUser = "currentUser"
)

// AuthUser validates the session cookie and loads the account into locals.
// Any active account passes.
func AuthUser(auth *services.AuthService, cfg *config.Config) fiber.Handler {
	return authorize(auth, cfg, nil)
}

// AuthManager requires a manager or admin session.
func AuthManager(auth *services.AuthService, cfg *config.Config) fiber.Handler {
	return authorize(auth, cfg, []string{models.RoleAdmin, models.RoleManager})
}

// AuthAdmin requires an admin session.
func AuthAdmin(auth *services.AuthService, cfg *config.Config) fiber.Handler {
	return authorize(auth, cfg, []string{models.RoleAdmin})
}

// OptionalAuth loads the account into locals when a valid session cookie is
// present, and lets the request through either way. Handlers that behave
// differently for authenticated callers read the result via CurrentUser.
func OptionalAuth(auth *services.AuthService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(cfg.SessionCookieName)
		if cookie != "" {
			if claims, err := auth.ParseToken(cookie); err == nil {
				if user, err := auth.CurrentUser(claims.UserID); err == nil {
					c.Locals(LocalUser, user)
				}
			}
		}
		return c.Next()
	}
}

// authorize performs the authorization check
func authorize(auth *services.AuthService, cfg *config.Config, roles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(cfg.SessionCookieName)
		if cookie == "" {
			return types.Unauthenticated("session cookie not found")
		}

		claims, err := auth.ParseToken(cookie)
		if err != nil {
			return err
		}

		// The role check uses the live account, not the token claim, so a
		// demotion takes effect on the next request.
		user, err := auth.CurrentUser(claims.UserID)
		if err != nil {
			return err
		}

		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if user.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				return types.Forbidden("insufficient role for this operation")
			}
		}

		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// CurrentUser reads the authenticated account set by the auth middleware.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(LocalUser).(*models.User)
	if !ok || user == nil {
		return nil, types.Unauthenticated("no authenticated user in request context")
	}
	return user, nil
}
