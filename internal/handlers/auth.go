package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/config"
	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// AuthHandler handles session routes
type AuthHandler struct {
	DB   *gorm.DB
	Auth *services.AuthService
	Cfg  *config.Config
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verify credentials and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}

	user, token, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.Cfg.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.Auth.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.Cfg.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Register handles POST /api/auth/register
// @Summary Register an account
// @Description Create a user account. The first account bootstraps as admin; every registration afterwards requires an admin session.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body services.RegisterInput true "Account"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}

	// Open only while bootstrapping the very first account; after that an
	// admin session is required.
	var count int64
	if err := h.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return types.Internal("failed to count users")
	}
	if count > 0 {
		caller, err := middleware.CurrentUser(c)
		if err != nil || caller.Role != models.RoleAdmin {
			return types.Forbidden("only admins can register new accounts")
		}
	}

	user, err := h.Auth.Register(req)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusCreated)
}

// Me handles GET /api/auth/me
// @Summary Current session
// @Description Return the account behind the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}
