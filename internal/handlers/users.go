package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// UserHandler handles account administration routes
type UserHandler struct {
	DB *gorm.DB
}

// List handles GET /api/users
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	users, err := services.ListUsers(h.DB, caller)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, users, fiber.StatusOK)
}

// Get handles GET /api/users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	user, err := services.GetUser(h.DB, caller, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Update handles PATCH /api/users/:id
// @Summary Update a user
// @Description Partial update; role, assignments and active state require admin
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body services.UserUpdateInput true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	var req services.UserUpdateInput
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}
	user, err := services.UpdateUser(h.DB, caller, c.Params("id"), req)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// ChangePassword handles PUT /api/users/me/password
// @Summary Change own password
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body object true "Current and new password"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}
	if err := services.ChangePassword(h.DB, caller, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdatePreferences handles PUT /api/users/me/preferences
// @Summary Update own preferences
// @Tags Users
// @Accept json
// @Produce json
// @Param preferences body services.PreferencesInput true "Preferences"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/me/preferences [put]
func (h *UserHandler) UpdatePreferences(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	var req services.PreferencesInput
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}
	user, err := services.UpdatePreferences(h.DB, caller, req)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Deactivate handles DELETE /api/users/:id
// @Summary Deactivate a user
// @Description Flip the account off; accounts are never hard-deleted
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	if err := services.DeactivateUser(h.DB, caller, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
