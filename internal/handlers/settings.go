package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// SettingsHandler handles the application settings singleton
type SettingsHandler struct {
	DB       *gorm.DB
	Settings *services.SettingsService
}

// Get handles GET /api/settings
// @Summary Read application settings
// @Description Return branding plus credential presence flags; credentials are never returned
// @Tags Settings
// @Produce json
// @Success 200 {object} services.SettingsView
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	view, err := h.Settings.Get(caller)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, view, fiber.StatusOK)
}

// Update handles PUT /api/settings
// @Summary Update application settings
// @Description Upsert the settings singleton; non-empty credential fields are encrypted and replace the stored value
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body services.SettingsInput true "Settings"
// @Success 200 {object} services.SettingsView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	var req services.SettingsInput
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}
	view, err := h.Settings.Update(caller, req)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, view, fiber.StatusOK)
}

// IntegrationLogs handles GET /api/settings/integration-logs
// @Summary Recent integration audit rows
// @Tags Settings
// @Produce json
// @Param limit query int false "Max rows"
// @Success 200 {array} models.IntegrationLog
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /settings/integration-logs [get]
func (h *SettingsHandler) IntegrationLogs(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	logs, err := services.ListIntegrationLogs(h.DB, caller, c.QueryInt("limit", 100))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, logs, fiber.StatusOK)
}
