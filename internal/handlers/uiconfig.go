package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestobra/gestobra-api/internal/authz"
	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/types"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// UIConfigHandler serves the role capability table the frontend renders from
type UIConfigHandler struct{}

// ForModule handles GET /api/ui-config/:module
// @Summary Module capability for the caller's role
// @Tags UIConfig
// @Produce json
// @Param module path string true "Module name"
// @Success 200 {object} authz.Capability
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /ui-config/{module} [get]
func (h *UIConfigHandler) ForModule(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	cap, ok := authz.ForModule(caller.Role, c.Params("module"))
	if !ok {
		return types.NotFound("unknown module: " + c.Params("module"))
	}
	return utils.SuccessResponse(c, cap, fiber.StatusOK)
}

// ForRole handles GET /api/ui-config
// @Summary All module capabilities for the caller's role
// @Tags UIConfig
// @Produce json
// @Success 200 {array} authz.Capability
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /ui-config [get]
func (h *UIConfigHandler) ForRole(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, authz.ForRole(caller.Role), fiber.StatusOK)
}
