package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// NotificationHandler handles the attention counter routes
type NotificationHandler struct {
	DB *gorm.DB
}

// Summary handles GET /api/notifications/summary
// @Summary Attention counters
// @Description Count overdue and upcoming unpaid expenses for the caller's ventures
// @Tags Notifications
// @Produce json
// @Success 200 {object} services.NotificationSummary
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /notifications/summary [get]
func (h *NotificationHandler) Summary(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	summary, err := services.BuildNotificationSummary(h.DB, caller)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, summary, fiber.StatusOK)
}
