package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// ReportHandler handles aggregation routes. Reports degrade gracefully: an
// internal failure returns a zeroed payload with 200 so dashboards render
// empty instead of breaking. Caller errors (bad filter, forbidden venture)
// still surface as errors.
type ReportHandler struct {
	DB *gorm.DB
}

// degraded reports whether the error is an internal failure that should be
// absorbed into a zeroed payload.
func degraded(err error) bool {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return ce.Type == types.ErrInternal
	}
	return false
}

// Categories handles GET /api/reports/categories
// @Summary Category breakdown
// @Description Sum expenses per canonical category; every category is always present
// @Tags Reports
// @Produce json
// @Param empreendimento query string false "Venture ID or 'todos'"
// @Param status query string false "Status"
// @Param category query string false "Category"
// @Param q query string false "Free-text search on the description"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} services.CategoryTotal
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	filter, err := parseReportFilter(c)
	if err != nil {
		return err
	}

	breakdown, err := services.CategoryBreakdown(h.DB, caller, filter)
	if err != nil {
		if degraded(err) {
			log.Printf("category report degraded to zeroed payload: %v", err)
			return utils.SuccessResponse(c, services.ZeroCategoryBreakdown(), fiber.StatusOK)
		}
		return err
	}
	return utils.SuccessResponse(c, breakdown, fiber.StatusOK)
}

// Monthly handles GET /api/reports/monthly
// @Summary Monthly breakdown
// @Description Sum expenses per transaction month; all twelve months are always present
// @Tags Reports
// @Produce json
// @Param empreendimento query string false "Venture ID or 'todos'"
// @Param status query string false "Status"
// @Param category query string false "Category"
// @Param q query string false "Free-text search on the description"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} services.MonthlyTotal
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	filter, err := parseReportFilter(c)
	if err != nil {
		return err
	}

	breakdown, err := services.MonthlyBreakdown(h.DB, caller, filter)
	if err != nil {
		if degraded(err) {
			log.Printf("monthly report degraded to zeroed payload: %v", err)
			return utils.SuccessResponse(c, services.ZeroMonthlyBreakdown(), fiber.StatusOK)
		}
		return err
	}
	return utils.SuccessResponse(c, breakdown, fiber.StatusOK)
}

// Summary handles GET /api/reports/summary
// @Summary Headline totals
// @Description Total, paid and pending sums for the matching expenses
// @Tags Reports
// @Produce json
// @Param empreendimento query string false "Venture ID or 'todos'"
// @Param status query string false "Status"
// @Param category query string false "Category"
// @Param q query string false "Free-text search on the description"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} services.Summary
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	filter, err := parseReportFilter(c)
	if err != nil {
		return err
	}

	summary, err := services.BuildSummary(h.DB, caller, filter)
	if err != nil {
		if degraded(err) {
			log.Printf("summary report degraded to zeroed payload: %v", err)
			return utils.SuccessResponse(c, services.ZeroSummary(), fiber.StatusOK)
		}
		return err
	}
	return utils.SuccessResponse(c, summary, fiber.StatusOK)
}
