package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// ExpenseHandler handles expense routes
type ExpenseHandler struct {
	DB          *gorm.DB
	Attachments *services.AttachmentService
}

// List handles GET /api/expenses
// @Summary List expenses
// @Description List expenses matching the filter, scoped to the caller's ventures, paged
// @Tags Expenses
// @Produce json
// @Param empreendimento query string false "Venture ID"
// @Param status query string false "Status"
// @Param category query string false "Category"
// @Param q query string false "Free-text search on the description"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.PagedResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	page, limit := parsePagination(c)

	from, err := parseDate(c.Query("from"))
	if err != nil {
		return types.BadRequest("invalid 'from' date, expected YYYY-MM-DD")
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return types.BadRequest("invalid 'to' date, expected YYYY-MM-DD")
	}

	filter := services.ExpenseFilter{
		VentureID: c.Query("empreendimento"),
		Status:    c.Query("status"),
		Category:  c.Query("category"),
		Search:    c.Query("q"),
		From:      from,
		To:        endOfDay(to),
	}

	expenses, total, err := services.ListExpenses(h.DB, caller, filter, page, limit)
	if err != nil {
		return err
	}
	return utils.PagedResponse(c, expenses, page, limit, total)
}

// Get handles GET /api/expenses/:id
// @Summary Get an expense
// @Tags Expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} models.Expense
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	expense, err := services.GetExpense(h.DB, caller, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, expense, fiber.StatusOK)
}

// Create handles POST /api/expenses
// @Summary Create an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param expense body services.ExpenseInput true "Expense"
// @Success 201 {object} models.Expense
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	var req services.ExpenseInput
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}
	expense, err := services.CreateExpense(h.DB, caller, req)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, expense, fiber.StatusCreated)
}

// Update handles PUT /api/expenses/:id
// @Summary Update an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body services.ExpenseInput true "Expense"
// @Success 200 {object} models.Expense
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	var req services.ExpenseInput
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}
	expense, err := services.UpdateExpense(h.DB, caller, c.Params("id"), req)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, expense, fiber.StatusOK)
}

// Delete handles DELETE /api/expenses/:id
// @Summary Delete an expense
// @Tags Expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	if err := services.DeleteExpense(h.DB, caller, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Attach handles POST /api/expenses/:id/attachments
// @Summary Attach a file to an expense
// @Description Upload a receipt or invoice and link it to the expense
// @Tags Expenses
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Expense ID"
// @Param file formData file true "Attachment"
// @Success 200 {object} models.Expense
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 413 {object} utils.ErrorResponseStruct
// @Router /expenses/{id}/attachments [post]
func (h *ExpenseHandler) Attach(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	file, err := readUploadedFile(c)
	if err != nil {
		return err
	}
	expense, err := h.Attachments.AttachToExpense(c.Context(), caller, c.Params("id"), file)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, expense, fiber.StatusOK)
}
