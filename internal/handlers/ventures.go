package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// VentureHandler handles venture routes
type VentureHandler struct {
	DB          *gorm.DB
	Attachments *services.AttachmentService
	Export      *services.ExportService
}

// List handles GET /api/ventures
// @Summary List ventures
// @Description List ventures visible to the caller, paged
// @Tags Ventures
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.PagedResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /ventures [get]
func (h *VentureHandler) List(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	page, limit := parsePagination(c)

	ventures, total, err := services.ListVentures(h.DB, caller, page, limit)
	if err != nil {
		return err
	}
	return utils.PagedResponse(c, ventures, page, limit, total)
}

// Get handles GET /api/ventures/:id
// @Summary Get a venture
// @Description Load a venture with its expense counters
// @Tags Ventures
// @Produce json
// @Param id path string true "Venture ID"
// @Success 200 {object} services.VentureDetail
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /ventures/{id} [get]
func (h *VentureHandler) Get(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	detail, err := services.GetVenture(h.DB, caller, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, detail, fiber.StatusOK)
}

// Create handles POST /api/ventures
// @Summary Create a venture
// @Tags Ventures
// @Accept json
// @Produce json
// @Param venture body services.VentureInput true "Venture"
// @Success 201 {object} models.Venture
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /ventures [post]
func (h *VentureHandler) Create(c *fiber.Ctx) error {
	var req services.VentureInput
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}
	venture, err := services.CreateVenture(h.DB, req)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, venture, fiber.StatusCreated)
}

// Update handles PUT /api/ventures/:id
// @Summary Update a venture
// @Tags Ventures
// @Accept json
// @Produce json
// @Param id path string true "Venture ID"
// @Param venture body services.VentureInput true "Venture"
// @Success 200 {object} models.Venture
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /ventures/{id} [put]
func (h *VentureHandler) Update(c *fiber.Ctx) error {
	var req services.VentureInput
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}
	venture, err := services.UpdateVenture(h.DB, c.Params("id"), req)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, venture, fiber.StatusOK)
}

// Delete handles DELETE /api/ventures/:id
// @Summary Delete a venture
// @Description Delete a venture; fails with 409 while expenses still reference it
// @Tags Ventures
// @Produce json
// @Param id path string true "Venture ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /ventures/{id} [delete]
func (h *VentureHandler) Delete(c *fiber.Ctx) error {
	if err := services.DeleteVenture(h.DB, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProvisionStorage handles POST /api/ventures/:id/storage
// @Summary Provision storage folders
// @Description Create the venture folder tree on the storage backend and store the reference
// @Tags Ventures
// @Produce json
// @Param id path string true "Venture ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /ventures/{id}/storage [post]
func (h *VentureHandler) ProvisionStorage(c *fiber.Ctx) error {
	folderID, err := h.Attachments.ProvisionVentureStorage(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.Map{"folderId": folderID}, fiber.StatusOK)
}

// UploadCover handles POST /api/ventures/:id/cover
// @Summary Upload a cover image
// @Tags Ventures
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Venture ID"
// @Param file formData file true "Cover image"
// @Success 200 {object} models.Venture
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 413 {object} utils.ErrorResponseStruct
// @Router /ventures/{id}/cover [post]
func (h *VentureHandler) UploadCover(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	file, err := readUploadedFile(c)
	if err != nil {
		return err
	}
	venture, err := h.Attachments.UploadVentureCover(c.Context(), caller, c.Params("id"), file)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, venture, fiber.StatusOK)
}

// ExportExpenses handles POST /api/ventures/:id/export
// @Summary Export expenses to the linked spreadsheet
// @Tags Ventures
// @Produce json
// @Param id path string true "Venture ID"
// @Success 200 {object} map[string]int
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /ventures/{id}/export [post]
func (h *VentureHandler) ExportExpenses(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	rows, err := h.Export.ExportVentureExpenses(c.Context(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.Map{"exportedRows": rows}, fiber.StatusOK)
}

// LinkSpreadsheet handles PUT /api/ventures/:id/spreadsheet
// @Summary Link an export spreadsheet
// @Tags Ventures
// @Accept json
// @Produce json
// @Param id path string true "Venture ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /ventures/{id}/spreadsheet [put]
func (h *VentureHandler) LinkSpreadsheet(c *fiber.Ctx) error {
	var req struct {
		SpreadsheetID string `json:"spreadsheetId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return types.BadRequest("invalid request body")
	}
	if req.SpreadsheetID == "" {
		return types.BadRequest("spreadsheetId is required")
	}
	if err := services.RequireID(c.Params("id"), "venture"); err != nil {
		return err
	}
	if err := services.SetVentureSpreadsheet(h.DB, c.Params("id"), req.SpreadsheetID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
