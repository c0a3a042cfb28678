package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/middleware"
	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
	"github.com/gestobra/gestobra-api/internal/utils"
)

// DocumentHandler handles venture document routes
type DocumentHandler struct {
	DB          *gorm.DB
	Attachments *services.AttachmentService
}

// List handles GET /api/documents
// @Summary List documents
// @Description List a venture's documents, optionally narrowed by category
// @Tags Documents
// @Produce json
// @Param empreendimento query string true "Venture ID"
// @Param category query string false "Category"
// @Success 200 {array} models.Document
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	ventureID := c.Query("empreendimento")
	if ventureID == "" {
		return types.BadRequest("empreendimento query parameter is required")
	}
	docs, err := services.ListDocuments(h.DB, caller, ventureID, c.Query("category"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, docs, fiber.StatusOK)
}

// Get handles GET /api/documents/:id
// @Summary Get a document
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} models.Document
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	doc, err := services.GetDocument(h.DB, caller, c.Params("id"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, doc, fiber.StatusOK)
}

// Create handles POST /api/documents
// @Summary Upload a document
// @Description Upload a file into the venture's storage folder and record it
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param ventureId formData string true "Venture ID"
// @Param category formData string false "Category"
// @Param file formData file true "Document"
// @Success 201 {object} models.Document
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 413 {object} utils.ErrorResponseStruct
// @Router /documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	file, err := readUploadedFile(c)
	if err != nil {
		return err
	}
	ventureID := c.FormValue("ventureId")
	category := c.FormValue("category")

	doc, err := h.Attachments.CreateDocument(c.Context(), caller, ventureID, category, file)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, doc, fiber.StatusCreated)
}

// Delete handles DELETE /api/documents/:id
// @Summary Delete a document record
// @Description Remove the document reference; the stored object is kept
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	caller, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	if err := services.DeleteDocument(h.DB, caller, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
