package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/sheets"
	"github.com/gestobra/gestobra-api/internal/types"
)

// ExportService pushes a venture's expenses to its Google Spreadsheet.
type ExportService struct {
	db       *gorm.DB
	exporter *sheets.Exporter
}

// NewExportService creates the export service. The exporter may be nil when
// Google credentials are not configured; exports then fail with CONFLICT.
func NewExportService(db *gorm.DB, exporter *sheets.Exporter) *ExportService {
	return &ExportService{db: db, exporter: exporter}
}

// ExportVentureExpenses appends every expense of the venture to its linked
// spreadsheet. Managers and admins only.
func (s *ExportService) ExportVentureExpenses(ctx context.Context, caller *models.User, ventureID string) (int, error) {
	if caller.Role == models.RoleUser {
		return 0, types.Forbidden("only managers can export expenses")
	}
	if err := RequireID(ventureID, "venture"); err != nil {
		return 0, err
	}
	if s.exporter == nil {
		return 0, types.Conflict("spreadsheet export is not configured")
	}

	var venture models.Venture
	if err := s.db.First(&venture, "id = ?", ventureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, types.NotFound("venture not found")
		}
		return 0, types.Internal("failed to load venture")
	}
	if venture.SpreadsheetID == "" {
		return 0, types.Conflict("venture has no linked spreadsheet")
	}

	var expenses []models.Expense
	if err := s.db.Where("venture_id = ?", ventureID).
		Order("transaction_date ASC").
		Find(&expenses).Error; err != nil {
		return 0, types.Internal("failed to load expenses")
	}

	if err := s.exporter.AppendExpenses(ctx, venture.SpreadsheetID, expenses); err != nil {
		appendIntegrationLog(s.db, ventureID, "sheets", "export_expenses", models.LogStatusError, map[string]interface{}{
			"ventureId": ventureID,
			"error":     err.Error(),
		})
		return 0, types.Internal("spreadsheet export failed")
	}

	appendIntegrationLog(s.db, ventureID, "sheets", "export_expenses", models.LogStatusOK, map[string]interface{}{
		"ventureId": ventureID,
		"rows":      len(expenses),
	})
	return len(expenses), nil
}
