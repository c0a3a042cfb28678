package services

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

// VentureInput is the create/update payload for a venture.
type VentureInput struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Units     int    `json:"units"`
	SoldUnits int    `json:"soldUnits"`
}

// VentureDetail is a venture plus the derived figures the detail screen needs.
type VentureDetail struct {
	models.Venture
	PendingExpenses int64 `json:"pendingExpenses"`
	TotalExpenses   int64 `json:"totalExpenses"`
}

// ListVentures returns a page of ventures scoped to the caller. Users only see
// their assigned ventures; admins and managers see everything.
func ListVentures(db *gorm.DB, caller *models.User, page, limit int) ([]models.Venture, int64, error) {
	query := db.Model(&models.Venture{})
	if caller.Role == models.RoleUser {
		if len(caller.AssignedVentures) == 0 {
			return []models.Venture{}, 0, nil
		}
		query = query.Where("id IN ?", []string(caller.AssignedVentures))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, types.Internal("failed to count ventures")
	}

	var ventures []models.Venture
	err := query.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ventures).Error
	if err != nil {
		return nil, 0, types.Internal("failed to list ventures")
	}
	return ventures, total, nil
}

// GetVenture loads a venture with its expense counters. The venture row and
// the counters are fetched concurrently.
func GetVenture(db *gorm.DB, caller *models.User, id string) (*VentureDetail, error) {
	if err := RequireID(id, "venture"); err != nil {
		return nil, err
	}
	if !caller.HasVenture(id) {
		return nil, types.Forbidden("venture is not assigned to you")
	}

	var detail VentureDetail
	var g errgroup.Group

	g.Go(func() error {
		err := db.First(&detail.Venture, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFound("venture not found")
		}
		return err
	})
	g.Go(func() error {
		return db.Model(&models.Expense{}).
			Where("venture_id = ? AND status <> ?", id, models.StatusPaid).
			Count(&detail.PendingExpenses).Error
	})
	g.Go(func() error {
		return db.Model(&models.Expense{}).
			Where("venture_id = ?", id).
			Count(&detail.TotalExpenses).Error
	})

	if err := g.Wait(); err != nil {
		var ce *types.CustomError
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, types.Internal("failed to load venture")
	}
	return &detail, nil
}

// CreateVenture creates a venture. Storage folders are provisioned separately,
// never as a side effect of creation.
func CreateVenture(db *gorm.DB, in VentureInput) (*models.Venture, error) {
	if in.Name == "" {
		return nil, types.BadRequest("name is required")
	}
	if in.Units < 0 || in.SoldUnits < 0 || in.SoldUnits > in.Units {
		return nil, types.BadRequest("sold units must be between 0 and total units")
	}

	venture := models.Venture{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Address:   in.Address,
		Units:     in.Units,
		SoldUnits: in.SoldUnits,
	}
	if err := db.Create(&venture).Error; err != nil {
		return nil, types.Internal("failed to create venture")
	}
	return &venture, nil
}

// UpdateVenture applies a full update to a venture.
func UpdateVenture(db *gorm.DB, id string, in VentureInput) (*models.Venture, error) {
	if err := RequireID(id, "venture"); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, types.BadRequest("name is required")
	}
	if in.Units < 0 || in.SoldUnits < 0 || in.SoldUnits > in.Units {
		return nil, types.BadRequest("sold units must be between 0 and total units")
	}

	var venture models.Venture
	if err := db.First(&venture, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("venture not found")
		}
		return nil, types.Internal("failed to load venture")
	}

	venture.Name = in.Name
	venture.Address = in.Address
	venture.Units = in.Units
	venture.SoldUnits = in.SoldUnits
	if err := db.Save(&venture).Error; err != nil {
		return nil, types.Internal("failed to update venture")
	}
	return &venture, nil
}

// DeleteVenture removes a venture. A venture that still has expenses cannot be
// deleted; the expenses must be moved or removed first.
func DeleteVenture(db *gorm.DB, id string) error {
	if err := RequireID(id, "venture"); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var venture models.Venture
		if err := tx.First(&venture, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NotFound("venture not found")
			}
			return types.Internal("failed to load venture")
		}

		var expenses int64
		if err := tx.Model(&models.Expense{}).Where("venture_id = ?", id).Count(&expenses).Error; err != nil {
			return types.Internal("failed to count venture expenses")
		}
		if expenses > 0 {
			return types.Conflict("venture has expenses and cannot be deleted")
		}

		if err := tx.Delete(&venture).Error; err != nil {
			return types.Internal("failed to delete venture")
		}
		return nil
	})
}

// SetVentureFolder stores the provisioned storage folder reference.
func SetVentureFolder(db *gorm.DB, id, folderID string) error {
	result := db.Model(&models.Venture{}).Where("id = ?", id).Update("drive_folder_id", folderID)
	if result.Error != nil {
		return types.Internal("failed to store folder reference")
	}
	if result.RowsAffected == 0 {
		return types.NotFound("venture not found")
	}
	return nil
}

// SetVentureSpreadsheet stores the export spreadsheet reference.
func SetVentureSpreadsheet(db *gorm.DB, id, spreadsheetID string) error {
	result := db.Model(&models.Venture{}).Where("id = ?", id).Update("spreadsheet_id", spreadsheetID)
	if result.Error != nil {
		return types.Internal("failed to store spreadsheet reference")
	}
	if result.RowsAffected == 0 {
		return types.NotFound("venture not found")
	}
	return nil
}

// SetVentureCover stores the cover image URL.
func SetVentureCover(db *gorm.DB, id, url string) error {
	result := db.Model(&models.Venture{}).Where("id = ?", id).Update("cover_image_url", url)
	if result.Error != nil {
		return types.Internal("failed to store cover image")
	}
	if result.RowsAffected == 0 {
		return types.NotFound("venture not found")
	}
	return nil
}
