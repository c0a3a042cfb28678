package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

// ListDocuments returns a venture's documents, newest first, optionally
// narrowed by category.
func ListDocuments(db *gorm.DB, caller *models.User, ventureID, category string) ([]models.Document, error) {
	if err := RequireID(ventureID, "venture"); err != nil {
		return nil, err
	}
	if !caller.HasVenture(ventureID) {
		return nil, types.Forbidden("venture is not assigned to you")
	}

	query := db.Where("venture_id = ?", ventureID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var docs []models.Document
	if err := query.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, types.Internal("failed to list documents")
	}
	return docs, nil
}

// GetDocument loads one document, enforcing venture assignment.
func GetDocument(db *gorm.DB, caller *models.User, id string) (*models.Document, error) {
	if err := RequireID(id, "document"); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := db.First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("document not found")
		}
		return nil, types.Internal("failed to load document")
	}
	if !caller.HasVenture(doc.VentureID) {
		return nil, types.Forbidden("venture is not assigned to you")
	}
	return &doc, nil
}

// DeleteDocument removes a document record. The stored object stays in object
// storage; only the reference is deleted. Managers and admins only.
func DeleteDocument(db *gorm.DB, caller *models.User, id string) error {
	if caller.Role == models.RoleUser {
		return types.Forbidden("only managers can delete documents")
	}
	if _, err := GetDocument(db, caller, id); err != nil {
		return err
	}
	if err := db.Delete(&models.Document{}, "id = ?", id).Error; err != nil {
		return types.Internal("failed to delete document")
	}
	return nil
}
