package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/storage"
	"github.com/gestobra/gestobra-api/internal/types"
)

// Upload ceilings, enforced before any storage traffic.
const (
	MaxExpenseAttachmentSize = 10 << 20 // 10 MB
	MaxDocumentSize          = 15 << 20 // 15 MB
)

// allowedMimeTypes is the upload allow-list; everything else is rejected.
var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// FileInput is an upload candidate as received from the request.
type FileInput struct {
	Data     []byte
	Filename string
	MimeType string
}

// AttachmentService runs the upload pipeline against the configured storage
// adapter and records every integration attempt.
type AttachmentService struct {
	db    *gorm.DB
	store storage.Uploader
}

func NewAttachmentService(db *gorm.DB, store storage.Uploader) *AttachmentService {
	return &AttachmentService{db: db, store: store}
}

func validateFile(in FileInput, maxSize int64) error {
	if in.Filename == "" {
		return types.BadRequest("filename is required")
	}
	if !allowedMimeTypes[in.MimeType] {
		return types.BadRequest("unsupported file type: " + in.MimeType)
	}
	if int64(len(in.Data)) > maxSize {
		return types.PayloadTooLarge(fmt.Sprintf("file exceeds the %d MB limit", maxSize>>20))
	}
	if len(in.Data) == 0 {
		return types.BadRequest("file is empty")
	}
	return nil
}

// AttachToExpense uploads a file and links it to an expense. Validation runs
// strictly before the upload so a rejected file never reaches the adapter. If
// the upload succeeds but the link cannot be persisted, the stored object is
// left in place and the failure is recorded as orphaned.
func (s *AttachmentService) AttachToExpense(ctx context.Context, caller *models.User, expenseID string, in FileInput) (*models.Expense, error) {
	expense, err := GetExpense(s.db, caller, expenseID)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleUser && expense.CreatedBy != caller.ID {
		return nil, types.Forbidden("only the creator can attach files to this expense")
	}
	if err := validateFile(in, MaxExpenseAttachmentSize); err != nil {
		return nil, err
	}

	var venture models.Venture
	if err := s.db.First(&venture, "id = ?", expense.VentureID).Error; err != nil {
		return nil, types.Internal("failed to load venture")
	}
	if venture.DriveFolderID == "" {
		return nil, types.BadRequest("venture storage folder has not been provisioned; create the folder structure first")
	}

	result, err := s.store.Upload(ctx, storage.UploadInput{
		Data:     in.Data,
		Filename: in.Filename,
		MimeType: in.MimeType,
		Folder:   venture.DriveFolderID,
		Category: expense.Category,
	})
	if err != nil {
		s.logIntegration(expense.VentureID, "upload_attachment", models.LogStatusError, map[string]interface{}{
			"expenseId": expenseID,
			"filename":  in.Filename,
			"error":     err.Error(),
		})
		return nil, types.Internal("file upload failed")
	}

	attachment := models.Attachment{FileID: result.FileID, Name: in.Filename, URL: result.URL}
	expense.Attachments = append(expense.Attachments, attachment)
	if err := s.db.Model(&models.Expense{}).Where("id = ?", expenseID).
		Update("attachments", expense.Attachments).Error; err != nil {
		log.Printf("orphaned upload: file %s stored but not linked to expense %s", result.FileID, expenseID)
		s.logIntegration(expense.VentureID, "upload_attachment", models.LogStatusOrphaned, map[string]interface{}{
			"expenseId": expenseID,
			"fileId":    result.FileID,
			"url":       result.URL,
		})
		return nil, types.Internal("file stored but could not be linked to the expense")
	}

	s.logIntegration(expense.VentureID, "upload_attachment", models.LogStatusOK, map[string]interface{}{
		"expenseId": expenseID,
		"fileId":    result.FileID,
	})
	return expense, nil
}

// CreateDocument uploads a standalone venture document. Managers and admins
// only.
func (s *AttachmentService) CreateDocument(ctx context.Context, caller *models.User, ventureID, category string, in FileInput) (*models.Document, error) {
	if caller.Role == models.RoleUser {
		return nil, types.Forbidden("only managers can upload documents")
	}
	if err := RequireID(ventureID, "venture"); err != nil {
		return nil, err
	}
	if err := validateFile(in, MaxDocumentSize); err != nil {
		return nil, err
	}

	var venture models.Venture
	if err := s.db.First(&venture, "id = ?", ventureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("venture not found")
		}
		return nil, types.Internal("failed to load venture")
	}
	if venture.DriveFolderID == "" {
		return nil, types.BadRequest("venture storage folder has not been provisioned; create the folder structure first")
	}

	result, err := s.store.Upload(ctx, storage.UploadInput{
		Data:     in.Data,
		Filename: in.Filename,
		MimeType: in.MimeType,
		Folder:   venture.DriveFolderID,
		Category: category,
	})
	if err != nil {
		s.logIntegration(ventureID, "upload_document", models.LogStatusError, map[string]interface{}{
			"ventureId": ventureID,
			"filename":  in.Filename,
			"error":     err.Error(),
		})
		return nil, types.Internal("file upload failed")
	}

	doc := models.Document{
		ID:        uuid.NewString(),
		Name:      in.Filename,
		MimeType:  in.MimeType,
		VentureID: ventureID,
		Category:  category,
		FileID:    result.FileID,
		URL:       result.URL,
		CreatedBy: caller.ID,
	}
	if err := s.db.Create(&doc).Error; err != nil {
		log.Printf("orphaned upload: file %s stored but document row not created", result.FileID)
		s.logIntegration(ventureID, "upload_document", models.LogStatusOrphaned, map[string]interface{}{
			"ventureId": ventureID,
			"fileId":    result.FileID,
			"url":       result.URL,
		})
		return nil, types.Internal("file stored but the document record could not be created")
	}

	s.logIntegration(ventureID, "upload_document", models.LogStatusOK, map[string]interface{}{
		"documentId": doc.ID,
		"fileId":     result.FileID,
	})
	return &doc, nil
}

// UploadVentureCover uploads a cover image and stores its URL on the venture.
// Covers accept images only.
func (s *AttachmentService) UploadVentureCover(ctx context.Context, caller *models.User, ventureID string, in FileInput) (*models.Venture, error) {
	if caller.Role == models.RoleUser {
		return nil, types.Forbidden("only managers can change the cover image")
	}
	if err := RequireID(ventureID, "venture"); err != nil {
		return nil, err
	}
	if in.MimeType == "application/pdf" {
		return nil, types.BadRequest("cover image must be an image file")
	}
	if err := validateFile(in, MaxExpenseAttachmentSize); err != nil {
		return nil, err
	}

	var venture models.Venture
	if err := s.db.First(&venture, "id = ?", ventureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("venture not found")
		}
		return nil, types.Internal("failed to load venture")
	}
	if venture.DriveFolderID == "" {
		return nil, types.BadRequest("venture storage folder has not been provisioned; create the folder structure first")
	}

	result, err := s.store.Upload(ctx, storage.UploadInput{
		Data:     in.Data,
		Filename: in.Filename,
		MimeType: in.MimeType,
		Folder:   venture.DriveFolderID,
	})
	if err != nil {
		s.logIntegration(ventureID, "upload_cover", models.LogStatusError, map[string]interface{}{
			"ventureId": ventureID,
			"error":     err.Error(),
		})
		return nil, types.Internal("file upload failed")
	}

	if err := SetVentureCover(s.db, ventureID, result.URL); err != nil {
		s.logIntegration(ventureID, "upload_cover", models.LogStatusOrphaned, map[string]interface{}{
			"ventureId": ventureID,
			"fileId":    result.FileID,
		})
		return nil, err
	}
	venture.CoverImageURL = result.URL

	s.logIntegration(ventureID, "upload_cover", models.LogStatusOK, map[string]interface{}{
		"ventureId": ventureID,
		"fileId":    result.FileID,
	})
	return &venture, nil
}

// ProvisionVentureStorage creates the venture's folder tree on the storage
// backend and saves the reference. Backends without folder semantics get a
// synthetic prefix instead.
func (s *AttachmentService) ProvisionVentureStorage(ctx context.Context, ventureID string) (string, error) {
	if err := RequireID(ventureID, "venture"); err != nil {
		return "", err
	}

	var venture models.Venture
	if err := s.db.First(&venture, "id = ?", ventureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", types.NotFound("venture not found")
		}
		return "", types.Internal("failed to load venture")
	}
	if venture.DriveFolderID != "" {
		return venture.DriveFolderID, nil
	}

	var folderID string
	if provisioner, ok := s.store.(storage.FolderProvisioner); ok {
		id, err := provisioner.ProvisionFolder(ctx, venture.Name)
		if err != nil {
			s.logIntegration(ventureID, "provision_folder", models.LogStatusError, map[string]interface{}{
				"ventureId": ventureID,
				"error":     err.Error(),
			})
			return "", types.Internal("failed to provision storage folder")
		}
		folderID = id
	} else {
		folderID = "ventures/" + venture.ID
	}

	if err := SetVentureFolder(s.db, ventureID, folderID); err != nil {
		return "", err
	}
	s.logIntegration(ventureID, "provision_folder", models.LogStatusOK, map[string]interface{}{
		"ventureId": ventureID,
		"folderId":  folderID,
	})
	return folderID, nil
}

func (s *AttachmentService) logIntegration(tenant, action, status string, detail map[string]interface{}) {
	appendIntegrationLog(s.db, tenant, s.store.Name(), action, status, detail)
}
