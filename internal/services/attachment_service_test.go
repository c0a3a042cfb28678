package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/storage"
	"github.com/gestobra/gestobra-api/internal/types"
)

func provisionedVenture(t *testing.T, db *gorm.DB) *models.Venture {
	t.Helper()
	venture := seedVenture(t, db, "Residencial Aurora")
	require.NoError(t, db.Model(venture).Update("drive_folder_id", "folder-1").Error)
	venture.DriveFolderID = "folder-1"
	return venture
}

func TestAttachToExpenseHappyPath(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemory()
	svc := NewAttachmentService(db, store)
	admin := seedUser(t, db, models.RoleAdmin)
	venture := provisionedVenture(t, db)
	expense := seedExpense(t, db, venture.ID, "Material", models.StatusPaid, 100,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	updated, err := svc.AttachToExpense(context.Background(), admin, expense.ID, FileInput{
		Data:     []byte("%PDF-1.4 fake"),
		Filename: "nota-fiscal.pdf",
		MimeType: "application/pdf",
	})
	require.NoError(t, err)
	require.Len(t, updated.Attachments, 1)
	assert.Equal(t, "nota-fiscal.pdf", updated.Attachments[0].Name)
	assert.NotEmpty(t, updated.Attachments[0].FileID)
	assert.NotEmpty(t, updated.Attachments[0].URL)
	assert.Equal(t, 1, store.ObjectCount())

	// The link must be persisted, not just returned.
	var reloaded models.Expense
	require.NoError(t, db.First(&reloaded, "id = ?", expense.ID).Error)
	require.Len(t, reloaded.Attachments, 1)

	// And the attempt is audited under the venture's tenant scope.
	var entry models.IntegrationLog
	require.NoError(t, db.Where("status = ?", models.LogStatusOK).First(&entry).Error)
	assert.Equal(t, venture.ID, entry.Tenant)
}

func TestAttachToExpenseCreatorOnly(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemory()
	svc := NewAttachmentService(db, store)
	venture := provisionedVenture(t, db)
	creator := seedUser(t, db, models.RoleUser, venture.ID)
	intruder := seedUser(t, db, models.RoleUser, venture.ID)
	manager := seedUser(t, db, models.RoleManager)

	expense := seedExpense(t, db, venture.ID, "Material", models.StatusPaid, 100,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Model(expense).Update("created_by", creator.ID).Error)
	expense.CreatedBy = creator.ID

	file := FileInput{Data: []byte("%PDF-1.4 fake"), Filename: "nota.pdf", MimeType: "application/pdf"}

	// A plain user who shares the venture but did not create the expense is
	// rejected before any storage traffic.
	_, err := svc.AttachToExpense(context.Background(), intruder, expense.ID, file)
	require.Error(t, err)
	var ce *types.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, types.ErrForbidden, ce.Type)
	assert.Zero(t, store.ObjectCount())

	// The creator and elevated roles pass.
	_, err = svc.AttachToExpense(context.Background(), creator, expense.ID, file)
	require.NoError(t, err)
	_, err = svc.AttachToExpense(context.Background(), manager, expense.ID, file)
	require.NoError(t, err)
}

func TestAttachToExpenseRejectsBadMimeBeforeUpload(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemory()
	svc := NewAttachmentService(db, store)
	admin := seedUser(t, db, models.RoleAdmin)
	venture := provisionedVenture(t, db)
	expense := seedExpense(t, db, venture.ID, "Material", models.StatusPaid, 100,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.AttachToExpense(context.Background(), admin, expense.ID, FileInput{
		Data:     []byte("MZ fake executable"),
		Filename: "malware.exe",
		MimeType: "application/octet-stream",
	})
	require.Error(t, err)

	var ce *types.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, types.ErrBadRequest, ce.Type)
	assert.Zero(t, store.ObjectCount(), "rejected files must never reach the adapter")
}

func TestAttachToExpenseRejectsOversizedBeforeUpload(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemory()
	svc := NewAttachmentService(db, store)
	admin := seedUser(t, db, models.RoleAdmin)
	venture := provisionedVenture(t, db)
	expense := seedExpense(t, db, venture.ID, "Material", models.StatusPaid, 100,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.AttachToExpense(context.Background(), admin, expense.ID, FileInput{
		Data:     make([]byte, MaxExpenseAttachmentSize+1),
		Filename: "huge.pdf",
		MimeType: "application/pdf",
	})
	require.Error(t, err)

	var ce *types.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, types.ErrPayloadTooLarge, ce.Type)
	assert.Equal(t, 413, ce.Code)
	assert.Zero(t, store.ObjectCount())
}

func TestAttachToExpenseRequiresProvisionedFolder(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemory()
	svc := NewAttachmentService(db, store)
	admin := seedUser(t, db, models.RoleAdmin)
	venture := seedVenture(t, db, "Unprovisioned")
	expense := seedExpense(t, db, venture.ID, "Material", models.StatusPaid, 100,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.AttachToExpense(context.Background(), admin, expense.ID, FileInput{
		Data:     []byte("%PDF-1.4 fake"),
		Filename: "nota.pdf",
		MimeType: "application/pdf",
	})
	require.Error(t, err)

	var ce *types.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, types.ErrBadRequest, ce.Type)
	assert.Zero(t, store.ObjectCount())
}

func TestCreateDocumentRoleAndCeiling(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemory()
	svc := NewAttachmentService(db, store)
	venture := provisionedVenture(t, db)
	plain := seedUser(t, db, models.RoleUser, venture.ID)
	manager := seedUser(t, db, models.RoleManager)

	file := FileInput{Data: []byte("%PDF-1.4"), Filename: "contrato.pdf", MimeType: "application/pdf"}

	_, err := svc.CreateDocument(context.Background(), plain, venture.ID, "Contratos", file)
	require.Error(t, err, "plain users cannot upload documents")

	// Documents get the larger ceiling: a payload over the attachment limit
	// but under the document limit passes.
	big := FileInput{
		Data:     make([]byte, MaxExpenseAttachmentSize+10),
		Filename: "planta.pdf",
		MimeType: "application/pdf",
	}
	doc, err := svc.CreateDocument(context.Background(), manager, venture.ID, "Plantas", big)
	require.NoError(t, err)
	assert.Equal(t, "Plantas", doc.Category)
	assert.Equal(t, manager.ID, doc.CreatedBy)

	tooBig := FileInput{
		Data:     make([]byte, MaxDocumentSize+1),
		Filename: "video.pdf",
		MimeType: "application/pdf",
	}
	_, err = svc.CreateDocument(context.Background(), manager, venture.ID, "Plantas", tooBig)
	require.Error(t, err)
}

func TestProvisionVentureStorageIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewMemory()
	svc := NewAttachmentService(db, store)
	venture := seedVenture(t, db, "Residencial Aurora")

	first, err := svc.ProvisionVentureStorage(context.Background(), venture.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := svc.ProvisionVentureStorage(context.Background(), venture.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second, "re-provisioning returns the existing folder")

	var reloaded models.Venture
	require.NoError(t, db.First(&reloaded, "id = ?", venture.ID).Error)
	assert.Equal(t, first, reloaded.DriveFolderID)
}
