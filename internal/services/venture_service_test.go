package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

func TestDeleteVentureGuardedByExpenses(t *testing.T) {
	db := setupTestDB(t)
	venture := seedVenture(t, db, "Residencial Aurora")
	seedExpense(t, db, venture.ID, "Material", models.StatusPaid, 100,
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	err := DeleteVenture(db, venture.ID)
	require.Error(t, err)

	var ce *types.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, types.ErrConflict, ce.Type)
	assert.Equal(t, 409, ce.Code)

	// Venture must still exist after the refused delete.
	var count int64
	db.Model(&models.Venture{}).Where("id = ?", venture.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeleteVentureWithoutExpenses(t *testing.T) {
	db := setupTestDB(t)
	venture := seedVenture(t, db, "Residencial Aurora")

	require.NoError(t, DeleteVenture(db, venture.ID))

	var count int64
	db.Model(&models.Venture{}).Where("id = ?", venture.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteVentureInvalidID(t *testing.T) {
	db := setupTestDB(t)

	err := DeleteVenture(db, "not-a-uuid")
	require.Error(t, err)

	var ce *types.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, types.ErrInvalidID, ce.Type, "malformed ids must not read as not found")
}

func TestGetVentureDetailCounters(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	venture := seedVenture(t, db, "Residencial Aurora")

	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	seedExpense(t, db, venture.ID, "Material", models.StatusPaid, 100, date)
	seedExpense(t, db, venture.ID, "Serviço", models.StatusPending, 50, date)
	seedExpense(t, db, venture.ID, "Taxas", models.StatusUpcoming, 25, date)

	detail, err := GetVenture(db, admin, venture.ID)
	require.NoError(t, err)
	assert.Equal(t, venture.ID, detail.ID)
	assert.EqualValues(t, 3, detail.TotalExpenses)
	assert.EqualValues(t, 2, detail.PendingExpenses)
}

func TestGetVentureNotFound(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)

	_, err := GetVenture(db, admin, "2b1b6c7e-46a4-4a3f-9a54-0a2f6d9d9d9d")
	require.Error(t, err)

	var ce *types.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, types.ErrNotFound, ce.Type)
}

func TestListVenturesScoping(t *testing.T) {
	db := setupTestDB(t)
	mine := seedVenture(t, db, "Mine")
	seedVenture(t, db, "Other")
	user := seedUser(t, db, models.RoleUser, mine.ID)
	admin := seedUser(t, db, models.RoleAdmin)

	scoped, total, err := ListVentures(db, user, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, scoped, 1)
	assert.Equal(t, mine.ID, scoped[0].ID)

	all, total, err := ListVentures(db, admin, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}

func TestCreateVentureValidation(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateVenture(db, VentureInput{Name: ""})
	require.Error(t, err)

	_, err = CreateVenture(db, VentureInput{Name: "x", Units: 10, SoldUnits: 11})
	require.Error(t, err)

	venture, err := CreateVenture(db, VentureInput{Name: "Residencial Aurora", Units: 40, SoldUnits: 12})
	require.NoError(t, err)
	assert.NotEmpty(t, venture.ID)
	assert.Empty(t, venture.DriveFolderID, "folders are provisioned explicitly, never on create")
}
