package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestobra/gestobra-api/internal/models"
)

func TestUpdateUserPrivilegedFieldsAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	target := seedUser(t, db, models.RoleUser)
	venture := seedVenture(t, db, "Residencial Aurora")

	role := models.RoleManager
	assigned := []string{venture.ID}

	// The target cannot self-promote.
	_, err := UpdateUser(db, target, target.ID, UserUpdateInput{Role: &role})
	require.Error(t, err)

	// But can edit their own profile fields.
	name := "New Name"
	updated, err := UpdateUser(db, target, target.ID, UserUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	// Admin assigns ventures and promotes.
	updated, err = UpdateUser(db, admin, target.ID, UserUpdateInput{Role: &role, AssignedVentures: &assigned})
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, updated.Role)
	require.Len(t, updated.AssignedVentures, 1)
	assert.Equal(t, venture.ID, updated.AssignedVentures[0])
}

func TestAdminCannotDemoteOrDeactivateSelf(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)

	role := models.RoleUser
	_, err := UpdateUser(db, admin, admin.ID, UserUpdateInput{Role: &role})
	require.Error(t, err)

	require.Error(t, DeactivateUser(db, admin, admin.ID))
}

func TestDeactivateUserKeepsRow(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	target := seedUser(t, db, models.RoleUser)

	require.NoError(t, DeactivateUser(db, admin, target.ID))

	// Soft off, not deleted: the audit trail stays resolvable.
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", target.ID).Error)
	assert.False(t, reloaded.Active)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleUser)

	hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)
	user.PasswordHash = string(hash)
	require.NoError(t, db.Save(user).Error)

	require.Error(t, ChangePassword(db, user, "wrong-password", "new-password"))
	require.Error(t, ChangePassword(db, user, "old-password", "short"))
	require.NoError(t, ChangePassword(db, user, "old-password", "new-password"))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("new-password")))
}

func TestUpdatePreferences(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleUser)

	notify := false
	locale := "en-US"
	updated, err := UpdatePreferences(db, user, PreferencesInput{NotifyByEmail: &notify, Locale: &locale})
	require.NoError(t, err)
	assert.False(t, updated.NotifyByEmail)
	assert.Equal(t, "en-US", updated.Locale)

	empty := ""
	_, err = UpdatePreferences(db, user, PreferencesInput{Locale: &empty})
	require.Error(t, err)
}

func TestListUsersAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin)
	manager := seedUser(t, db, models.RoleManager)

	users, err := ListUsers(db, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = ListUsers(db, manager)
	require.Error(t, err)
}
