package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

// UserUpdateInput is the admin-facing account update payload. Nil fields are
// left untouched.
type UserUpdateInput struct {
	Name             *string   `json:"name,omitempty"`
	Role             *string   `json:"role,omitempty"`
	AssignedVentures *[]string `json:"assignedVentures,omitempty"`
	NotifyByEmail    *bool     `json:"notifyByEmail,omitempty"`
	Locale           *string   `json:"locale,omitempty"`
	Active           *bool     `json:"active,omitempty"`
}

// ListUsers returns all accounts, admins only.
func ListUsers(db *gorm.DB, caller *models.User) ([]models.User, error) {
	if caller.Role != models.RoleAdmin {
		return nil, types.Forbidden("only admins can list users")
	}
	var users []models.User
	if err := db.Order("name ASC").Find(&users).Error; err != nil {
		return nil, types.Internal("failed to list users")
	}
	return users, nil
}

// GetUser loads one account. Admins can load anyone; everyone else only
// themselves.
func GetUser(db *gorm.DB, caller *models.User, id string) (*models.User, error) {
	if err := RequireID(id, "user"); err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && caller.ID != id {
		return nil, types.Forbidden("you can only view your own account")
	}

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("user not found")
		}
		return nil, types.Internal("failed to load user")
	}
	return &user, nil
}

// UpdateUser applies a partial update. Role, assignments and active state are
// admin-only; users may change their own name, locale and notification flag.
func UpdateUser(db *gorm.DB, caller *models.User, id string, in UserUpdateInput) (*models.User, error) {
	user, err := GetUser(db, caller, id)
	if err != nil {
		return nil, err
	}

	adminOnly := in.Role != nil || in.AssignedVentures != nil || in.Active != nil
	if adminOnly && caller.Role != models.RoleAdmin {
		return nil, types.Forbidden("only admins can change role, assignments or active state")
	}

	if in.Role != nil {
		if !models.ValidRole(*in.Role) {
			return nil, types.BadRequest("unknown role: " + *in.Role)
		}
		if caller.ID == id && *in.Role != models.RoleAdmin {
			return nil, types.BadRequest("admins cannot demote themselves")
		}
		user.Role = *in.Role
	}
	if in.AssignedVentures != nil {
		for _, ventureID := range *in.AssignedVentures {
			if err := RequireID(ventureID, "venture"); err != nil {
				return nil, err
			}
		}
		user.AssignedVentures = datatypes.NewJSONSlice(*in.AssignedVentures)
	}
	if in.Active != nil {
		if caller.ID == id && !*in.Active {
			return nil, types.BadRequest("admins cannot deactivate themselves")
		}
		user.Active = *in.Active
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, types.BadRequest("name must not be empty")
		}
		user.Name = *in.Name
	}
	if in.Locale != nil {
		user.Locale = *in.Locale
	}
	if in.NotifyByEmail != nil {
		user.NotifyByEmail = *in.NotifyByEmail
	}

	if err := db.Save(user).Error; err != nil {
		return nil, types.Internal("failed to update user")
	}
	return user, nil
}

// PreferencesInput is the self-service preferences payload.
type PreferencesInput struct {
	NotifyByEmail *bool   `json:"notifyByEmail,omitempty"`
	Locale        *string `json:"locale,omitempty"`
}

// UpdatePreferences applies the caller's own notification and locale settings.
func UpdatePreferences(db *gorm.DB, caller *models.User, in PreferencesInput) (*models.User, error) {
	if in.NotifyByEmail != nil {
		caller.NotifyByEmail = *in.NotifyByEmail
	}
	if in.Locale != nil {
		if *in.Locale == "" {
			return nil, types.BadRequest("locale must not be empty")
		}
		caller.Locale = *in.Locale
	}
	if err := db.Save(caller).Error; err != nil {
		return nil, types.Internal("failed to update preferences")
	}
	return caller, nil
}

// ChangePassword replaces the caller's own password after verifying the
// current one.
func ChangePassword(db *gorm.DB, caller *models.User, current, next string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(caller.PasswordHash), []byte(current)); err != nil {
		return types.Unauthenticated("current password is incorrect")
	}
	if len(next) < 8 {
		return types.BadRequest("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return types.Internal("failed to hash password")
	}
	result := db.Model(&models.User{}).Where("id = ?", caller.ID).Update("password_hash", string(hash))
	if result.Error != nil {
		return types.Internal("failed to change password")
	}
	return nil
}

// DeactivateUser flips an account off. Accounts are never hard-deleted so the
// created-by trail on expenses stays resolvable.
func DeactivateUser(db *gorm.DB, caller *models.User, id string) error {
	if caller.Role != models.RoleAdmin {
		return types.Forbidden("only admins can deactivate users")
	}
	if caller.ID == id {
		return types.BadRequest("admins cannot deactivate themselves")
	}
	if err := RequireID(id, "user"); err != nil {
		return err
	}

	result := db.Model(&models.User{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return types.Internal("failed to deactivate user")
	}
	if result.RowsAffected == 0 {
		return types.NotFound("user not found")
	}
	return nil
}
