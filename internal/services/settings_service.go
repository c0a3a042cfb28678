package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gestobra/gestobra-api/internal/crypto"
	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

// SettingsService reads and writes the AppSettings singleton, encrypting
// credential fields at rest.
type SettingsService struct {
	db            *gorm.DB
	encryptionKey string
}

func NewSettingsService(db *gorm.DB, encryptionKey string) *SettingsService {
	return &SettingsService{db: db, encryptionKey: encryptionKey}
}

// SettingsInput is the update payload. Empty credential fields mean "keep the
// stored value"; credentials can be replaced but never read back.
type SettingsInput struct {
	GoogleServiceAccountKey string `json:"googleServiceAccountKey,omitempty"`
	AWSAccessKey            string `json:"awsAccessKey,omitempty"`
	AWSSecretKey            string `json:"awsSecretKey,omitempty"`
	CompanyName             string `json:"companyName"`
	CompanyDocument         string `json:"companyDocument"`
	LogoURL                 string `json:"logoUrl"`
}

// SettingsView is the read shape. Credentials surface only as presence flags.
type SettingsView struct {
	CompanyName     string `json:"companyName"`
	CompanyDocument string `json:"companyDocument"`
	LogoURL         string `json:"logoUrl"`
	HasGoogleKey    bool   `json:"hasGoogleKey"`
	HasAWSKeys      bool   `json:"hasAwsKeys"`
}

// Get returns the settings view, admins only. A missing row reads as empty
// settings rather than an error.
func (s *SettingsService) Get(caller *models.User) (*SettingsView, error) {
	if caller.Role != models.RoleAdmin {
		return nil, types.Forbidden("only admins can read settings")
	}

	var settings models.AppSettings
	err := s.db.First(&settings, "id = ?", models.SettingsID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.Internal("failed to load settings")
	}

	return &SettingsView{
		CompanyName:     settings.CompanyName,
		CompanyDocument: settings.CompanyDocument,
		LogoURL:         settings.LogoURL,
		HasGoogleKey:    settings.GoogleServiceAccountKey != "",
		HasAWSKeys:      settings.AWSAccessKey != "" && settings.AWSSecretKey != "",
	}, nil
}

// Update upserts the singleton row. Credential fields that arrive non-empty
// are encrypted and replace the stored value; empty ones are preserved.
func (s *SettingsService) Update(caller *models.User, in SettingsInput) (*SettingsView, error) {
	if caller.Role != models.RoleAdmin {
		return nil, types.Forbidden("only admins can change settings")
	}

	settings := models.AppSettings{ID: models.SettingsID}
	err := s.db.First(&settings, "id = ?", models.SettingsID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.Internal("failed to load settings")
	}

	settings.CompanyName = in.CompanyName
	settings.CompanyDocument = in.CompanyDocument
	settings.LogoURL = in.LogoURL

	for _, field := range []struct {
		value string
		dst   *string
	}{
		{in.GoogleServiceAccountKey, &settings.GoogleServiceAccountKey},
		{in.AWSAccessKey, &settings.AWSAccessKey},
		{in.AWSSecretKey, &settings.AWSSecretKey},
	} {
		if field.value == "" {
			continue
		}
		encrypted, err := crypto.Encrypt(field.value, s.encryptionKey)
		if err != nil {
			return nil, types.Internal("failed to encrypt credentials")
		}
		*field.dst = encrypted
	}

	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&settings).Error; err != nil {
		return nil, types.Internal("failed to save settings")
	}

	return &SettingsView{
		CompanyName:     settings.CompanyName,
		CompanyDocument: settings.CompanyDocument,
		LogoURL:         settings.LogoURL,
		HasGoogleKey:    settings.GoogleServiceAccountKey != "",
		HasAWSKeys:      settings.AWSAccessKey != "" && settings.AWSSecretKey != "",
	}, nil
}

// DecryptedGoogleKey returns the stored Google service account key in the
// clear, for internal integration use only. Empty when unset.
func (s *SettingsService) DecryptedGoogleKey() (string, error) {
	var settings models.AppSettings
	err := s.db.First(&settings, "id = ?", models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && settings.GoogleServiceAccountKey == "") {
		return "", nil
	}
	if err != nil {
		return "", types.Internal("failed to load settings")
	}
	plaintext, err := crypto.Decrypt(settings.GoogleServiceAccountKey, s.encryptionKey)
	if err != nil {
		return "", types.Internal("failed to decrypt stored credentials")
	}
	return plaintext, nil
}
