package models

import "time"

// SettingsID is the fixed primary key of the AppSettings singleton.
// Reads and writes always target this row (upsert semantics).
const SettingsID = "app-settings"

// AppSettings holds third-party credentials (encrypted at rest as
// salt:iv:authTag:ciphertext hex) and plaintext company branding.
type AppSettings struct {
	ID                      string    `gorm:"size:36;primaryKey" json:"id"`
	GoogleServiceAccountKey string    `gorm:"type:text" json:"-"`
	AWSAccessKey            string    `gorm:"type:text" json:"-"`
	AWSSecretKey            string    `gorm:"type:text" json:"-"`
	CompanyName             string    `gorm:"size:255" json:"companyName"`
	CompanyDocument         string    `gorm:"size:50" json:"companyDocument"`
	LogoURL                 string    `gorm:"size:1024" json:"logoUrl"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// TableName overrides the table name for AppSettings
func (AppSettings) TableName() string {
	return "app_settings"
}
