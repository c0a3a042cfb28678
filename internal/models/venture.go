package models

import "time"

// Venture (empreendimento) is a real-estate project owning expenses and
// documents. DriveFolderID is empty until the storage folder structure is
// provisioned explicitly; uploads require it to be present.
type Venture struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Address       string    `gorm:"size:500" json:"address"`
	Units         int       `gorm:"not null;default:0" json:"units"`
	SoldUnits     int       `gorm:"not null;default:0" json:"soldUnits"`
	DriveFolderID string    `gorm:"size:255" json:"driveFolderId"`
	SpreadsheetID string    `gorm:"size:255" json:"spreadsheetId"`
	CoverImageURL string    `gorm:"size:1024" json:"coverImageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Venture
func (Venture) TableName() string {
	return "ventures"
}
