package models

import "time"

// Document is venture-scoped file metadata pointing at external storage.
// Documents are created on upload and listed; there is no update flow.
type Document struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	MimeType  string    `gorm:"size:100;not null" json:"mimeType"`
	VentureID string    `gorm:"type:char(36);not null;index" json:"ventureId"`
	Category  string    `gorm:"size:50" json:"category"`
	FileID    string    `gorm:"size:255;not null" json:"fileId"`
	URL       string    `gorm:"size:1024;not null" json:"url"`
	CreatedBy string    `gorm:"type:char(36);not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Document
func (Document) TableName() string {
	return "documents"
}
