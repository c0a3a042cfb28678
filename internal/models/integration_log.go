package models

import "time"

// Integration log statuses.
const (
	LogStatusOK       = "ok"
	LogStatusError    = "error"
	LogStatusOrphaned = "orphaned" // external file exists without a local reference
)

// IntegrationLog is an append-only audit record of external integration
// attempts (storage uploads, folder provisioning, spreadsheet exports).
// Rows are created and read, never mutated.
type IntegrationLog struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Tenant      string    `gorm:"size:36;index" json:"tenant"` // venture scope; empty for app-wide actions
	Integration string    `gorm:"size:50;not null" json:"integration"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	Status      string    `gorm:"size:20;not null" json:"status"`
	Detail      JSON      `gorm:"type:json" json:"detail"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName overrides the table name for IntegrationLog
func (IntegrationLog) TableName() string {
	return "integration_logs"
}
