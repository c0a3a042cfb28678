package services

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

// appendIntegrationLog records an external integration attempt. Audit
// failures are logged and swallowed; they never fail the request that
// triggered them.
func appendIntegrationLog(db *gorm.DB, tenant, integration, action, status string, detail map[string]interface{}) {
	payload, err := json.Marshal(detail)
	if err != nil {
		payload = []byte("{}")
	}
	entry := models.IntegrationLog{
		Tenant:      tenant,
		Integration: integration,
		Action:      action,
		Status:      status,
		Detail:      models.NewJSON(payload),
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("failed to write integration log (%s/%s/%s): %v", integration, action, status, err)
	}
}

// ListIntegrationLogs returns the most recent audit rows, admins only.
func ListIntegrationLogs(db *gorm.DB, caller *models.User, limit int) ([]models.IntegrationLog, error) {
	if caller.Role != models.RoleAdmin {
		return nil, types.Forbidden("only admins can read integration logs")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var logs []models.IntegrationLog
	if err := db.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, types.Internal("failed to list integration logs")
	}
	return logs, nil
}
