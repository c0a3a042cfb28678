package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

// NotificationSummary is the attention counters block for the dashboard.
type NotificationSummary struct {
	Overdue  int64 `json:"overdue"`
	Upcoming int64 `json:"upcoming"`
}

// BuildNotificationSummary counts unpaid expenses that are overdue or due
// inside the upcoming window, scoped to the caller's ventures.
func BuildNotificationSummary(db *gorm.DB, caller *models.User) (*NotificationSummary, error) {
	now := time.Now()
	horizon := now.Add(UpcomingWindow)

	var summary NotificationSummary
	base := scopeToCaller(db.Model(&models.Expense{}), caller).
		Where("status <> ?", models.StatusPaid).
		Where("due_date IS NOT NULL")

	err := base.Session(&gorm.Session{}).
		Where("due_date < ?", now).
		Count(&summary.Overdue).Error
	if err != nil {
		return nil, types.Internal("failed to count overdue expenses")
	}

	err = base.Session(&gorm.Session{}).
		Where("due_date >= ? AND due_date <= ?", now, horizon).
		Count(&summary.Upcoming).Error
	if err != nil {
		return nil, types.Internal("failed to count upcoming expenses")
	}

	return &summary, nil
}
