package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/hints"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

// UpcomingWindow is how far ahead an unpaid expense counts as "A vencer".
const UpcomingWindow = 7 * 24 * time.Hour

// ExpenseInput is the create/update payload for an expense.
type ExpenseInput struct {
	Description     string          `json:"description"`
	Value           decimal.Decimal `json:"value"`
	TransactionDate time.Time       `json:"transactionDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Status          string          `json:"status"`
	Category        string          `json:"category"`
	PaymentMethod   string          `json:"paymentMethod"`
	VentureID       string          `json:"ventureId"`
}

// ExpenseFilter narrows expense listings. Zero values mean "no filter".
type ExpenseFilter struct {
	VentureID string
	Status    string
	Category  string
	Search    string
	From      *time.Time
	To        *time.Time
}

func (in *ExpenseInput) validate() error {
	switch {
	case in.Description == "":
		return types.BadRequest("description is required")
	case in.Value.IsNegative():
		return types.BadRequest("value must not be negative")
	case in.TransactionDate.IsZero():
		return types.BadRequest("transaction date is required")
	case !models.ValidStatus(in.Status):
		return types.BadRequest("unknown status: " + in.Status)
	case !models.ValidCategory(in.Category):
		return types.BadRequest("unknown category: " + in.Category)
	}
	return nil
}

// ClassifyStatus refreshes a derived status from the due date. Paid expenses
// keep their status; unpaid ones read as overdue ("Pendente") past the due
// date or "A vencer" inside the upcoming window.
func ClassifyStatus(e *models.Expense, now time.Time) string {
	if e.Status == models.StatusPaid || e.DueDate == nil {
		return e.Status
	}
	due := *e.DueDate
	switch {
	case due.Before(now):
		return models.StatusPending
	case due.Sub(now) <= UpcomingWindow:
		return models.StatusUpcoming
	default:
		return e.Status
	}
}

func applyExpenseFilter(query *gorm.DB, filter ExpenseFilter) *gorm.DB {
	if filter.VentureID != "" {
		query = query.Where("venture_id = ?", filter.VentureID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.From != nil {
		query = query.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_date <= ?", *filter.To)
	}
	return query
}

func scopeToCaller(query *gorm.DB, caller *models.User) *gorm.DB {
	if caller.Role != models.RoleUser {
		return query
	}
	if len(caller.AssignedVentures) == 0 {
		// Impossible predicate; users with no assignments see nothing.
		return query.Where("1 = 0")
	}
	return query.Where("venture_id IN ?", []string(caller.AssignedVentures))
}

// ListExpenses returns a page of expenses matching the filter, newest first,
// scoped to the caller's assignments.
func ListExpenses(db *gorm.DB, caller *models.User, filter ExpenseFilter, page, limit int) ([]models.Expense, int64, error) {
	if filter.VentureID != "" {
		if err := RequireID(filter.VentureID, "venture"); err != nil {
			return nil, 0, err
		}
		if !caller.HasVenture(filter.VentureID) {
			return nil, 0, types.Forbidden("venture is not assigned to you")
		}
	}

	base := scopeToCaller(applyExpenseFilter(db.Model(&models.Expense{}), filter), caller)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, types.Internal("failed to count expenses")
	}

	query := base.Order("transaction_date DESC").
		Offset((page - 1) * limit).
		Limit(limit)
	if filter.VentureID != "" && db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("idx_expenses_venture_id"))
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, 0, types.Internal("failed to list expenses")
	}

	now := time.Now()
	for i := range expenses {
		expenses[i].Status = ClassifyStatus(&expenses[i], now)
	}
	return expenses, total, nil
}

// GetExpense loads one expense, enforcing venture assignment.
func GetExpense(db *gorm.DB, caller *models.User, id string) (*models.Expense, error) {
	if err := RequireID(id, "expense"); err != nil {
		return nil, err
	}

	var expense models.Expense
	if err := db.First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("expense not found")
		}
		return nil, types.Internal("failed to load expense")
	}
	if !caller.HasVenture(expense.VentureID) {
		return nil, types.Forbidden("venture is not assigned to you")
	}

	expense.Status = ClassifyStatus(&expense, time.Now())
	return &expense, nil
}

// CreateExpense creates an expense after validating its venture exists and is
// assigned to the caller.
func CreateExpense(db *gorm.DB, caller *models.User, in ExpenseInput) (*models.Expense, error) {
	if err := RequireID(in.VentureID, "venture"); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !caller.HasVenture(in.VentureID) {
		return nil, types.Forbidden("venture is not assigned to you")
	}

	var exists int64
	if err := db.Model(&models.Venture{}).Where("id = ?", in.VentureID).Count(&exists).Error; err != nil {
		return nil, types.Internal("failed to check venture")
	}
	if exists == 0 {
		return nil, types.NotFound("venture not found")
	}

	expense := models.Expense{
		ID:              uuid.NewString(),
		Description:     in.Description,
		Value:           in.Value,
		TransactionDate: in.TransactionDate,
		DueDate:         in.DueDate,
		Status:          in.Status,
		Category:        in.Category,
		PaymentMethod:   in.PaymentMethod,
		VentureID:       in.VentureID,
		CreatedBy:       caller.ID,
	}
	if err := db.Create(&expense).Error; err != nil {
		return nil, types.Internal("failed to create expense")
	}
	return &expense, nil
}

// UpdateExpense applies a full update. Only the creator, a manager or an admin
// may modify an expense; the venture reference is immutable.
func UpdateExpense(db *gorm.DB, caller *models.User, id string, in ExpenseInput) (*models.Expense, error) {
	expense, err := GetExpense(db, caller, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == models.RoleUser && expense.CreatedBy != caller.ID {
		return nil, types.Forbidden("only the creator can modify this expense")
	}
	if in.VentureID != "" && in.VentureID != expense.VentureID {
		return nil, types.BadRequest("expenses cannot be moved between ventures")
	}
	in.VentureID = expense.VentureID
	if err := in.validate(); err != nil {
		return nil, err
	}

	expense.Description = in.Description
	expense.Value = in.Value
	expense.TransactionDate = in.TransactionDate
	expense.DueDate = in.DueDate
	expense.Status = in.Status
	expense.Category = in.Category
	expense.PaymentMethod = in.PaymentMethod
	if err := db.Save(expense).Error; err != nil {
		return nil, types.Internal("failed to update expense")
	}
	return expense, nil
}

// DeleteExpense removes an expense under the same ownership rules as update.
// Attachments already in object storage are left in place.
func DeleteExpense(db *gorm.DB, caller *models.User, id string) error {
	expense, err := GetExpense(db, caller, id)
	if err != nil {
		return err
	}
	if caller.Role == models.RoleUser && expense.CreatedBy != caller.ID {
		return types.Forbidden("only the creator can delete this expense")
	}
	if err := db.Delete(&models.Expense{}, "id = ?", id).Error; err != nil {
		return types.Internal("failed to delete expense")
	}
	return nil
}
