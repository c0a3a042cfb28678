package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gestobra/gestobra-api/internal/models"
	"github.com/gestobra/gestobra-api/internal/types"
)

// monthLabels are the fixed month labels of the monthly report, in calendar
// order.
var monthLabels = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// ReportFilter narrows report aggregations. An empty VentureID means all
// ventures the caller can see. The date range is always applied: unset
// bounds default to the start of the current year and now.
type ReportFilter struct {
	VentureID string
	Status    string
	Category  string
	Search    string
	From      *time.Time
	To        *time.Time
}

// CategoryTotal is one slice of the category breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// MonthlyTotal is one month of the monthly breakdown.
type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// Summary is the headline totals block.
type Summary struct {
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
	ExpenseCount int64           `json:"expenseCount"`
	CountPaid    int64           `json:"countPaid"`
	CountPending int64           `json:"countPending"`
}

// ZeroCategoryBreakdown returns the canonical category list with zeroed
// totals, the shape every category report degrades to.
func ZeroCategoryBreakdown() []CategoryTotal {
	out := make([]CategoryTotal, len(models.Categories))
	for i, category := range models.Categories {
		out[i] = CategoryTotal{Category: category, Total: decimal.Zero}
	}
	return out
}

// ZeroMonthlyBreakdown returns all twelve months with zeroed totals.
func ZeroMonthlyBreakdown() []MonthlyTotal {
	out := make([]MonthlyTotal, len(monthLabels))
	for i, month := range monthLabels {
		out[i] = MonthlyTotal{Month: month, Total: decimal.Zero}
	}
	return out
}

// ZeroSummary returns an all-zero summary.
func ZeroSummary() Summary {
	return Summary{Total: decimal.Zero, Paid: decimal.Zero, Pending: decimal.Zero}
}

func reportQuery(db *gorm.DB, caller *models.User, filter ReportFilter) (*gorm.DB, error) {
	if filter.VentureID != "" {
		if err := RequireID(filter.VentureID, "venture"); err != nil {
			return nil, err
		}
		if !caller.HasVenture(filter.VentureID) {
			return nil, types.Forbidden("venture is not assigned to you")
		}
	}
	query := scopeToCaller(db.Model(&models.Expense{}), caller)
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

	from, to := filter.From, filter.To
	now := time.Now()
	if from == nil {
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		from = &start
	}
	if to == nil {
		to = &now
	}
	query = query.Where("transaction_date >= ? AND transaction_date <= ?", *from, *to)
	return query, nil
}

// CategoryBreakdown sums matching expenses per category. The result always
// contains every canonical category in canonical order; categories with no
// matches carry zero. Matching rows with an unknown category fold into
// "Outros" so the slices still sum to the overall total.
func CategoryBreakdown(db *gorm.DB, caller *models.User, filter ReportFilter) ([]CategoryTotal, error) {
	query, err := reportQuery(db, caller, filter)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Category string
		Value    decimal.Decimal
	}
	if err := query.Select("category", "value").Find(&rows).Error; err != nil {
		return nil, types.Internal("failed to aggregate by category")
	}

	index := make(map[string]int, len(models.Categories))
	out := ZeroCategoryBreakdown()
	for i, category := range models.Categories {
		index[category] = i
	}
	fallback := index["Outros"]
	for _, row := range rows {
		i, ok := index[row.Category]
		if !ok {
			i = fallback
		}
		out[i].Total = out[i].Total.Add(row.Value)
		out[i].Count++
	}
	return out, nil
}

// MonthlyBreakdown sums matching expenses per transaction month. All twelve
// months are always present, in calendar order. Grouping happens here rather
// than in SQL so the report reads the same on every dialect.
func MonthlyBreakdown(db *gorm.DB, caller *models.User, filter ReportFilter) ([]MonthlyTotal, error) {
	query, err := reportQuery(db, caller, filter)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		TransactionDate time.Time
		Value           decimal.Decimal
	}
	if err := query.Select("transaction_date", "value").Find(&rows).Error; err != nil {
		return nil, types.Internal("failed to aggregate by month")
	}

	out := ZeroMonthlyBreakdown()
	for _, row := range rows {
		i := int(row.TransactionDate.Month()) - 1
		out[i].Total = out[i].Total.Add(row.Value)
		out[i].Count++
	}
	return out, nil
}

// BuildSummary computes the headline totals in one pass using conditional
// sums. Paid covers "Pago"; pending covers everything else.
func BuildSummary(db *gorm.DB, caller *models.User, filter ReportFilter) (Summary, error) {
	query, err := reportQuery(db, caller, filter)
	if err != nil {
		return Summary{}, err
	}

	var row struct {
		Total        decimal.Decimal
		Paid         decimal.Decimal
		Pending      decimal.Decimal
		ExpenseCount int64
		CountPaid    int64
		CountPending int64
	}
	err = query.Select(
		"COALESCE(SUM(value), 0) AS total, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN value ELSE 0 END), 0) AS paid, "+
			"COALESCE(SUM(CASE WHEN status <> ? THEN value ELSE 0 END), 0) AS pending, "+
			"COUNT(*) AS expense_count, "+
			"COUNT(CASE WHEN status = ? THEN 1 END) AS count_paid, "+
			"COUNT(CASE WHEN status <> ? THEN 1 END) AS count_pending",
		models.StatusPaid, models.StatusPaid, models.StatusPaid, models.StatusPaid,
	).Scan(&row).Error
	if err != nil {
		return Summary{}, types.Internal("failed to build summary")
	}

	return Summary{
		Total:        row.Total,
		Paid:         row.Paid,
		Pending:      row.Pending,
		ExpenseCount: row.ExpenseCount,
		CountPaid:    row.CountPaid,
		CountPending: row.CountPending,
	}, nil
}
