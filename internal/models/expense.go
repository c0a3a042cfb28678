package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Expense lifecycle statuses.
const (
	StatusPaid     = "Pago"
	StatusPending  = "Pendente"
	StatusUpcoming = "A vencer"
)

// Categories is the canonical category list. Category reports are always
// completed against this set, in this order, regardless of data sparsity.
var Categories = []string{"Material", "Serviço", "Equipamento", "Taxas", "Outros"}

// ValidStatus reports whether s is a known expense status.
func ValidStatus(s string) bool {
	return s == StatusPaid || s == StatusPending || s == StatusUpcoming
}

// ValidCategory reports whether c is in the canonical category list.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// Attachment is a reference to a file held in external object storage.
type Attachment struct {
	FileID string `json:"fileId"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

// Valid requires all three reference fields; a partial reference is treated
// as no reference at all.
func (a Attachment) Valid() bool {
	return a.FileID != "" && a.Name != "" && a.URL != ""
}

// Expense (despesa) is a financial line item tied to a venture.
type Expense struct {
	ID              string                          `gorm:"type:char(36);primaryKey" json:"id"`
	Description     string                          `gorm:"size:255;not null" json:"description"`
	Value           decimal.Decimal                 `gorm:"type:numeric(14,2);not null" json:"value"`
	TransactionDate time.Time                       `gorm:"not null;index" json:"transactionDate"`
	DueDate         *time.Time                      `json:"dueDate,omitempty"`
	Status          string                          `gorm:"size:20;not null;index" json:"status"`
	Category        string                          `gorm:"size:50;not null;index" json:"category"`
	PaymentMethod   string                          `gorm:"size:50" json:"paymentMethod,omitempty"`
	VentureID       string                          `gorm:"type:char(36);not null;index:idx_expenses_venture_id" json:"ventureId"`
	CreatedBy       string                          `gorm:"type:char(36);not null" json:"createdBy"`
	Attachments     datatypes.JSONSlice[Attachment] `json:"attachments"`
	CreatedAt       time.Time                       `json:"createdAt"`
	UpdatedAt       time.Time                       `json:"updatedAt"`
}

// TableName overrides the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}
