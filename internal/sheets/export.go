// Package sheets appends expense rows to a venture's Google Spreadsheet.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/gestobra/gestobra-api/internal/models"
)

const expensesRange = "Despesas!A1"

// Exporter appends rows to spreadsheets using a service account.
type Exporter struct {
	svc *sheetsapi.Service
}

// NewExporter creates an Exporter from service account credentials JSON.
func NewExporter(ctx context.Context, credentialsJSON []byte) (*Exporter, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Exporter{svc: svc}, nil
}

// AppendExpenses appends one row per expense to the Despesas sheet. Values go
// in USER_ENTERED so dates and numbers keep their spreadsheet types.
func (e *Exporter) AppendExpenses(ctx context.Context, spreadsheetID string, expenses []models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(expenses))
	for _, exp := range expenses {
		dueDate := ""
		if exp.DueDate != nil {
			dueDate = exp.DueDate.Format("02/01/2006")
		}
		rows = append(rows, []interface{}{
			exp.TransactionDate.Format("02/01/2006"),
			exp.Description,
			exp.Category,
			exp.Status,
			exp.PaymentMethod,
			dueDate,
			exp.Value.InexactFloat64(),
		})
	}

	_, err := e.svc.Spreadsheets.Values.Append(spreadsheetID, expensesRange,
		&sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append expenses: %w", err)
	}
	return nil
}
