// Package authz holds the declarative role capability table behind the
// ui-config endpoint. It describes what each role can see per module; the
// services enforce the matching rules on writes.
package authz

import "github.com/gestobra/gestobra-api/internal/models"

// Capability describes one module's surface for a role.
type Capability struct {
	Module        string   `json:"module"`
	VisibleFields []string `json:"visibleFields"`
	CanCreate     bool     `json:"canCreate"`
	CanEdit       bool     `json:"canEdit"`
	CanDelete     bool     `json:"canDelete"`
}

// Module names understood by the capability table.
const (
	ModuleVentures  = "ventures"
	ModuleExpenses  = "expenses"
	ModuleDocuments = "documents"
	ModuleReports   = "reports"
	ModuleUsers     = "users"
	ModuleSettings  = "settings"
)

var expenseFieldsFull = []string{
	"description", "value", "transactionDate", "dueDate", "status",
	"category", "paymentMethod", "ventureId", "createdBy", "attachments",
}

var expenseFieldsBasic = []string{
	"description", "value", "transactionDate", "dueDate", "status",
	"category", "ventureId", "attachments",
}

var ventureFieldsFull = []string{
	"name", "address", "units", "soldUnits", "driveFolderId",
	"spreadsheetId", "coverImageUrl",
}

var ventureFieldsBasic = []string{"name", "address", "units", "soldUnits", "coverImageUrl"}

// capabilities maps role -> module -> capability.
var capabilities = map[string]map[string]Capability{
	models.RoleAdmin: {
		ModuleVentures:  {Module: ModuleVentures, VisibleFields: ventureFieldsFull, CanCreate: true, CanEdit: true, CanDelete: true},
		ModuleExpenses:  {Module: ModuleExpenses, VisibleFields: expenseFieldsFull, CanCreate: true, CanEdit: true, CanDelete: true},
		ModuleDocuments: {Module: ModuleDocuments, VisibleFields: []string{"name", "mimeType", "category", "url", "createdBy"}, CanCreate: true, CanEdit: true, CanDelete: true},
		ModuleReports:   {Module: ModuleReports, VisibleFields: []string{"categories", "monthly", "summary"}},
		ModuleUsers:     {Module: ModuleUsers, VisibleFields: []string{"name", "email", "role", "assignedVentures", "active"}, CanCreate: true, CanEdit: true, CanDelete: true},
		ModuleSettings:  {Module: ModuleSettings, VisibleFields: []string{"companyName", "companyDocument", "logoUrl", "hasGoogleKey", "hasAwsKeys"}, CanEdit: true},
	},
	models.RoleManager: {
		ModuleVentures:  {Module: ModuleVentures, VisibleFields: ventureFieldsFull, CanCreate: true, CanEdit: true},
		ModuleExpenses:  {Module: ModuleExpenses, VisibleFields: expenseFieldsFull, CanCreate: true, CanEdit: true, CanDelete: true},
		ModuleDocuments: {Module: ModuleDocuments, VisibleFields: []string{"name", "mimeType", "category", "url", "createdBy"}, CanCreate: true, CanDelete: true},
		ModuleReports:   {Module: ModuleReports, VisibleFields: []string{"categories", "monthly", "summary"}},
	},
	models.RoleUser: {
		ModuleVentures:  {Module: ModuleVentures, VisibleFields: ventureFieldsBasic},
		ModuleExpenses:  {Module: ModuleExpenses, VisibleFields: expenseFieldsBasic, CanCreate: true, CanEdit: true, CanDelete: true},
		ModuleDocuments: {Module: ModuleDocuments, VisibleFields: []string{"name", "mimeType", "category", "url"}},
		ModuleReports:   {Module: ModuleReports, VisibleFields: []string{"categories", "monthly", "summary"}},
	},
}

// ForModule returns the capability of a role for a module. Unknown pairs
// return an empty capability with no visible fields.
func ForModule(role, module string) (Capability, bool) {
	mods, ok := capabilities[role]
	if !ok {
		return Capability{Module: module}, false
	}
	cap, ok := mods[module]
	if !ok {
		return Capability{Module: module}, false
	}
	return cap, true
}

// ForRole returns every module capability of a role.
func ForRole(role string) []Capability {
	mods, ok := capabilities[role]
	if !ok {
		return nil
	}
	order := []string{ModuleVentures, ModuleExpenses, ModuleDocuments, ModuleReports, ModuleUsers, ModuleSettings}
	out := make([]Capability, 0, len(mods))
	for _, module := range order {
		if cap, ok := mods[module]; ok {
			out = append(out, cap)
		}
	}
	return out
}

// CanSee reports whether a role may see a field of a module.
func CanSee(role, module, field string) bool {
	cap, ok := ForModule(role, module)
	if !ok {
		return false
	}
	for _, f := range cap.VisibleFields {
		if f == field {
			return true
		}
	}
	return false
}
