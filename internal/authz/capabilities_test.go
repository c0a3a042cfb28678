package authz

import (
	"testing"

	"github.com/gestobra/gestobra-api/internal/models"
)

func TestForModuleKnownPairs(t *testing.T) {
	cap, ok := ForModule(models.RoleAdmin, ModuleSettings)
	if !ok {
		t.Fatal("admin must see the settings module")
	}
	if !cap.CanEdit {
		t.Error("admin must be able to edit settings")
	}

	if _, ok := ForModule(models.RoleUser, ModuleSettings); ok {
		t.Error("plain users must not see the settings module")
	}
	if _, ok := ForModule(models.RoleManager, ModuleUsers); ok {
		t.Error("managers must not see the users module")
	}
}

func TestCanSeeFieldVisibility(t *testing.T) {
	cases := []struct {
		role, module, field string
		want                bool
	}{
		{models.RoleAdmin, ModuleExpenses, "createdBy", true},
		{models.RoleUser, ModuleExpenses, "createdBy", false},
		{models.RoleUser, ModuleExpenses, "value", true},
		{models.RoleUser, ModuleVentures, "driveFolderId", false},
		{models.RoleManager, ModuleVentures, "driveFolderId", true},
		{"ghost-role", ModuleExpenses, "value", false},
	}
	for _, tc := range cases {
		if got := CanSee(tc.role, tc.module, tc.field); got != tc.want {
			t.Errorf("CanSee(%s, %s, %s) = %v, want %v", tc.role, tc.module, tc.field, got, tc.want)
		}
	}
}

func TestForRoleOrderingStable(t *testing.T) {
	caps := ForRole(models.RoleAdmin)
	if len(caps) != 6 {
		t.Fatalf("expected 6 modules for admin, got %d", len(caps))
	}
	if caps[0].Module != ModuleVentures {
		t.Errorf("expected ventures first, got %s", caps[0].Module)
	}
	if ForRole("ghost-role") != nil {
		t.Error("unknown role must have no capabilities")
	}
}
