package rbac

import (
	"testing"

	"github.com/martinsuchenak/lictrack/internal/model"
)

func TestDeviceCapabilities(t *testing.T) {
	tests := []struct {
		role      string
		canCreate bool
		canEdit   bool
		canDelete bool
	}{
		{model.RoleAdmin, true, true, true},
		{model.RoleEngineer, true, true, false},
		{model.RoleAuditor, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			caps := For(tt.role, ScreenDevices)
			if !caps.CanView {
				t.Error("expected CanView for every known role")
			}
			if caps.CanCreate != tt.canCreate {
				t.Errorf("CanCreate = %v, want %v", caps.CanCreate, tt.canCreate)
			}
			if caps.CanEdit != tt.canEdit {
				t.Errorf("CanEdit = %v, want %v", caps.CanEdit, tt.canEdit)
			}
			if caps.CanDelete != tt.canDelete {
				t.Errorf("CanDelete = %v, want %v", caps.CanDelete, tt.canDelete)
			}
			if caps.CanAssign != tt.canEdit {
				t.Errorf("CanAssign = %v, want %v", caps.CanAssign, tt.canEdit)
			}
		})
	}
}

func TestAuditLogCapabilities(t *testing.T) {
	if !For(model.RoleAdmin, ScreenAuditLogs).CanView {
		t.Error("ADMIN should see audit logs")
	}
	if !For(model.RoleAuditor, ScreenAuditLogs).CanView {
		t.Error("AUDITOR should see audit logs")
	}
	if For(model.RoleEngineer, ScreenAuditLogs).CanView {
		t.Error("ENGINEER should not see audit logs")
	}
	if caps := For(model.RoleAuditor, ScreenAuditLogs); caps.CanCreate || caps.CanEdit || caps.CanDelete {
		t.Error("audit logs are read-only for every role")
	}
}

func TestUnknownRoleGetsNothing(t *testing.T) {
	for _, screen := range []string{ScreenDevices, ScreenLicenses, ScreenAssignments, ScreenAuditLogs} {
		if caps := For("", screen); caps != (Capabilities{}) {
			t.Errorf("empty role on %s got %+v, want zero set", screen, caps)
		}
		if caps := For("GUEST", screen); caps != (Capabilities{}) {
			t.Errorf("unknown role on %s got %+v, want zero set", screen, caps)
		}
	}
}
