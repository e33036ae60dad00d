// Package rbac resolves the capability set a role has on each screen.
// Capabilities are derived from the role on every evaluation and never
// cached across a role change.
package rbac

import "github.com/martinsuchenak/lictrack/internal/model"

// Screens gated by role.
const (
	ScreenDevices     = "devices"
	ScreenLicenses    = "licenses"
	ScreenAssignments = "assignments"
	ScreenAuditLogs   = "audit_logs"
)

// Capabilities is the action set a role holds on a screen.
type Capabilities struct {
	CanView   bool
	CanCreate bool
	CanEdit   bool
	CanDelete bool
	CanAssign bool
}

// For resolves the capabilities of role on screen. Unknown roles and
// screens get the zero set.
func For(role, screen string) Capabilities {
	switch screen {
	case ScreenDevices, ScreenLicenses:
		canEdit := role == model.RoleAdmin || role == model.RoleEngineer
		return Capabilities{
			CanView:   role == model.RoleAdmin || role == model.RoleEngineer || role == model.RoleAuditor,
			CanCreate: canEdit,
			CanEdit:   canEdit,
			CanDelete: role == model.RoleAdmin,
			CanAssign: canEdit,
		}
	case ScreenAssignments:
		return Capabilities{
			CanView:   role == model.RoleAdmin || role == model.RoleEngineer || role == model.RoleAuditor,
			CanCreate: role == model.RoleAdmin || role == model.RoleEngineer,
			CanAssign: role == model.RoleAdmin || role == model.RoleEngineer,
		}
	case ScreenAuditLogs:
		return Capabilities{
			CanView: role == model.RoleAdmin || role == model.RoleAuditor,
		}
	}
	return Capabilities{}
}
