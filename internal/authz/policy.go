package authz

import "github.com/greenschool/zerowaste-backend/internal/model"

// Action names something a request wants to do. Handlers consult the
// policy once instead of sprinkling role comparisons inline.
type Action string

const (
	ActionSubmitRecords    Action = "records.submit"
	ActionViewLeaderboard  Action = "leaderboard.view"
	ActionManageUsers      Action = "admin.users"
	ActionManageWasteTypes Action = "admin.waste_types"
	ActionViewAdminReports Action = "admin.reports"
	ActionExportRecords    Action = "admin.export"
	ActionViewAuditLogs    Action = "admin.audit_logs"
)

type Decision struct {
	Allow  bool
	Reason string
}

var adminOnly = map[Action]bool{
	ActionManageUsers:      true,
	ActionManageWasteTypes: true,
	ActionViewAdminReports: true,
	ActionExportRecords:    true,
	ActionViewAuditLogs:    true,
}

// Decide returns the allow/deny decision for a role performing an action.
// Role comes from the server-side session, never from the client.
func Decide(role model.Role, action Action) Decision {
	if !role.Valid() {
		return Decision{Allow: false, Reason: "unknown role"}
	}
	if adminOnly[action] && role != model.RoleAdmin {
		return Decision{Allow: false, Reason: "requires ADMIN role"}
	}
	return Decision{Allow: true}
}
