package authz

import (
	"testing"

	"github.com/greenschool/zerowaste-backend/internal/model"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		role   model.Role
		action Action
		allow  bool
	}{
		{"student submits records", model.RoleStudent, ActionSubmitRecords, true},
		{"teacher views leaderboard", model.RoleTeacher, ActionViewLeaderboard, true},
		{"student blocked from user management", model.RoleStudent, ActionManageUsers, false},
		{"teacher blocked from waste types", model.RoleTeacher, ActionManageWasteTypes, false},
		{"teacher blocked from export", model.RoleTeacher, ActionExportRecords, false},
		{"admin manages users", model.RoleAdmin, ActionManageUsers, true},
		{"admin views audit logs", model.RoleAdmin, ActionViewAuditLogs, true},
		{"unknown role denied everywhere", model.Role("GUEST"), ActionViewLeaderboard, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.role, tt.action)
			if d.Allow != tt.allow {
				t.Fatalf("Decide(%s, %s).Allow = %v, want %v", tt.role, tt.action, d.Allow, tt.allow)
			}
			if !d.Allow && d.Reason == "" {
				t.Fatal("denials must carry a reason")
			}
		})
	}
}
