package audit

import "fmt"

// InviteEvent represents an invite token issuance audit event
type InviteEvent struct {
	UserID    string
	ProjectID string
	ClientIP  string
}

func (e InviteEvent) MessageID() string {
	return "invite"
}

func (e InviteEvent) Message() string {
	return fmt.Sprintf("%s issued an invite token for project %s", e.UserID, e.ProjectID)
}

func (e InviteEvent) Severity() Severity {
	return SeverityInfo
}

func (e InviteEvent) Facility() int {
	return FacilityAuth
}

func (e InviteEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDProject: {
			"id": e.ProjectID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "invite",
			"result":    "success",
		},
	}
}
