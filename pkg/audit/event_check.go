package audit

import "fmt"

// CheckEvent represents an authorization check audit event.
// Denied checks are routine outcomes, so both results log at info severity.
type CheckEvent struct {
	UserID     string
	ProjectID  string
	Controller string
	Action     string
	ClientIP   string
	Allowed    bool
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("%s checked %s:%s on project %s: allowed", e.UserID, e.Controller, e.Action, e.ProjectID)
	}
	return fmt.Sprintf("%s checked %s:%s on project %s: denied", e.UserID, e.Controller, e.Action, e.ProjectID)
}

func (e CheckEvent) Severity() Severity {
	return SeverityInfo
}

func (e CheckEvent) Facility() int {
	return FacilityAuthPriv
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Allowed {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"controller": e.Controller,
			"action":     e.Action,
		},
		SDIDProject: {
			"id": e.ProjectID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "check",
			"result":    result,
		},
	}
}
