package audit

import "fmt"

// ProvisionEvent represents an owner membership seeding audit event
type ProvisionEvent struct {
	UserID    string
	ProjectID string
	ClientIP  string
	Rules     int
}

func (e ProvisionEvent) MessageID() string {
	return "provision"
}

func (e ProvisionEvent) Message() string {
	return fmt.Sprintf("%s provisioned as owner of project %s with %d rules", e.UserID, e.ProjectID, e.Rules)
}

func (e ProvisionEvent) Severity() Severity {
	return SeverityInfo
}

func (e ProvisionEvent) Facility() int {
	return FacilityAuth
}

func (e ProvisionEvent) StructuredData() map[string]map[string]string {
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
			"operation": "provision",
			"result":    "success",
		},
	}
}

// JoinEvent represents a project join audit event
type JoinEvent struct {
	UserID       string
	ProjectID    string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e JoinEvent) MessageID() string {
	return "join"
}

func (e JoinEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s joined project %s", e.UserID, e.ProjectID)
	}
	msg := fmt.Sprintf("%s failed to join project %s", e.UserID, e.ProjectID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e JoinEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e JoinEvent) Facility() int {
	return FacilityAuth
}

func (e JoinEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
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
			"operation": "join",
			"result":    result,
		},
	}
}
