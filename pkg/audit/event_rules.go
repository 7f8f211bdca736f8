package audit

import "fmt"

// ReplaceRulesEvent represents a permission matrix replacement audit event
type ReplaceRulesEvent struct {
	ActorID      string
	MemberID     string
	ProjectID    string
	ClientIP     string
	Rules        int
	Success      bool
	ErrorMessage string
}

func (e ReplaceRulesEvent) MessageID() string {
	return "rules"
}

func (e ReplaceRulesEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s replaced rules for member %s on project %s (%d rules)", e.ActorID, e.MemberID, e.ProjectID, e.Rules)
	}
	msg := fmt.Sprintf("%s failed to replace rules for member %s on project %s", e.ActorID, e.MemberID, e.ProjectID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ReplaceRulesEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ReplaceRulesEvent) Facility() int {
	return FacilityAuth
}

func (e ReplaceRulesEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.ActorID,
		},
		SDIDSubject: {
			"member": e.MemberID,
			"rules":  fmt.Sprintf("%d", e.Rules),
		},
		SDIDProject: {
			"id": e.ProjectID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "replace-rules",
			"result":    result,
		},
	}
}
