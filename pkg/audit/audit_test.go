package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := AuthenticateEvent{
		Email:    "owner@example.com",
		ClientIP: "192.168.1.1",
		Success:  true,
	}

	logger.Log(event)

	output := buf.String()

	// Check RFC5424 format components
	if !strings.Contains(output, "taskgate") {
		t.Error("Expected app name 'taskgate' in output")
	}
	if !strings.Contains(output, "authn") {
		t.Error("Expected message ID 'authn' in output")
	}
	if !strings.Contains(output, "owner@example.com") {
		t.Error("Expected user email in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.Contains(output, "successfully authenticated") {
		t.Error("Expected success message in output")
	}
}

func TestCheckEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   CheckEvent
		wantMsg string
		wantSev Severity
	}{
		{
			name: "allowed check",
			event: CheckEvent{
				UserID:     "7b0e3b1e-4f6a-4a46-9c6f-3aa111111111",
				ProjectID:  "3f4e2d1c-0b9a-4877-a120-5bb222222222",
				Controller: "tasks",
				Action:     "create",
				ClientIP:   "10.0.0.1",
				Allowed:    true,
			},
			wantMsg: "checked tasks:create",
			wantSev: SeverityInfo,
		},
		{
			name: "denied check still logs at info",
			event: CheckEvent{
				UserID:     "7b0e3b1e-4f6a-4a46-9c6f-3aa111111111",
				ProjectID:  "3f4e2d1c-0b9a-4877-a120-5bb222222222",
				Controller: "projects",
				Action:     "archive",
				ClientIP:   "10.0.0.1",
				Allowed:    false,
			},
			wantMsg: "denied",
			wantSev: SeverityInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.MessageID() != "check" {
				t.Errorf("MessageID() = %v, want check", tt.event.MessageID())
			}
			if tt.event.Facility() != FacilityAuthPriv {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), FacilityAuthPriv)
			}
		})
	}
}

func TestCheckEventStructuredData(t *testing.T) {
	event := CheckEvent{
		UserID:     "user-1",
		ProjectID:  "project-1",
		Controller: "rules",
		Action:     "replace",
		ClientIP:   "10.0.0.9",
		Allowed:    false,
	}

	sd := event.StructuredData()

	if sd[SDIDAction]["result"] != "failure" {
		t.Errorf("result = %q, want failure", sd[SDIDAction]["result"])
	}
	if sd[SDIDSubject]["controller"] != "rules" {
		t.Errorf("controller = %q, want rules", sd[SDIDSubject]["controller"])
	}
	if sd[SDIDProject]["id"] != "project-1" {
		t.Errorf("project id = %q, want project-1", sd[SDIDProject]["id"])
	}
}

func TestJoinEvent(t *testing.T) {
	success := JoinEvent{
		UserID:    "user-1",
		ProjectID: "project-1",
		ClientIP:  "10.0.0.1",
		Success:   true,
	}
	if !strings.Contains(success.Message(), "joined project") {
		t.Errorf("Message() = %q, want join message", success.Message())
	}
	if success.Severity() != SeverityInfo {
		t.Errorf("Severity() = %v, want %v", success.Severity(), SeverityInfo)
	}

	failure := JoinEvent{
		UserID:       "user-1",
		ProjectID:    "project-1",
		ClientIP:     "10.0.0.1",
		Success:      false,
		ErrorMessage: "invalid invite token",
	}
	if !strings.Contains(failure.Message(), "invalid invite token") {
		t.Errorf("Message() = %q, want error detail", failure.Message())
	}
	if failure.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", failure.Severity(), SeverityWarning)
	}
}

func TestReplaceRulesEvent(t *testing.T) {
	event := ReplaceRulesEvent{
		ActorID:   "owner-1",
		MemberID:  "member-1",
		ProjectID: "project-1",
		ClientIP:  "10.0.0.1",
		Rules:     16,
		Success:   true,
	}

	if !strings.Contains(event.Message(), "replaced rules") {
		t.Errorf("Message() = %q, want replace message", event.Message())
	}
	if event.Severity() != SeverityNotice {
		t.Errorf("Severity() = %v, want %v", event.Severity(), SeverityNotice)
	}
	if event.StructuredData()[SDIDSubject]["rules"] != "16" {
		t.Errorf("rules = %q, want 16", event.StructuredData()[SDIDSubject]["rules"])
	}
}

func TestFormatStructuredDataEscaping(t *testing.T) {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": `quote " backslash \ bracket ]`,
		},
	}

	formatted := formatStructuredData(sd)

	if !strings.Contains(formatted, `\"`) {
		t.Error("Expected escaped double quote")
	}
	if !strings.Contains(formatted, `\\`) {
		t.Error("Expected escaped backslash")
	}
	if !strings.Contains(formatted, `\]`) {
		t.Error("Expected escaped closing bracket")
	}
}
