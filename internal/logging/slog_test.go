package logging

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "find_slots")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithAccount(t *testing.T) {
	logger := slog.Default()
	result := WithAccount(logger, "work")
	if result == nil {
		t.Error("WithAccount returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("find_slots")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "find_slots" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "find_slots")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "boom")
	}
}

func TestErrNil(t *testing.T) {
	attr := Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) should return an empty group, got key %q", attr.Key)
	}
}

func TestAnonymizeEmail(t *testing.T) {
	hash := AnonymizeEmail("a@example.com")
	if !strings.HasPrefix(hash, "user:") {
		t.Errorf("AnonymizeEmail() = %q, want user: prefix", hash)
	}
	if strings.Contains(hash, "example.com") {
		t.Error("AnonymizeEmail() must not leak the address")
	}
	if AnonymizeEmail("a@example.com") != hash {
		t.Error("AnonymizeEmail() must be deterministic")
	}
	if AnonymizeEmail("") != "" {
		t.Error("AnonymizeEmail(\"\") should be empty")
	}
}

func TestAttendeeAttr(t *testing.T) {
	attr := Attendee("a@example.com")
	if attr.Key != KeyAttendee {
		t.Errorf("Attendee key = %q, want %q", attr.Key, KeyAttendee)
	}
	if strings.Contains(attr.Value.String(), "example.com") {
		t.Error("Attendee attribute must not contain the raw address")
	}
}

func TestSanitizeToken(t *testing.T) {
	if SanitizeToken("") != "<empty>" {
		t.Error("empty token should render as <empty>")
	}
	masked := SanitizeToken("secret-token-value")
	if strings.Contains(masked, "secret") {
		t.Error("SanitizeToken must not leak token content")
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"a@example.com", "example.com"},
		{"not-an-email", ""},
		{"", ""},
		{"a@b@c", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.email); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
