package uuid

import (
	"strings"
	"testing"
)

func TestNewIsValid(t *testing.T) {
	if err := Validate(New()); err != nil {
		t.Errorf("expected a generated UUID to validate, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate("not-a-uuid"); err == nil {
		t.Error("expected an error for a malformed UUID")
	}
}

func TestShortIsTwelveHexChars(t *testing.T) {
	s := Short()
	if len(s) != 12 {
		t.Fatalf("expected 12 characters, got %d (%q)", len(s), s)
	}
	if strings.ContainsAny(s, "-") {
		t.Errorf("expected no dashes, got %q", s)
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Errorf("expected hex characters only, got %q", s)
			break
		}
	}
}
