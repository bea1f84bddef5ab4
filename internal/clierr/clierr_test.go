package clierr

import (
	"fmt"
	"testing"
)

func TestIsValidationFollowsWrapChain(t *testing.T) {
	base := Newf(InvalidStatus, "invalid status %q", "done")
	wrapped := fmt.Errorf("restoring task: %w", base)

	if !IsValidation(wrapped) {
		t.Fatalf("expected wrapped status error to be a validation error")
	}
	if CodeOf(wrapped) != InvalidStatus {
		t.Fatalf("expected code %q, got %q", InvalidStatus, CodeOf(wrapped))
	}
}

func TestIsValidationRejectsOtherErrors(t *testing.T) {
	if IsValidation(fmt.Errorf("disk full")) {
		t.Fatalf("plain errors are not validation errors")
	}
	if IsValidation(New(ProjectNotFound, "missing")) {
		t.Fatalf("not-found is not a validation error")
	}
	if IsValidation(nil) {
		t.Fatalf("nil is not a validation error")
	}
}

func TestExitCode(t *testing.T) {
	if got := New(InternalError, "boom").ExitCode(); got != 2 {
		t.Fatalf("expected exit 2 for internal errors, got %d", got)
	}
	if got := New(InvalidTitle, "bad").ExitCode(); got != 1 {
		t.Fatalf("expected exit 1, got %d", got)
	}
}
