package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapsCause(t *testing.T) {
	cause := errors.New("row not found")
	err := NewError(CodeNotFound, "application not found", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if err.Error() != "application not found: row not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewError(CodeConflict, "already applied", nil))

	if !Is(err, CodeConflict) {
		t.Fatal("expected conflict code to match")
	}
	if Is(err, CodeNotFound) {
		t.Fatal("expected not_found code to not match")
	}
	if Is(errors.New("plain"), CodeConflict) {
		t.Fatal("expected plain error to not match")
	}
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != CodeInternal {
		t.Fatalf("expected internal, got %q", got)
	}
	if got := CodeOf(NewValidationError("bad", nil)); got != CodeValidation {
		t.Fatalf("expected validation, got %q", got)
	}
}

func TestParseUUID(t *testing.T) {
	id := NewUUID()
	parsed, err := ParseUUID(id.String())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if parsed != id {
		t.Fatalf("expected %s, got %s", id, parsed)
	}
	if _, err := ParseUUID("not-a-uuid"); err == nil {
		t.Fatal("expected parse failure")
	}
}
