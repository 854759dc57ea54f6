package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRecord, "record %d: name is required", 3)

	if err.Code != ErrCodeInvalidRecord {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidRecord)
	}
	if err.Message != "record 3: name is required" {
		t.Errorf("Message = %v", err.Message)
	}

	expected := "INVALID_RECORD: record 3: name is required"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "open family.json")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if got := err.Error(); got != "FILE_NOT_FOUND: open family.json: no such file" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeCycle, "test"), ErrCodeCycle, true},
		{"non-matching code", New(ErrCodeCycle, "test"), ErrCodeUnknownParent, false},
		{"outer code of wrapped", Wrap(ErrCodeInvalidInput, New(ErrCodeCycle, "inner"), "outer"), ErrCodeInvalidInput, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeDuplicatePerson, "x")); got != ErrCodeDuplicatePerson {
		t.Errorf("GetCode() = %v", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeCycle, "dataset has a cycle")); got != "dataset has a cycle" {
		t.Errorf("UserMessage() = %q", got)
	}
	wrapped := Wrap(ErrCodeFileNotFound, errors.New("denied"), "open x")
	if got := UserMessage(wrapped); got != "open x: denied" {
		t.Errorf("UserMessage(wrapped) = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestNestedErrorCodeAppearsOnce(t *testing.T) {
	inner := New(ErrCodeUnknownParent, "father_id %q is not in the dataset", "X")
	outer := Wrap(ErrCodeUnknownParent, inner, "record 3")

	if got := outer.Error(); got != `UNKNOWN_PARENT: record 3: father_id "X" is not in the dataset` {
		t.Errorf("Error() = %q", got)
	}
	if got := UserMessage(outer); got != `record 3: father_id "X" is not in the dataset` {
		t.Errorf("UserMessage() = %q", got)
	}
}
