package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDuration, "duration must be positive, got %g", -1.5)

	if err.Code != ErrCodeInvalidDuration {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDuration)
	}

	if err.Message != "duration must be positive, got -1.5" {
		t.Errorf("Message = %v", err.Message)
	}

	expected := "INVALID_DURATION: duration must be positive, got -1.5"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStorage, cause, "save composition")

	if err.Code != ErrCodeStorage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorage)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidTiming, "test"),
			code:     ErrCodeInvalidTiming,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeInvalidTiming, "test"),
			code:     ErrCodeNotFound,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("outer: %w", New(ErrCodeOverlapConflict, "test")),
			code:     ErrCodeOverlapConflict,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
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
	if got := GetCode(New(ErrCodeEffectNotFound, "x")); got != ErrCodeEffectNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeEffectNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeConflict, "clips overlap")); got != "clips overlap" {
		t.Errorf("UserMessage() = %v", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %v", got)
	}
}

func TestCategoryHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		config  bool
		missing bool
		clash   bool
	}{
		{"configuration", New(ErrCodeInvalidDuration, "x"), true, false, false},
		{"not found", New(ErrCodeTrackNotFound, "x"), false, true, false},
		{"conflict", New(ErrCodeOverlapConflict, "x"), false, false, true},
		{"internal", New(ErrCodeInternal, "x"), false, false, false},
		{"plain", errors.New("x"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfiguration(tt.err); got != tt.config {
				t.Errorf("IsConfiguration() = %v, want %v", got, tt.config)
			}
			if got := IsNotFound(tt.err); got != tt.missing {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.missing)
			}
			if got := IsConflict(tt.err); got != tt.clash {
				t.Errorf("IsConflict() = %v, want %v", got, tt.clash)
			}
		})
	}
}
