package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewError(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unsupported format: %s", "gif")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidFormat)
	}
	if !strings.Contains(err.Error(), "gif") {
		t.Errorf("Error() = %q, want format name included", err.Error())
	}
	if !strings.Contains(err.Error(), string(ErrCodeInvalidFormat)) {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeCache, cause, "write entry")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeTimeout, "scan deadline expired")

	if !Is(err, ErrCodeTimeout) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeCache) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeTimeout) {
		t.Error("Is should not match plain errors")
	}
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidPath, "root path is required")
	outer := fmt.Errorf("scan: %w", inner)

	if !Is(outer, ErrCodeInvalidPath) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInternal, "boom")); got != ErrCodeInternal {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInternal)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode = %q, want empty for plain errors", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidDimensions, "width must be positive")
	if got := UserMessage(err); got != "width must be positive" {
		t.Errorf("UserMessage = %q, want message without code", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %q, want raw error text", got)
	}
}
