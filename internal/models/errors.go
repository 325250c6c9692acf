package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrStructural ErrorType = iota
	ErrValidation
	ErrAmbiguity
	ErrSelection
	ErrPlatformDetection
	ErrFileOp
	ErrInstaller
	ErrSignature
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrStructural:
		return "Structural"
	case ErrValidation:
		return "Validation"
	case ErrAmbiguity:
		return "Ambiguity"
	case ErrSelection:
		return "Selection"
	case ErrPlatformDetection:
		return "PlatformDetection"
	case ErrFileOp:
		return "FileOp"
	case ErrInstaller:
		return "Installer"
	case ErrSignature:
		return "Signature"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// LockError represents an error while reading a lockfile or acting on it.
// Line and Text are set for errors tied to a position in the lockfile.
type LockError struct {
	Type    ErrorType
	Package string
	Line    int
	Text    string
	Err     error
}

// Error implements the error interface
func (e *LockError) Error() string {
	msg := fmt.Sprintf("[%s]", e.Type)
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d:", e.Line)
	}
	if e.Package != "" {
		msg += fmt.Sprintf(" %s:", e.Package)
	}
	msg += fmt.Sprintf(" %v", e.Err)
	if e.Text != "" {
		msg += fmt.Sprintf(": %q", e.Text)
	}
	return msg
}

// Unwrap returns the wrapped error
func (e *LockError) Unwrap() error {
	return e.Err
}

// IsErrorType reports whether err, or any error it wraps, is a LockError of type t.
func IsErrorType(err error, t ErrorType) bool {
	var lockErr *LockError
	if errors.As(err, &lockErr) {
		return lockErr.Type == t
	}
	return false
}
