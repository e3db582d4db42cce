package api

import (
	"fmt"
)

type PcapError struct {
	message string
}

func NewPcapError(message string) *PcapError {
	return &PcapError{
		message: message,
	}
}

func (e *PcapError) Error() string {
	return e.message
}

func (e *PcapError) Message() string {
	return e.message
}

// PcapApiError is an error the service itself reported in the response
// header. Code 202 never reaches callers as this type; it is surfaced as
// SessionInvalidError instead.
type PcapApiError struct {
	PcapError
	code      int64
	fieldName string
}

func NewPcapApiError(code int64, message string, fieldName string) *PcapApiError {
	return &PcapApiError{
		PcapError: PcapError{
			message: message,
		},
		code:      code,
		fieldName: fieldName,
	}
}

func (e *PcapApiError) Error() string {
	if e.fieldName != "" {
		return fmt.Sprintf("%d: %s (field %s)", e.code, e.message, e.fieldName)
	}
	return fmt.Sprintf("%d: %s", e.code, e.message)
}

func (e *PcapApiError) Code() int64 {
	return e.code
}

func (e *PcapApiError) FieldName() string {
	return e.fieldName
}

// SessionInvalidError means the service no longer honors the session,
// either declared by error code 202 or inferred from an auth level
// regression. Callers should re-login rather than retry the request.
type SessionInvalidError struct {
	PcapError
}

func NewSessionInvalidError(additionalInfo string) *SessionInvalidError {
	return &SessionInvalidError{
		PcapError: PcapError{
			message: additionalInfo,
		},
	}
}

func (e *SessionInvalidError) Error() string {
	return fmt.Sprintf("session invalidated by the service: %s", e.message)
}

type InactiveUserError struct {
	PcapError
	username string
}

func NewInactiveUserError(username string) *InactiveUserError {
	return &InactiveUserError{
		PcapError: PcapError{
			message: "account is inactive",
		},
		username: username,
	}
}

func (e *InactiveUserError) Error() string {
	return fmt.Sprintf("the username %q is inactive", e.username)
}

func (e *InactiveUserError) Username() string {
	return e.username
}

// AuthLevelError reports an auth level outside the known vocabulary, or a
// known level in a place where it cannot legally occur. Either way the
// remote contract diverged from what this library understands.
type AuthLevelError struct {
	PcapError
	level string
}

func NewAuthLevelError(level string, additionalInfo string) *AuthLevelError {
	return &AuthLevelError{
		PcapError: PcapError{
			message: additionalInfo,
		},
		level: level,
	}
}

func (e *AuthLevelError) Error() string {
	return fmt.Sprintf("unexpected auth level %q: %s", e.level, e.message)
}

func (e *AuthLevelError) Level() string {
	return e.level
}

// UsageError marks caller misuse of the login sequence as opposed to a
// service-side failure.
type UsageError struct {
	PcapError
}

func NewUsageError(message string) *UsageError {
	return &UsageError{
		PcapError: PcapError{
			message: message,
		},
	}
}
