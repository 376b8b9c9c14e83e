package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodePermissionDenied indicates the caller does not have permission
	CodePermissionDenied Code = "permission_denied"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeUnavailable indicates the service is currently unavailable
	CodeUnavailable Code = "unavailable"

	// CodeAttributeNotFound indicates an entity has no value for a characteristic
	CodeAttributeNotFound Code = "attribute_not_found"

	// CodeDelegationUnavailable indicates a non-owner mutation had no privileged relay
	CodeDelegationUnavailable Code = "delegation_unavailable"

	// CodeEffectNotFound indicates the targeted effect no longer exists on the entity
	CodeEffectNotFound Code = "effect_not_found"

	// CodeLimitExceeded indicates a rule limit would be broken by the mutation
	CodeLimitExceeded Code = "limit_exceeded"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var relayErr *Error
	if errors.As(err, &relayErr) {
		return &Error{
			Code:    relayErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(relayErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// PermissionDeniedf creates a formatted permission denied error
func PermissionDeniedf(format string, args ...any) *Error {
	return Newf(CodePermissionDenied, format, args...)
}

// AttributeNotFound reports a characteristic the entity does not declare
func AttributeNotFound(entityID, attribute string) *Error {
	return Newf(CodeAttributeNotFound, "entity %s has no value for %q", entityID, attribute).
		WithMeta("entity_id", entityID).
		WithMeta("attribute", attribute)
}

// DelegationUnavailable reports a non-owner mutation with no relay to carry it
func DelegationUnavailable(entityID string) *Error {
	return Newf(CodeDelegationUnavailable, "no game master relay available to modify entity %s", entityID).
		WithMeta("entity_id", entityID)
}

// EffectNotFound reports an effect id that is no longer present on the entity
func EffectNotFound(entityID, effectID string) *Error {
	return Newf(CodeEffectNotFound, "effect %s not found on entity %s", effectID, entityID).
		WithMeta("entity_id", entityID).
		WithMeta("effect_id", effectID)
}

// LimitExceededf creates a formatted limit exceeded error
func LimitExceededf(format string, args ...any) *Error {
	return Newf(CodeLimitExceeded, format, args...)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var relayErr *Error
	if errors.As(err, &relayErr) {
		return relayErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// IsPermissionDenied checks if the error is a permission denied error
func IsPermissionDenied(err error) bool {
	return Is(err, CodePermissionDenied)
}

// IsAttributeNotFound checks if the error is an attribute not found error
func IsAttributeNotFound(err error) bool {
	return Is(err, CodeAttributeNotFound)
}

// IsDelegationUnavailable checks if the error is a delegation unavailable error
func IsDelegationUnavailable(err error) bool {
	return Is(err, CodeDelegationUnavailable)
}

// IsEffectNotFound checks if the error is an effect not found error
func IsEffectNotFound(err error) bool {
	return Is(err, CodeEffectNotFound)
}

// IsLimitExceeded checks if the error is a limit exceeded error
func IsLimitExceeded(err error) bool {
	return Is(err, CodeLimitExceeded)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var relayErr *Error
	if errors.As(err, &relayErr) {
		return relayErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var relayErr *Error
	if errors.As(err, &relayErr) {
		return relayErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
