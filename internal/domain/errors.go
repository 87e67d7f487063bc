package domain

import (
	"fmt"
)

type LocationErrorCode string

const (
	// Manual edit validation errors
	LocationErrorParse LocationErrorCode = "LOCATION_PARSE"
	LocationErrorRange LocationErrorCode = "LOCATION_RANGE"

	// Provider flow errors
	LocationErrorServiceUnavailable LocationErrorCode = "LOCATION_SERVICE_UNAVAILABLE"
	LocationErrorPermissionDenied   LocationErrorCode = "LOCATION_PERMISSION_DENIED"
	LocationErrorTransientProvider  LocationErrorCode = "LOCATION_PROVIDER_TRANSIENT"
	LocationErrorUnknownStatus      LocationErrorCode = "LOCATION_UNKNOWN_STATUS"

	// Repository errors
	LocationErrorRepository LocationErrorCode = "LOCATION_REPOSITORY"
)

type LocationError struct {
	Code    LocationErrorCode
	Message string
	Details map[string]interface{}
	Cause   error
}

func (e LocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e LocationError) Unwrap() error {
	return e.Cause
}

func (e LocationError) WithDetail(key string, value interface{}) LocationError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e LocationError) WithCause(cause error) LocationError {
	e.Cause = cause
	return e
}

func NewLocationError(code LocationErrorCode, message string) LocationError {
	return LocationError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func ErrNotANumber(field CoordinateField, input string) LocationError {
	return NewLocationError(
		LocationErrorParse,
		fmt.Sprintf("%s is not a valid decimal number", field),
	).WithDetail("field", string(field)).WithDetail("input", input)
}

func ErrLatitudeOutOfRange(latitude float64) LocationError {
	return NewLocationError(
		LocationErrorRange,
		"Latitude must be between -90 and 90 degrees",
	).WithDetail("field", string(FieldLatitude)).
		WithDetail("latitude", latitude).
		WithDetail("min", MinLatitude).
		WithDetail("max", MaxLatitude)
}

func ErrLongitudeOutOfRange(longitude float64) LocationError {
	return NewLocationError(
		LocationErrorRange,
		"Longitude must be between -180 and 180 degrees",
	).WithDetail("field", string(FieldLongitude)).
		WithDetail("longitude", longitude).
		WithDetail("min", MinLongitude).
		WithDetail("max", MaxLongitude)
}

func ErrServiceUnavailable() LocationError {
	return NewLocationError(
		LocationErrorServiceUnavailable,
		"Location services are disabled",
	)
}

func ErrPermissionDenied(state AuthorizationState) LocationError {
	return NewLocationError(
		LocationErrorPermissionDenied,
		"Location access denied",
	).WithDetail("authorization_state", string(state))
}

func ErrTransientProvider(cause error) LocationError {
	return NewLocationError(
		LocationErrorTransientProvider,
		"Location provider failed",
	).WithCause(cause)
}

func ErrUnknownStatus(state AuthorizationState) LocationError {
	return NewLocationError(
		LocationErrorUnknownStatus,
		"Unknown location authorization status",
	).WithDetail("authorization_state", string(state))
}

func ErrRepository(operation string) LocationError {
	return NewLocationError(
		LocationErrorRepository,
		"Snapshot repository error",
	).WithDetail("operation", operation)
}

func IsLocationError(err error) bool {
	_, ok := err.(LocationError)
	return ok
}

func IsLocationErrorCode(err error, code LocationErrorCode) bool {
	if locErr, ok := err.(LocationError); ok {
		return locErr.Code == code
	}
	return false
}
