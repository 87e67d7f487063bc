package domain

import (
	"errors"
	"fmt"
)

// LocationProvider is the abstract device location capability injected into
// the coordinate manager. RequestAuthorization and RequestLocation are
// asynchronous: they must return promptly and resolve later through the
// ProviderCallbacks sink, after an unbounded delay (permission dialogs, GPS
// fix acquisition). A callback that never arrives is tolerated.
type LocationProvider interface {
	ServiceAvailable() bool
	CurrentAuthorization() AuthorizationState
	RequestAuthorization()
	RequestLocation()
}

// ProviderCallbacks is implemented by the coordinate manager. Providers may
// invoke these from any goroutine; the manager marshals them onto its own
// execution context before touching state.
type ProviderCallbacks interface {
	OnLocationReceived(latitude, longitude float64)
	OnLocationFailed(err error)
	OnAuthorizationChanged(state AuthorizationState)
}

// ProviderErrorKind classifies provider failures for the manager's
// error-to-message and fallback decisions.
type ProviderErrorKind string

const (
	ProviderErrorPermission  ProviderErrorKind = "permission"
	ProviderErrorNetwork     ProviderErrorKind = "network"
	ProviderErrorUnavailable ProviderErrorKind = "unavailable"
	ProviderErrorOther       ProviderErrorKind = "other"
)

type ProviderError struct {
	Kind    ProviderErrorKind
	Message string
	Cause   error
}

func (e ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error (%s): %s", e.Kind, e.Message)
}

func (e ProviderError) Unwrap() error {
	return e.Cause
}

func NewProviderError(kind ProviderErrorKind, message string) ProviderError {
	return ProviderError{Kind: kind, Message: message}
}

// ClassifyProviderError extracts the kind from an error chain; anything that
// is not a ProviderError counts as ProviderErrorOther.
func ClassifyProviderError(err error) ProviderErrorKind {
	var provErr ProviderError
	if errors.As(err, &provErr) {
		return provErr.Kind
	}
	return ProviderErrorOther
}
