package domain

// AuthorizationState is the permission status granted by the user or OS for
// location access. Values only ever arrive from the location provider; the
// manager records them verbatim and never invents one.
type AuthorizationState string

const (
	AuthorizationUndetermined AuthorizationState = "undetermined"
	AuthorizationGranted      AuthorizationState = "granted"
	AuthorizationDenied       AuthorizationState = "denied"
	AuthorizationRestricted   AuthorizationState = "restricted"
	AuthorizationUnknown      AuthorizationState = "unknown"
)

// ParseAuthorizationState maps any unrecognized input to AuthorizationUnknown
// so a misbehaving provider cannot put the manager in an unnamed state.
func ParseAuthorizationState(s string) AuthorizationState {
	switch AuthorizationState(s) {
	case AuthorizationUndetermined, AuthorizationGranted, AuthorizationDenied, AuthorizationRestricted:
		return AuthorizationState(s)
	default:
		return AuthorizationUnknown
	}
}

func (s AuthorizationState) IsRecognized() bool {
	switch s {
	case AuthorizationUndetermined, AuthorizationGranted, AuthorizationDenied,
		AuthorizationRestricted, AuthorizationUnknown:
		return true
	default:
		return false
	}
}

// IsBlocked reports whether the user or OS has ruled out location access.
func (s AuthorizationState) IsBlocked() bool {
	return s == AuthorizationDenied || s == AuthorizationRestricted
}

func (s AuthorizationState) String() string {
	return string(s)
}

// RequestPhase is the manager's request state machine. Manual edits never
// move it; they act on the coordinate value orthogonally.
type RequestPhase string

const (
	PhaseIdle                  RequestPhase = "idle"
	PhaseAwaitingAuthorization RequestPhase = "awaiting_authorization"
	PhaseAwaitingFix           RequestPhase = "awaiting_fix"
	PhaseLoaded                RequestPhase = "loaded"
	PhaseFailed                RequestPhase = "failed"
)

func (p RequestPhase) String() string {
	return string(p)
}

// Terminal phases are re-enterable via a fresh location request.
func (p RequestPhase) IsTerminal() bool {
	return p == PhaseLoaded || p == PhaseFailed
}
