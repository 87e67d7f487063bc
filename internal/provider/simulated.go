package provider

import (
	"sync"
	"time"

	"github.com/jsarabia/fn-location/internal/domain"
)

// SimulatedConfig scripts the behavior of a Simulated provider. Outcomes are
// fixed up front; nothing is inferred from the runtime environment.
type SimulatedConfig struct {
	ServiceAvailable bool
	Authorization    domain.AuthorizationState
	// GrantOnRequest controls how a permission prompt resolves.
	GrantOnRequest bool
	FixLatitude    float64
	FixLongitude   float64
	// FailureKind, when non-empty, makes every fix request fail with a
	// provider error of that kind.
	FailureKind domain.ProviderErrorKind
	// Delay before each asynchronous resolution, standing in for dialog and
	// GPS acquisition time.
	Delay time.Duration
}

// Simulated stands in for device location hardware so the service can run
// the full authorization-and-fix flow without GPS. Requests resolve on their
// own goroutine after the configured delay, like a real provider would.
type Simulated struct {
	mu        sync.Mutex
	cfg       SimulatedConfig
	state     domain.AuthorizationState
	callbacks domain.ProviderCallbacks
}

func NewSimulated(cfg SimulatedConfig) *Simulated {
	state := cfg.Authorization
	if !state.IsRecognized() {
		state = domain.AuthorizationUndetermined
	}
	return &Simulated{cfg: cfg, state: state}
}

func (s *Simulated) Bind(callbacks domain.ProviderCallbacks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = callbacks
}

func (s *Simulated) ServiceAvailable() bool {
	return s.cfg.ServiceAvailable
}

func (s *Simulated) CurrentAuthorization() domain.AuthorizationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Simulated) RequestAuthorization() {
	go func() {
		time.Sleep(s.cfg.Delay)

		next := domain.AuthorizationDenied
		if s.cfg.GrantOnRequest {
			next = domain.AuthorizationGranted
		}

		s.mu.Lock()
		s.state = next
		cb := s.callbacks
		s.mu.Unlock()

		if cb != nil {
			cb.OnAuthorizationChanged(next)
		}
	}()
}

func (s *Simulated) RequestLocation() {
	go func() {
		time.Sleep(s.cfg.Delay)

		s.mu.Lock()
		cb := s.callbacks
		s.mu.Unlock()
		if cb == nil {
			return
		}

		if s.cfg.FailureKind != "" {
			cb.OnLocationFailed(domain.NewProviderError(s.cfg.FailureKind, "simulated failure"))
			return
		}
		cb.OnLocationReceived(s.cfg.FixLatitude, s.cfg.FixLongitude)
	}()
}
