package service

import (
	"sync"

	"github.com/jsarabia/fn-location/internal/domain"
)

// Fixed user-facing messages for the provider flow. Manual-edit validation
// errors are returned to the caller instead and never land here.
const (
	MsgServiceDisabled = "Location services are disabled"
	MsgAccessDenied    = "Location access denied"
	MsgNetworkError    = "Network error while fetching location"
	MsgUnknownStatus   = "Unknown location authorization status"
)

// DefaultMockCoordinate is the fixed value used by SetMockLocation and by the
// mock fallback branch when no other mock coordinate is configured.
func DefaultMockCoordinate() domain.Coordinate {
	return domain.NewCoordinate(37.7749, -122.4194)
}

// ManagerConfig is injected at construction. The mock fallback is an explicit
// switch, never inferred from the runtime environment.
type ManagerConfig struct {
	// MockCoordinate is committed by SetMockLocation and by the initial-failure
	// mock fallback. Zero value means DefaultMockCoordinate.
	MockCoordinate domain.Coordinate

	// UseMockFallbackOnInitialFailure substitutes MockCoordinate instead of
	// (0, 0) when the very first location request fails. Intended for demo and
	// simulation deployments only.
	UseMockFallbackOnInitialFailure bool

	// InitialCoordinate optionally seeds the starting value, e.g. from a
	// persisted snapshot. Out-of-range values are ignored and the default
	// (0, 0) is kept.
	InitialCoordinate *domain.Coordinate
}

// Status is a coherent snapshot of the manager's observable state, read on
// the manager's own goroutine.
type Status struct {
	Coordinate    domain.Coordinate         `json:"coordinate"`
	Loading       bool                      `json:"loading"`
	Authorization domain.AuthorizationState `json:"authorization"`
	Phase         domain.RequestPhase       `json:"phase"`
	Message       string                    `json:"message"`
	LastError     error                     `json:"-"`
}

// CoordinateManager owns the current coordinate value and mediates between
// the asynchronous location provider and user-initiated edits. All state
// lives on a single run-loop goroutine: public methods and provider
// callbacks marshal onto it, so there is no locking and no torn write.
// It implements domain.ProviderCallbacks.
type CoordinateManager struct {
	provider domain.LocationProvider
	cfg      ManagerConfig

	// Everything below is touched only from the run loop.
	current              domain.Coordinate
	authorization        domain.AuthorizationState
	phase                domain.RequestPhase
	loading              bool
	message              string
	lastErr              error
	pendingAuthorization bool
	initialRequest       bool

	coordinates  *Observable[domain.CoordinateChange]
	loadingObs   *Observable[bool]
	authObs      *Observable[domain.AuthorizationState]
	userMessages *Observable[string]

	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

func NewCoordinateManager(provider domain.LocationProvider, cfg ManagerConfig) *CoordinateManager {
	if cfg.MockCoordinate.IsZero() {
		cfg.MockCoordinate = DefaultMockCoordinate()
	}

	m := &CoordinateManager{
		provider:       provider,
		cfg:            cfg,
		authorization:  domain.AuthorizationUndetermined,
		phase:          domain.PhaseIdle,
		initialRequest: true,
		coordinates:    NewObservable[domain.CoordinateChange](),
		loadingObs:     NewObservable[bool](),
		authObs:        NewObservable[domain.AuthorizationState](),
		userMessages:   NewObservable[string](),
		tasks:          make(chan func(), 128),
		done:           make(chan struct{}),
	}

	if cfg.InitialCoordinate != nil && cfg.InitialCoordinate.IsValid() {
		m.current = *cfg.InitialCoordinate
	}

	go m.run()
	return m
}

func (m *CoordinateManager) run() {
	for {
		select {
		case fn := <-m.tasks:
			fn()
		case <-m.done:
			return
		}
	}
}

// Close stops the run loop. Calls after Close become no-ops.
func (m *CoordinateManager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}

// dispatch queues work on the run loop without waiting. Safe to call from
// provider callbacks that may fire while the loop is mid-task.
func (m *CoordinateManager) dispatch(fn func()) {
	select {
	case m.tasks <- fn:
	case <-m.done:
	}
}

// do queues work and waits for it to finish, giving external callers
// synchronous semantics over the single-writer loop.
func (m *CoordinateManager) do(fn func()) {
	finished := make(chan struct{})
	m.dispatch(func() {
		fn()
		close(finished)
	})
	select {
	case <-finished:
	case <-m.done:
	}
}

// Observables. Subscribers run on the manager goroutine and must not block.

func (m *CoordinateManager) Coordinates() *Observable[domain.CoordinateChange] {
	return m.coordinates
}

func (m *CoordinateManager) Loading() *Observable[bool] {
	return m.loadingObs
}

func (m *CoordinateManager) Authorization() *Observable[domain.AuthorizationState] {
	return m.authObs
}

func (m *CoordinateManager) UserMessages() *Observable[string] {
	return m.userMessages
}

// CurrentCoordinate returns a snapshot of the committed value.
func (m *CoordinateManager) CurrentCoordinate() domain.Coordinate {
	var c domain.Coordinate
	m.do(func() { c = m.current })
	return c
}

func (m *CoordinateManager) Status() Status {
	var s Status
	m.do(func() {
		s = Status{
			Coordinate:    m.current,
			Loading:       m.loading,
			Authorization: m.authorization,
			Phase:         m.phase,
			Message:       m.message,
			LastError:     m.lastErr,
		}
	})
	return s
}

// RequestLocation starts a provider-driven refresh. A call while a request is
// already in flight is ignored.
func (m *CoordinateManager) RequestLocation() {
	m.do(func() {
		if m.loading {
			return
		}

		m.lastErr = nil
		m.setMessage("")
		m.setLoading(true)

		if !m.provider.ServiceAvailable() {
			m.failRequest(domain.ErrServiceUnavailable(), MsgServiceDisabled, true)
			return
		}

		state := m.provider.CurrentAuthorization()
		m.setAuthorization(state)

		switch {
		case state == domain.AuthorizationUndetermined:
			m.pendingAuthorization = true
			m.phase = domain.PhaseAwaitingAuthorization
			m.provider.RequestAuthorization()
		case state == domain.AuthorizationGranted:
			m.phase = domain.PhaseAwaitingFix
			m.provider.RequestLocation()
		case state.IsBlocked():
			m.failRequest(domain.ErrPermissionDenied(state), MsgAccessDenied, true)
		default:
			m.failRequest(domain.ErrUnknownStatus(state), MsgUnknownStatus, true)
		}
	})
}

// ApplyManualEdit parses and range-checks user-entered text and commits the
// resulting coordinate. It is independent of the provider flow: loading,
// authorization, and the request phase are untouched, and validation errors
// are returned to the caller rather than surfaced through UserMessages.
func (m *CoordinateManager) ApplyManualEdit(latitudeText, longitudeText string) (domain.Coordinate, error) {
	var (
		c   domain.Coordinate
		err error
	)
	m.do(func() {
		c, err = domain.ParseCoordinate(latitudeText, longitudeText)
		if err != nil {
			return
		}
		m.lastErr = nil
		m.setMessage("")
		m.commit(c, domain.SourceManual)
	})
	return c, err
}

// SetMockLocation unconditionally commits the configured mock coordinate and
// clears loading and error state.
func (m *CoordinateManager) SetMockLocation() domain.Coordinate {
	var c domain.Coordinate
	m.do(func() {
		m.setLoading(false)
		m.lastErr = nil
		m.setMessage("")
		m.phase = domain.PhaseLoaded
		c = m.cfg.MockCoordinate
		m.commit(c, domain.SourceMock)
	})
	return c
}

// OnLocationReceived is the provider's fix callback. The provider is not
// trusted blindly: an out-of-range fix is handled as a provider failure.
func (m *CoordinateManager) OnLocationReceived(latitude, longitude float64) {
	m.dispatch(func() {
		c := domain.NewCoordinate(latitude, longitude)
		if err := c.Validate(); err != nil {
			m.handleLocationFailure(domain.ErrTransientProvider(err))
			return
		}

		m.setLoading(false)
		m.lastErr = nil
		m.setMessage("")
		m.phase = domain.PhaseLoaded
		m.commit(c, domain.SourceProvider)
	})
}

// OnLocationFailed is the provider's failure callback.
func (m *CoordinateManager) OnLocationFailed(err error) {
	m.dispatch(func() {
		m.handleLocationFailure(err)
	})
}

// OnAuthorizationChanged records the provider-reported authorization state
// and resumes or fails a pending request accordingly.
func (m *CoordinateManager) OnAuthorizationChanged(state domain.AuthorizationState) {
	m.dispatch(func() {
		m.initialRequest = false
		m.setAuthorization(state)

		switch {
		case state == domain.AuthorizationGranted:
			if m.pendingAuthorization {
				m.pendingAuthorization = false
				m.lastErr = nil
				m.setMessage("")
				m.phase = domain.PhaseAwaitingFix
				m.provider.RequestLocation()
			}
		case state.IsBlocked():
			if m.pendingAuthorization {
				m.pendingAuthorization = false
				m.failRequest(domain.ErrPermissionDenied(state), MsgAccessDenied, true)
			}
		case state == domain.AuthorizationUndetermined:
			// Still waiting on the user.
		default:
			m.setLoading(false)
			m.lastErr = domain.ErrUnknownStatus(state)
			m.setMessage(MsgUnknownStatus)
			m.phase = domain.PhaseFailed
		}
	})
}

func (m *CoordinateManager) handleLocationFailure(err error) {
	m.setLoading(false)
	m.lastErr = err
	m.phase = domain.PhaseFailed

	if m.initialRequest {
		// First-launch failures are absorbed without alarming the user.
		m.initialRequest = false
		m.setMessage("")
		m.applyFallback(true)
		return
	}

	switch domain.ClassifyProviderError(err) {
	case domain.ProviderErrorPermission:
		m.setMessage(MsgAccessDenied)
		m.applyFallback(false)
	case domain.ProviderErrorNetwork:
		// Transient; keep the last known coordinate.
		m.setMessage(MsgNetworkError)
	default:
		m.setMessage("Could not determine location: " + err.Error())
		m.applyFallback(false)
	}
}

// failRequest terminates the current request with an error, a fixed message,
// and optionally the coordinate fallback.
func (m *CoordinateManager) failRequest(err error, message string, reset bool) {
	m.setLoading(false)
	m.lastErr = err
	m.setMessage(message)
	m.phase = domain.PhaseFailed
	if reset {
		m.applyFallback(false)
	}
}

// applyFallback is the one fallback rule: reset to (0, 0), except for an
// initial-request failure with the explicit mock switch enabled, which
// commits the configured mock coordinate instead.
func (m *CoordinateManager) applyFallback(initialFailure bool) {
	if initialFailure && m.cfg.UseMockFallbackOnInitialFailure {
		m.commit(m.cfg.MockCoordinate, domain.SourceFallback)
		return
	}
	m.commit(domain.Coordinate{}, domain.SourceFallback)
}

func (m *CoordinateManager) commit(c domain.Coordinate, source domain.CommitSource) {
	m.current = c
	m.coordinates.Publish(domain.CoordinateChange{Coordinate: c, Source: source})
}

func (m *CoordinateManager) setLoading(v bool) {
	if m.loading == v {
		return
	}
	m.loading = v
	m.loadingObs.Publish(v)
}

func (m *CoordinateManager) setMessage(msg string) {
	if m.message == msg {
		return
	}
	m.message = msg
	m.userMessages.Publish(msg)
}

func (m *CoordinateManager) setAuthorization(state domain.AuthorizationState) {
	if m.authorization == state {
		return
	}
	m.authorization = state
	m.authObs.Publish(state)
}
