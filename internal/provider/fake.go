package provider

import (
	"sync"

	"github.com/jsarabia/fn-location/internal/domain"
)

// Fake is a fully scripted location provider for tests. It records the
// manager's requests and lets the test deliver callbacks explicitly, so
// every asynchronous interleaving can be driven deterministically.
type Fake struct {
	mu            sync.Mutex
	available     bool
	authorization domain.AuthorizationState
	callbacks     domain.ProviderCallbacks

	authorizationRequests int
	locationRequests      int
}

func NewFake() *Fake {
	return &Fake{
		available:     true,
		authorization: domain.AuthorizationUndetermined,
	}
}

// Bind attaches the callback sink, normally the coordinate manager.
func (f *Fake) Bind(callbacks domain.ProviderCallbacks) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = callbacks
}

func (f *Fake) SetServiceAvailable(available bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.available = available
}

func (f *Fake) SetAuthorization(state domain.AuthorizationState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authorization = state
}

func (f *Fake) ServiceAvailable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available
}

func (f *Fake) CurrentAuthorization() domain.AuthorizationState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authorization
}

func (f *Fake) RequestAuthorization() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authorizationRequests++
}

func (f *Fake) RequestLocation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locationRequests++
}

func (f *Fake) AuthorizationRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authorizationRequests
}

func (f *Fake) LocationRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locationRequests
}

// DeliverFix resolves an outstanding location request with a fix.
func (f *Fake) DeliverFix(latitude, longitude float64) {
	f.sink().OnLocationReceived(latitude, longitude)
}

// DeliverFailure resolves an outstanding location request with an error.
func (f *Fake) DeliverFailure(err error) {
	f.sink().OnLocationFailed(err)
}

// DeliverAuthorization updates the reported state and fires the callback,
// the way a real provider resolves a permission prompt.
func (f *Fake) DeliverAuthorization(state domain.AuthorizationState) {
	f.mu.Lock()
	f.authorization = state
	f.mu.Unlock()
	f.sink().OnAuthorizationChanged(state)
}

func (f *Fake) sink() domain.ProviderCallbacks {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.callbacks == nil {
		panic("provider: Fake used before Bind")
	}
	return f.callbacks
}
