package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsarabia/fn-location/internal/domain"
)

// channelCallbacks funnels provider callbacks into channels so tests can wait
// on asynchronous resolutions.
type channelCallbacks struct {
	fixes    chan domain.Coordinate
	failures chan error
	states   chan domain.AuthorizationState
}

func newChannelCallbacks() *channelCallbacks {
	return &channelCallbacks{
		fixes:    make(chan domain.Coordinate, 4),
		failures: make(chan error, 4),
		states:   make(chan domain.AuthorizationState, 4),
	}
}

func (c *channelCallbacks) OnLocationReceived(latitude, longitude float64) {
	c.fixes <- domain.NewCoordinate(latitude, longitude)
}

func (c *channelCallbacks) OnLocationFailed(err error) {
	c.failures <- err
}

func (c *channelCallbacks) OnAuthorizationChanged(state domain.AuthorizationState) {
	c.states <- state
}

func waitFor[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("callback not delivered in time")
		panic("unreachable")
	}
}

func TestSimulatedGrantsAuthorization(t *testing.T) {
	sim := NewSimulated(SimulatedConfig{
		ServiceAvailable: true,
		GrantOnRequest:   true,
		Delay:            10 * time.Millisecond,
	})
	cb := newChannelCallbacks()
	sim.Bind(cb)

	assert.Equal(t, domain.AuthorizationUndetermined, sim.CurrentAuthorization())

	sim.RequestAuthorization()
	state := waitFor(t, cb.states)
	assert.Equal(t, domain.AuthorizationGranted, state)
	assert.Equal(t, domain.AuthorizationGranted, sim.CurrentAuthorization())
}

func TestSimulatedDeniesAuthorization(t *testing.T) {
	sim := NewSimulated(SimulatedConfig{ServiceAvailable: true})
	cb := newChannelCallbacks()
	sim.Bind(cb)

	sim.RequestAuthorization()
	assert.Equal(t, domain.AuthorizationDenied, waitFor(t, cb.states))
}

func TestSimulatedDeliversFix(t *testing.T) {
	sim := NewSimulated(SimulatedConfig{
		ServiceAvailable: true,
		Authorization:    domain.AuthorizationGranted,
		FixLatitude:      48.85,
		FixLongitude:     2.35,
		Delay:            10 * time.Millisecond,
	})
	cb := newChannelCallbacks()
	sim.Bind(cb)

	sim.RequestLocation()
	fix := waitFor(t, cb.fixes)
	assert.True(t, fix.Equals(domain.NewCoordinate(48.85, 2.35)))
}

func TestSimulatedDeliversFailure(t *testing.T) {
	sim := NewSimulated(SimulatedConfig{
		ServiceAvailable: true,
		Authorization:    domain.AuthorizationGranted,
		FailureKind:      domain.ProviderErrorNetwork,
	})
	cb := newChannelCallbacks()
	sim.Bind(cb)

	sim.RequestLocation()
	err := waitFor(t, cb.failures)
	require.Error(t, err)
	assert.Equal(t, domain.ProviderErrorNetwork, domain.ClassifyProviderError(err))
}
