// Package optimistic implements the client-side reconciliation protocol for
// like/favorite controls: shadow state flips immediately on user action, an
// in-flight counter decides whose word is last when server responses and
// newer actions race.
package optimistic

import (
	"sync"

	"aerohub/internal/models"
)

// Snapshot is the shadow state of one control at a point in time.
type Snapshot struct {
	Active bool
	Count  int
}

// Control is the per-entity state machine for one like or favorite button.
// All methods are safe for concurrent use; the response goroutine for one
// request may race a user action on another.
type Control struct {
	mu       sync.Mutex
	state    Snapshot
	inFlight int
}

// NewControl builds a control seeded with server truth.
func NewControl(active bool, count int) *Control {
	return &Control{state: Snapshot{Active: active, Count: count}}
}

// State returns the current shadow state, which the UI renders directly.
func (c *Control) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InFlight returns the number of outstanding toggle requests.
func (c *Control) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Begin applies the optimistic flip and registers an in-flight request.
// The returned snapshot is the pre-action state to pass to Fail if the
// request comes back in error.
func (c *Control) Begin() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.state
	c.state.Active = !c.state.Active
	if c.state.Active {
		c.state.Count++
	} else if c.state.Count > 0 {
		c.state.Count--
	}
	c.inFlight++
	return before
}

// Succeed retires one in-flight request. The shadow state already reflects
// the outcome, so nothing else changes.
func (c *Control) Succeed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight > 0 {
		c.inFlight--
	}
}

// Fail retires one in-flight request after an error. The pre-action
// snapshot is restored only when this was the sole outstanding request; a
// newer action's optimistic state is never clobbered by an older failure.
func (c *Control) Fail(before Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight == 1 {
		c.state = before
	}
	if c.inFlight > 0 {
		c.inFlight--
	}
}

// ApplyServer syncs server-pushed truth into the shadow state, but only
// when no request is outstanding. A slow response must not overwrite a
// newer optimistic flip. Returns whether the sync was applied.
func (c *Control) ApplyServer(active bool, count int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight != 0 {
		return false
	}
	c.state = Snapshot{Active: active, Count: count}
	return true
}

// FailureKind classifies toggle errors for user messaging.
type FailureKind int

const (
	// FailureError covers everything retryable.
	FailureError FailureKind = iota
	// FailureSignInRequired means the user has no session; the UI should
	// prompt login instead of offering a retry.
	FailureSignInRequired
)

// ClassifyFailure maps a toggle error to its user-facing category.
func ClassifyFailure(err error) FailureKind {
	if models.IsAuthentication(err) {
		return FailureSignInRequired
	}
	return FailureError
}
