package optimistic

import (
	"errors"
	"testing"

	"aerohub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBeginFlipsImmediately(t *testing.T) {
	c := NewControl(false, 3)

	before := c.Begin()
	assert.Equal(t, Snapshot{Active: false, Count: 3}, before)
	assert.Equal(t, Snapshot{Active: true, Count: 4}, c.State())
	assert.Equal(t, 1, c.InFlight())

	c.Begin()
	assert.Equal(t, Snapshot{Active: false, Count: 3}, c.State())
	assert.Equal(t, 2, c.InFlight())
}

func TestCountNeverGoesNegative(t *testing.T) {
	c := NewControl(true, 0)
	c.Begin()
	assert.Equal(t, Snapshot{Active: false, Count: 0}, c.State())
}

func TestSucceedKeepsOptimisticState(t *testing.T) {
	c := NewControl(false, 0)
	c.Begin()
	c.Succeed()

	assert.Equal(t, Snapshot{Active: true, Count: 1}, c.State())
	assert.Zero(t, c.InFlight())
}

func TestFailRevertsOnlyWhenLastInFlight(t *testing.T) {
	t.Run("sole request reverts", func(t *testing.T) {
		c := NewControl(false, 2)
		before := c.Begin()
		c.Fail(before)

		assert.Equal(t, Snapshot{Active: false, Count: 2}, c.State())
		assert.Zero(t, c.InFlight())
	})

	t.Run("superseded failure leaves newer optimistic state", func(t *testing.T) {
		c := NewControl(false, 2)
		first := c.Begin()
		c.Begin()

		// First toggle fails while the second is still outstanding: the
		// older failure must not clobber the newer flip.
		c.Fail(first)
		assert.Equal(t, Snapshot{Active: false, Count: 2}, c.State())
		assert.Equal(t, 1, c.InFlight())
	})
}

func TestApplyServerGatedOnInFlight(t *testing.T) {
	c := NewControl(false, 0)
	c.Begin()

	assert.False(t, c.ApplyServer(false, 10), "sync suppressed while a toggle is outstanding")
	assert.Equal(t, Snapshot{Active: true, Count: 1}, c.State())

	c.Succeed()
	assert.True(t, c.ApplyServer(true, 11))
	assert.Equal(t, Snapshot{Active: true, Count: 11}, c.State())
}

func TestClassifyFailure(t *testing.T) {
	assert.Equal(t, FailureSignInRequired, ClassifyFailure(models.NewAuthenticationError("sign in")))
	assert.Equal(t, FailureError, ClassifyFailure(errors.New("network down")))
}
