package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeAfterFuncFiresOnAdvance(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	c := Fake(start)

	fired := 0
	c.AfterFunc(5*time.Second, func() { fired++ })
	require.Equal(t, 1, c.PendingCount())

	c.Advance(4 * time.Second)
	assert.Equal(t, 0, fired)

	c.Advance(time.Second)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, c.PendingCount())
	assert.Equal(t, start.Add(5*time.Second), c.Now())
}

func TestFakeStopPreventsFire(t *testing.T) {
	c := Fake(time.Now())

	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestFakeCallbackCanRearm(t *testing.T) {
	c := Fake(time.Now())

	var fires int
	var arm func()
	arm = func() {
		c.AfterFunc(time.Second, func() {
			fires++
			arm()
		})
	}
	arm()

	for i := 0; i < 3; i++ {
		c.Advance(time.Second)
	}
	assert.Equal(t, 3, fires)
	assert.Equal(t, 1, c.PendingCount())
}

func TestNilTimerStop(t *testing.T) {
	var timer *Timer
	assert.False(t, timer.Stop())
}

func TestFakeAdvanceStepsThroughRearmedDeadlines(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	c := Fake(start)

	var seen []time.Time
	var arm func()
	arm = func() {
		c.AfterFunc(2*time.Second, func() {
			seen = append(seen, c.Now())
			arm()
		})
	}
	arm()

	c.Advance(7 * time.Second)
	assert.Equal(t, []time.Time{
		start.Add(2 * time.Second),
		start.Add(4 * time.Second),
		start.Add(6 * time.Second),
	}, seen)
	assert.Equal(t, start.Add(7*time.Second), c.Now())
	assert.Equal(t, 1, c.PendingCount())
}
