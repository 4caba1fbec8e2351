package scan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakdaulet/kassa/internal/scan"
)

// fakeClock advances only when told to.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func typeString(c *scan.Classifier, clock *fakeClock, s string, gap time.Duration) {
	for i, r := range s {
		if i > 0 {
			clock.Advance(gap)
		}

		c.Insert(r)
	}
}

func TestClassifier_ScannerBurstSubmitsOnce(t *testing.T) {
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	typeString(c, clock, "123456", 5*time.Millisecond)
	assert.True(t, c.Scanning())

	clock.Advance(150 * time.Millisecond)

	code, ok := c.Expire()
	require.True(t, ok)
	assert.Equal(t, "123456", code)
	assert.Empty(t, c.Value())
	assert.False(t, c.Scanning())

	// A second expiry must not fire again.
	_, ok = c.Expire()
	assert.False(t, ok)
}

func TestClassifier_SlowTypingDoesNotSubmitFromTimer(t *testing.T) {
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	for i, r := range "123456" {
		if i > 0 {
			clock.Advance(250 * time.Millisecond)

			// The previous quiescence timer fires between keystrokes.
			_, ok := c.Expire()
			assert.False(t, ok)
		}

		c.Insert(r)
	}

	assert.False(t, c.Scanning())

	clock.Advance(150 * time.Millisecond)

	_, ok := c.Expire()
	assert.False(t, ok, "manual typing must not submit without Enter")
	assert.Equal(t, "123456", c.Value(), "typed text survives until Enter fires")
}

func TestClassifier_EnterSubmitsManualInput(t *testing.T) {
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	typeString(c, clock, "987654321", 200*time.Millisecond)

	code, ok := c.Enter()
	require.True(t, ok)
	assert.Equal(t, "987654321", code)
	assert.Empty(t, c.Value())
}

func TestClassifier_EnterSubmitsDuringBurst(t *testing.T) {
	// Some scanners terminate the code with a carriage return instead of
	// going quiet; Enter must work regardless of the scanning flag.
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	typeString(c, clock, "4600000000017", 3*time.Millisecond)

	code, ok := c.Enter()
	require.True(t, ok)
	assert.Equal(t, "4600000000017", code)
}

func TestClassifier_ShortCodeDiscardedOnEnter(t *testing.T) {
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	typeString(c, clock, "12", 200*time.Millisecond)

	_, ok := c.Enter()
	assert.False(t, ok)
	assert.Empty(t, c.Value(), "invalid input is cleared, not kept")
}

func TestClassifier_ShortCodeDiscardedOnTimer(t *testing.T) {
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	typeString(c, clock, "12", 5*time.Millisecond)
	assert.True(t, c.Scanning())

	clock.Advance(150 * time.Millisecond)

	_, ok := c.Expire()
	assert.False(t, ok)
}

func TestClassifier_WhitespaceTrimmedOnSubmit(t *testing.T) {
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	typeString(c, clock, "  123456  ", 5*time.Millisecond)
	clock.Advance(150 * time.Millisecond)

	code, ok := c.Expire()
	require.True(t, ok)
	assert.Equal(t, "123456", code)
}

func TestClassifier_BackspaceEditsBuffer(t *testing.T) {
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	typeString(c, clock, "1234", 200*time.Millisecond)
	c.Backspace()
	assert.Equal(t, "123", c.Value())

	code, ok := c.Enter()
	require.True(t, ok)
	assert.Equal(t, "123", code)

	// Backspace on an empty buffer is a no-op.
	assert.NotPanics(t, func() { c.Backspace() })
}

func TestClassifier_DeadlineMovesWithInput(t *testing.T) {
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	_, ok := c.Deadline()
	assert.False(t, ok, "no deadline before any input")

	c.Insert('1')
	first, ok := c.Deadline()
	require.True(t, ok)

	clock.Advance(30 * time.Millisecond)
	c.Insert('2')
	second, ok := c.Deadline()
	require.True(t, ok)
	assert.True(t, second.After(first))
}

func TestClassifier_NewBurstAfterSubmitStartsClean(t *testing.T) {
	clock := newFakeClock()
	c := scan.New(scan.WithClock(clock))

	typeString(c, clock, "111222", 5*time.Millisecond)
	clock.Advance(150 * time.Millisecond)

	code, ok := c.Expire()
	require.True(t, ok)
	require.Equal(t, "111222", code)

	// First character of the next burst must not inherit rapid timing
	// from the previous one.
	clock.Advance(2 * time.Millisecond)
	c.Insert('3')
	assert.False(t, c.Scanning())
}
