// Package scan classifies raw keystrokes as either a hardware barcode
// scanner burst or manual typing, and turns them into submitted codes.
//
// A scanner emulates a keyboard but injects the whole code within a few
// milliseconds. The classifier watches inter-keystroke gaps: a gap below
// rapidGap marks the session as scanning, and a quiescence timer that fires
// uninterrupted after the last keystroke submits the accumulated code. An
// explicit Enter submits regardless of how the code was typed.
package scan

import (
	"strings"
	"time"
)

const (
	// rapidGap is the largest inter-keystroke gap still considered a
	// scanner burst. Hardware scanners typically stay well under this.
	rapidGap = 50 * time.Millisecond

	// quiescenceDelay is how long the input must stay silent after the
	// last keystroke before a burst counts as finished.
	quiescenceDelay = 100 * time.Millisecond

	// minCodeLength is the shortest code worth submitting. Shorter input
	// is discarded, never surfaced as an error.
	minCodeLength = 3
)

// Clock abstracts time.Now so tests can drive the classifier without
// real timers.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Classifier.
type Option func(*Classifier)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(c *Classifier) {
		c.clock = clock
	}
}

// Classifier accumulates keystrokes for one input field. It is driven by
// a single event loop and is not safe for concurrent use.
type Classifier struct {
	clock Clock

	buf         []rune
	lastInsert  time.Time
	scanning    bool
	deadline    time.Time
	hasDeadline bool
}

func New(opts ...Option) *Classifier {
	c := &Classifier{clock: systemClock{}}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Insert records one character. A gap below rapidGap since the previous
// character marks the session as scanning, and the quiescence deadline is
// pushed out on every character.
func (c *Classifier) Insert(r rune) {
	now := c.clock.Now()

	if !c.lastInsert.IsZero() && now.Sub(c.lastInsert) < rapidGap {
		c.scanning = true
	}

	c.buf = append(c.buf, r)
	c.lastInsert = now
	c.deadline = now.Add(quiescenceDelay)
	c.hasDeadline = true
}

// Backspace removes the last accumulated character, if any.
func (c *Classifier) Backspace() {
	if len(c.buf) == 0 {
		return
	}

	c.buf = c.buf[:len(c.buf)-1]
}

// Enter submits the accumulated code regardless of the scanning flag.
// The input is cleared either way; codes below the minimum length are
// discarded and ok is false.
func (c *Classifier) Enter() (code string, ok bool) {
	code = strings.TrimSpace(string(c.buf))
	c.Reset()

	if len([]rune(code)) < minCodeLength {
		return "", false
	}

	return code, true
}

// Expire handles the quiescence timer firing. It submits the accumulated
// code only if the session was marked as scanning and the code passes the
// minimum-length check; the scanning flag is dropped either way. Manually
// typed text that has not seen Enter yet is kept in the buffer.
func (c *Classifier) Expire() (code string, ok bool) {
	wasScanning := c.scanning
	c.scanning = false
	c.hasDeadline = false

	code = strings.TrimSpace(string(c.buf))
	if !wasScanning || len([]rune(code)) < minCodeLength {
		return "", false
	}

	c.buf = nil
	c.lastInsert = time.Time{}

	return code, true
}

// Deadline returns the moment the quiescence timer should fire. The
// caller schedules a wakeup for it and calls Expire; new input moves the
// deadline forward.
func (c *Classifier) Deadline() (time.Time, bool) {
	return c.deadline, c.hasDeadline
}

// Value returns the accumulated text as currently typed.
func (c *Classifier) Value() string {
	return string(c.buf)
}

// Scanning reports whether the current burst looks like scanner input.
func (c *Classifier) Scanning() bool {
	return c.scanning
}

// Reset drops all accumulated state.
func (c *Classifier) Reset() {
	c.buf = nil
	c.lastInsert = time.Time{}
	c.scanning = false
	c.deadline = time.Time{}
	c.hasDeadline = false
}
