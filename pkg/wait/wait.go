// Package wait implements time-bounded synchronization primitives over
// repeated UI snapshots: wait-for-appear, wait-for-disappear, wait-for-stable
// and scroll-until-visible.
package wait

import (
	"fmt"
	"strings"
	"time"

	"github.com/Anjos2/mcp-android-emulator/pkg/snapshot"
)

// Source provides a fresh raw UI dump on every call. Implementations refresh
// the on-device dump before reading it, so each call reflects the screen at
// poll time.
type Source interface {
	Dump() (string, error)
}

// Gesturer issues the scroll gestures for ScrollUntilVisible.
type Gesturer interface {
	Swipe(x1, y1, x2, y2, durationMs int) error
	ScreenSize() (int, int, error)
}

// Defaults observed from the automation flows these loops were tuned on.
// All are overridable through Config.
const (
	DefaultPollInterval  = 500 * time.Millisecond
	DefaultSettleDelay   = 300 * time.Millisecond
	DefaultStableTicks   = 2
	DefaultSwipeDuration = 300 // ms
)

// Config tunes the polling loops.
type Config struct {
	PollInterval time.Duration // delay between poll ticks
	SettleDelay  time.Duration // delay after a scroll gesture
	StableTicks  int           // consecutive equal fingerprints required
}

// Waiter runs bounded poll loops against a dump source. Ticks are strictly
// sequential; the only suspension points are the source round-trips and the
// inter-tick sleeps. Cancellation is purely deadline- or attempt-driven.
type Waiter struct {
	src      Source
	gestures Gesturer
	cfg      Config

	// Clock hooks, replaceable in tests.
	sleep func(time.Duration)
	now   func() time.Time
}

// New creates a Waiter. gestures may be nil when ScrollUntilVisible is not
// needed. Zero Config fields fall back to the package defaults.
func New(src Source, gestures Gesturer, cfg Config) *Waiter {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.StableTicks <= 0 {
		cfg.StableTicks = DefaultStableTicks
	}
	return &Waiter{
		src:      src,
		gestures: gestures,
		cfg:      cfg,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Outcome reports how a wait loop ended. A timeout is a normal result, not an
// error; errors are reserved for source failures, which abort the loop.
type Outcome struct {
	Done    bool          `json:"done"`
	Ticks   int           `json:"ticks"`
	Elapsed time.Duration `json:"elapsed"`
}

// ForText polls until the raw dump contains text, case-insensitively.
// Presence is checked against the whole dump: appearance needs no geometry.
func (w *Waiter) ForText(text string, timeout time.Duration) (Outcome, error) {
	return w.poll(timeout, func(raw string) bool {
		return snapshot.ContainsText(raw, text)
	})
}

// ForTextGone polls until the raw dump no longer contains text.
func (w *Waiter) ForTextGone(text string, timeout time.Duration) (Outcome, error) {
	return w.poll(timeout, func(raw string) bool {
		return !snapshot.ContainsText(raw, text)
	})
}

func (w *Waiter) poll(timeout time.Duration, pred func(string) bool) (Outcome, error) {
	start := w.now()
	deadline := start.Add(timeout)

	for tick := 1; ; tick++ {
		raw, err := w.src.Dump()
		if err != nil {
			return Outcome{Ticks: tick, Elapsed: w.now().Sub(start)}, err
		}
		if pred(raw) {
			return Outcome{Done: true, Ticks: tick, Elapsed: w.now().Sub(start)}, nil
		}
		if !w.now().Before(deadline) {
			return Outcome{Ticks: tick, Elapsed: w.now().Sub(start)}, nil
		}
		w.sleep(w.cfg.PollInterval)
	}
}

// StableOutcome reports the result of ForStable.
type StableOutcome struct {
	Stable  bool          `json:"stable"`
	Ticks   int           `json:"ticks"`
	Elapsed time.Duration `json:"elapsed"`
}

// ForStable polls until the screen fingerprint is unchanged for
// Config.StableTicks consecutive ticks. A single unchanged tick is not
// enough: mid-transition frames can coincide, so the streak restarts
// whenever the fingerprint changes.
func (w *Waiter) ForStable(timeout, checkInterval time.Duration) (StableOutcome, error) {
	if checkInterval <= 0 {
		checkInterval = w.cfg.PollInterval
	}

	start := w.now()
	deadline := start.Add(timeout)

	var prev string
	streak := 0
	for tick := 1; ; tick++ {
		raw, err := w.src.Dump()
		if err != nil {
			return StableOutcome{Ticks: tick, Elapsed: w.now().Sub(start)}, err
		}

		fp := snapshot.Fingerprint(snapshot.Parse(raw))
		if tick > 1 && fp == prev {
			streak++
		} else {
			streak = 1
		}
		prev = fp

		if streak >= w.cfg.StableTicks {
			return StableOutcome{Stable: true, Ticks: tick, Elapsed: w.now().Sub(start)}, nil
		}
		if !w.now().Before(deadline) {
			return StableOutcome{Ticks: tick, Elapsed: w.now().Sub(start)}, nil
		}
		w.sleep(checkInterval)
	}
}

// ScrollOutcome reports the result of ScrollUntilVisible. Attempts counts
// the scroll gestures actually issued.
type ScrollOutcome struct {
	Found    bool `json:"found"`
	Attempts int  `json:"attempts"`
}

// ScrollUntilVisible checks for text before every scroll, so a zero-scroll
// success is possible and maxAttempts=0 degrades to a single presence check.
// Each failed check issues one drag between 70% and 30% of screen height
// through the horizontal center, then waits for the UI to settle.
// direction is "down" (default, reveals content below) or "up".
func (w *Waiter) ScrollUntilVisible(text, direction string, maxAttempts int) (ScrollOutcome, error) {
	if w.gestures == nil {
		return ScrollOutcome{}, fmt.Errorf("no gesture backend configured")
	}

	width, height, err := w.gestures.ScreenSize()
	if err != nil {
		return ScrollOutcome{}, err
	}

	x := width / 2
	fromY, toY := height*7/10, height*3/10
	if strings.EqualFold(direction, "up") {
		fromY, toY = toY, fromY
	}

	for attempt := 0; ; attempt++ {
		raw, err := w.src.Dump()
		if err != nil {
			return ScrollOutcome{Attempts: attempt}, err
		}
		if snapshot.ContainsText(raw, text) {
			return ScrollOutcome{Found: true, Attempts: attempt}, nil
		}
		if attempt >= maxAttempts {
			return ScrollOutcome{Attempts: attempt}, nil
		}

		if err := w.gestures.Swipe(x, fromY, x, toY, DefaultSwipeDuration); err != nil {
			return ScrollOutcome{Attempts: attempt}, err
		}
		w.sleep(w.cfg.SettleDelay)
	}
}
