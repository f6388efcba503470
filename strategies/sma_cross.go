package strategies

import (
	"fmt"

	"github.com/rustyeddy/paperbot/pricing"
)

// Signal classifies the latest step of a price history.
type Signal int

const (
	SignalNone Signal = iota
	SignalCrossUp
	SignalCrossDown
)

func (s Signal) String() string {
	switch s {
	case SignalCrossUp:
		return "CROSS_UP"
	case SignalCrossDown:
		return "CROSS_DOWN"
	default:
		return "NONE"
	}
}

// SMACross detects fast/slow simple-moving-average crossovers.
//
// A cross is evaluated between two consecutive observations: the averages
// over the full history versus the same averages with the newest point
// excluded. Equality at the previous step counts toward both directions, so
// a flat-then-rising fast average triggers CROSS_UP and a flat-then-falling
// one triggers CROSS_DOWN; the strict-inequality halves keep the two
// signals mutually exclusive.
type SMACross struct {
	FastWindow int
	SlowWindow int
}

// NewSMACross returns a detector with the given windows. Fast must be
// smaller than slow; that is the caller's (config validation's) job.
func NewSMACross(fast, slow int) *SMACross {
	return &SMACross{FastWindow: fast, SlowWindow: slow}
}

// Reason describes a signal for trade records, e.g. "SMA cross UP (7/21)".
func (s *SMACross) Reason(sig Signal) string {
	switch sig {
	case SignalCrossUp:
		return fmt.Sprintf("SMA cross UP (%d/%d)", s.FastWindow, s.SlowWindow)
	case SignalCrossDown:
		return fmt.Sprintf("SMA cross DOWN (%d/%d)", s.FastWindow, s.SlowWindow)
	default:
		return ""
	}
}

// Detect classifies the most recent step of h. It returns SignalNone until
// the history holds at least SlowWindow+2 points; seeded histories satisfy
// that immediately.
func (s *SMACross) Detect(h *pricing.History) Signal {
	if h.Len() < s.SlowWindow+2 {
		return SignalNone
	}

	fast := h.MovingAverage(s.FastWindow)
	slow := h.MovingAverage(s.SlowWindow)
	prevFast := h.PrevMovingAverage(s.FastWindow)
	prevSlow := h.PrevMovingAverage(s.SlowWindow)

	switch {
	case prevFast <= prevSlow && fast > slow:
		return SignalCrossUp
	case prevFast >= prevSlow && fast < slow:
		return SignalCrossDown
	default:
		return SignalNone
	}
}
