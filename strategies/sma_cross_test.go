package strategies

import (
	"testing"

	"github.com/rustyeddy/paperbot/pricing"
	"github.com/stretchr/testify/assert"
)

func seeded(price float64, n int) *pricing.History {
	h := pricing.NewHistory(200)
	h.Seed(price, n)
	return h
}

func TestDetectCrossUpAtExactIndex(t *testing.T) {
	det := NewSMACross(7, 21)
	h := seeded(100, 30)

	// Flat history: no signal.
	assert.Equal(t, SignalNone, det.Detect(h))

	// First rising point: fast MA lifts above slow while the previous
	// averages were equal. That is the cross.
	h.Append(101)
	assert.Equal(t, SignalCrossUp, det.Detect(h))

	// Further rising points: fast already above slow, no new signal.
	h.Append(102)
	assert.Equal(t, SignalNone, det.Detect(h))
	h.Append(103)
	assert.Equal(t, SignalNone, det.Detect(h))
}

func TestDetectCrossDown(t *testing.T) {
	det := NewSMACross(7, 21)
	h := seeded(100, 30)

	h.Append(99)
	assert.Equal(t, SignalCrossDown, det.Detect(h))

	h.Append(98)
	assert.Equal(t, SignalNone, det.Detect(h))
}

func TestDetectRequiresWarmup(t *testing.T) {
	det := NewSMACross(7, 21)

	// slow_window+2 = 23 points required.
	h := seeded(100, 21)
	h.Append(101) // 22 points
	assert.Equal(t, SignalNone, det.Detect(h))

	h2 := seeded(100, 22)
	h2.Append(101) // 23 points
	assert.Equal(t, SignalCrossUp, det.Detect(h2))
}

func TestDetectFlatThenFallingIsCrossDown(t *testing.T) {
	det := NewSMACross(2, 3)
	h := pricing.NewHistory(10)
	// prevFast == prevSlow (flat), then falling.
	for _, p := range []float64{100, 100, 100, 100, 90} {
		h.Append(p)
	}
	assert.Equal(t, SignalCrossDown, det.Detect(h))
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "NONE", SignalNone.String())
	assert.Equal(t, "CROSS_UP", SignalCrossUp.String())
	assert.Equal(t, "CROSS_DOWN", SignalCrossDown.String())
}

func TestReason(t *testing.T) {
	det := NewSMACross(7, 21)
	assert.Equal(t, "SMA cross UP (7/21)", det.Reason(SignalCrossUp))
	assert.Equal(t, "SMA cross DOWN (7/21)", det.Reason(SignalCrossDown))
	assert.Equal(t, "", det.Reason(SignalNone))
}
