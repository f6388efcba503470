package pricing

import (
	"math"
	"math/rand"
	"time"
)

// Walk generates the next simulated price for an instrument: a random walk
// with mild mean reversion toward the instrument's anchor and a slowly
// breathing volatility driven by the wall clock.
//
// Walk is stateless apart from the injected RNG; Next is a pure function of
// (last, anchor, clock reading, one RNG draw).
type Walk struct {
	// Reversion is the fraction of the anchor gap closed per step.
	Reversion float64
	// AmpBase and AmpSwing shape the volatility: stddev of the shock is
	// AmpBase + AmpSwing*sin(clockSeconds/Period).
	AmpBase  float64
	AmpSwing float64
	Period   float64
	// Floor is the minimum price a step can produce.
	Floor float64

	Now func() time.Time
	Rng *rand.Rand
}

// NewWalk returns a Walk with the default simulation parameters, a
// real-clock time source and the given RNG. Pass a fixed Now and a seeded
// RNG for deterministic tests.
func NewWalk(rng *rand.Rand) *Walk {
	return &Walk{
		Reversion: 0.003,
		AmpBase:   0.8,
		AmpSwing:  0.2,
		Period:    4.0,
		Floor:     1.0,
		Now:       time.Now,
		Rng:       rng,
	}
}

// Next computes the next price from the current price and the anchor.
// The result is floored at w.Floor and rounded to cents.
func (w *Walk) Next(last, anchor float64) float64 {
	drift := (anchor - last) * w.Reversion
	secs := float64(w.Now().UnixNano()) / float64(time.Second)
	vol := w.AmpBase + w.AmpSwing*math.Sin(secs/w.Period)
	shock := w.Rng.NormFloat64() * vol
	next := last + drift + shock
	if next < w.Floor {
		next = w.Floor
	}
	return math.Round(next*100) / 100
}
