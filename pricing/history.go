package pricing

import "github.com/rustyeddy/paperbot/indicators"

// History is a fixed-capacity, insertion-ordered buffer of recent prices
// for one instrument. Once full, appending evicts the oldest entry.
type History struct {
	prices []float64
	cap    int
}

// NewHistory creates an empty history with the given capacity.
// Capacities below 1 are treated as 1.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		prices: make([]float64, 0, capacity),
		cap:    capacity,
	}
}

// Seed clears the history and fills it with n copies of price, so moving
// averages are well-defined from the first tick. n is clamped to capacity.
func (h *History) Seed(price float64, n int) {
	if n > h.cap {
		n = h.cap
	}
	h.prices = h.prices[:0]
	for i := 0; i < n; i++ {
		h.prices = append(h.prices, price)
	}
}

// Append adds a price, evicting the oldest entry if at capacity.
func (h *History) Append(price float64) {
	if len(h.prices) == h.cap {
		copy(h.prices, h.prices[1:])
		h.prices[len(h.prices)-1] = price
		return
	}
	h.prices = append(h.prices, price)
}

func (h *History) Len() int { return len(h.prices) }

// Cap returns the configured capacity.
func (h *History) Cap() int { return h.cap }

// Last returns the most recent price, or 0 if the history is empty.
func (h *History) Last() float64 {
	if len(h.prices) == 0 {
		return 0
	}
	return h.prices[len(h.prices)-1]
}

// Values returns the prices oldest-first. The slice is a copy.
func (h *History) Values() []float64 {
	out := make([]float64, len(h.prices))
	copy(out, h.prices)
	return out
}

// MovingAverage returns the arithmetic mean of the last min(window, Len())
// entries, or 0 when the history is empty.
func (h *History) MovingAverage(window int) float64 {
	return indicators.MA(h.prices, window)
}

// PrevMovingAverage is MovingAverage computed over the history with the
// most recent point excluded. It is what a crossover detector compares the
// current averages against.
func (h *History) PrevMovingAverage(window int) float64 {
	if len(h.prices) == 0 {
		return 0
	}
	return indicators.MA(h.prices[:len(h.prices)-1], window)
}
