package sim

import "time"

// Side of an executed trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Trade is an immutable record of one executed action.
type Trade struct {
	ID     string
	Time   time.Time
	Symbol string
	Side   Side
	Qty    float64
	Price  float64
	Reason string
}
