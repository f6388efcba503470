package sim

import (
	"math"
	"time"

	"github.com/rustyeddy/paperbot/internal/id"
)

// priceFloor is the minimum price a trade may execute at.
const priceFloor = 0.01

// closeEpsilon: a position at or below this quantity after a sell is
// treated as fully closed.
const closeEpsilon = 1e-9

// Ledger owns cash and per-instrument positions and applies buy/sell
// instructions with clamping. It is not safe for concurrent use on its own;
// the engine's mutex guards it.
type Ledger struct {
	cash         float64
	startingCash float64
	positions    map[string]*Position
	trades       []Trade // oldest first
	tradeCap     int
}

func NewLedger(startingCash float64, symbols []string, tradeCap int) *Ledger {
	l := &Ledger{
		startingCash: startingCash,
		tradeCap:     tradeCap,
	}
	l.Reset(symbols)
	return l
}

// Reset restores starting cash, zeroes every position and clears the trade
// history.
func (l *Ledger) Reset(symbols []string) {
	l.cash = l.startingCash
	l.positions = make(map[string]*Position, len(symbols))
	for _, s := range symbols {
		l.positions[s] = &Position{Symbol: s}
	}
	l.trades = nil
}

func (l *Ledger) Cash() float64         { return l.cash }
func (l *Ledger) StartingCash() float64 { return l.startingCash }

// Position returns a copy of the instrument's position. Unknown symbols
// read as an empty position.
func (l *Ledger) Position(symbol string) Position {
	if p, ok := l.positions[symbol]; ok {
		return *p
	}
	return Position{Symbol: symbol}
}

// Equity is cash plus the mark-to-market value of all open positions.
func (l *Ledger) Equity(prices map[string]float64) float64 {
	total := l.cash
	for sym, p := range l.positions {
		total += p.MarketValue(prices[sym])
	}
	return total
}

// Trades returns up to limit trades, newest first.
func (l *Ledger) Trades(limit int) []Trade {
	n := len(l.trades)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Trade, 0, n)
	for i := len(l.trades) - 1; i >= len(l.trades)-n; i-- {
		out = append(out, l.trades[i])
	}
	return out
}

// Execute applies one buy or sell instruction. Quantities and prices are
// clamped rather than rejected: a buy beyond available cash is reduced to
// the largest affordable whole-cent quantity, a sell beyond the held
// quantity is reduced to the position. If the clamped quantity is zero the
// action is dropped and ok is false. No error paths; clamping is normal
// risk-limiting behavior, not failure.
func (l *Ledger) Execute(symbol string, side Side, qty, price float64, reason string, now time.Time) (Trade, bool) {
	if qty < 0 {
		qty = 0
	}
	if price < priceFloor {
		price = priceFloor
	}
	if qty == 0 {
		return Trade{}, false
	}

	pos, ok := l.positions[symbol]
	if !ok {
		pos = &Position{Symbol: symbol}
		l.positions[symbol] = pos
	}

	switch side {
	case SideBuy:
		cost := qty * price
		if cost > l.cash {
			qty = math.Floor(l.cash/price*100) / 100
			if qty <= 0 {
				return Trade{}, false
			}
			cost = qty * price
		}

		newQty := pos.Qty + qty
		if pos.Qty > 0 {
			pos.AvgPrice = (pos.AvgPrice*pos.Qty + price*qty) / newQty
		} else {
			pos.AvgPrice = price
		}
		pos.Qty = newQty
		l.cash -= cost
		return l.record(symbol, SideBuy, qty, price, reason, now), true

	case SideSell:
		sellQty := math.Min(pos.Qty, qty)
		if sellQty <= 0 {
			return Trade{}, false
		}
		proceeds := sellQty * price
		pos.Qty -= sellQty
		if pos.Qty <= closeEpsilon {
			pos.Qty = 0
			pos.AvgPrice = 0
		}
		l.cash += proceeds
		return l.record(symbol, SideSell, sellQty, price, reason, now), true
	}

	return Trade{}, false
}

func (l *Ledger) record(symbol string, side Side, qty, price float64, reason string, now time.Time) Trade {
	t := Trade{
		ID:     id.New(),
		Time:   now,
		Symbol: symbol,
		Side:   side,
		Qty:    qty,
		Price:  price,
		Reason: reason,
	}
	if len(l.trades) == l.tradeCap {
		copy(l.trades, l.trades[1:])
		l.trades[len(l.trades)-1] = t
		return t
	}
	l.trades = append(l.trades, t)
	return t
}
