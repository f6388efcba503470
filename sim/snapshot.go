package sim

// Snapshot window sizes: the engine keeps more history than a reader needs;
// a snapshot carries only the most recent slice of each stream.
const (
	snapshotTrades = 30
	snapshotLogs   = 30
	snapshotEquity = 240
)

// Snapshot is an immutable, consistent view of engine state, taken under
// the same lock that guards tick mutation. Reading one never observes a
// half-applied tick.
type Snapshot struct {
	TS          string                  `json:"ts"`
	Status      string                  `json:"status"`
	Running     bool                    `json:"running"`
	LastTickTS  *string                 `json:"last_tick_ts"`
	Cash        float64                 `json:"cash"`
	Equity      float64                 `json:"equity"`
	PnL         float64                 `json:"pnl"`
	Prices      map[string]float64      `json:"prices"`
	Positions   map[string]PositionView `json:"positions"`
	Trades      []TradeView             `json:"trades"`
	Logs        []string                `json:"logs"`
	EquityCurve []EquityPoint           `json:"equity_curve"`
	Params      Params                  `json:"params"`
}

// PositionView is the read-only projection of one position.
type PositionView struct {
	Qty           float64 `json:"qty"`
	AvgPrice      float64 `json:"avg_price"`
	LastPrice     float64 `json:"last_price"`
	MarketValue   float64 `json:"market_value"`
	UnrealizedPnL float64 `json:"unrealized_pnl"`
}

// TradeView is the read-only projection of one executed trade.
type TradeView struct {
	TS     string  `json:"ts"`
	Symbol string  `json:"symbol"`
	Side   string  `json:"side"`
	Qty    float64 `json:"qty"`
	Price  float64 `json:"price"`
	Reason string  `json:"reason"`
}

// EquityPoint is one point of the capped equity curve, oldest first within
// the snapshot window.
type EquityPoint struct {
	TS     string  `json:"ts"`
	Equity float64 `json:"equity"`
}

// Params are the active strategy parameters.
type Params struct {
	FastWindow   int     `json:"fast_window"`
	SlowWindow   int     `json:"slow_window"`
	TickSeconds  float64 `json:"tick_seconds"`
	RiskPerTrade float64 `json:"risk_per_trade"`
}
