package journal

import "time"

// TradeRecord is one executed paper trade as persisted by a journal.
type TradeRecord struct {
	TradeID string
	Time    time.Time
	Symbol  string
	Side    string // "BUY" | "SELL"
	Qty     float64
	Price   float64
	Reason  string
}

// EquitySample is one point of the account's equity curve.
type EquitySample struct {
	Time   time.Time
	Cash   float64
	Equity float64
}

// Journal persists executed trades and equity samples. Implementations must
// tolerate being called once per engine tick.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySample) error
	Close() error
}

// Nop is a Journal that discards everything. The engine uses it when no
// persistence is configured.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error   { return nil }
func (Nop) RecordEquity(EquitySample) error { return nil }
func (Nop) Close() error                    { return nil }
