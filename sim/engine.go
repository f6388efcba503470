package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rustyeddy/paperbot/config"
	"github.com/rustyeddy/paperbot/journal"
	"github.com/rustyeddy/paperbot/pricing"
	"github.com/rustyeddy/paperbot/risk"
	"github.com/rustyeddy/paperbot/strategies"
)

// Status of the engine lifecycle: stopped -> running -> stopping -> stopped,
// with resetting as a transient marker while Reset tears the loop down.
type Status string

const (
	StatusStopped   Status = "stopped"
	StatusRunning   Status = "running"
	StatusStopping  Status = "stopping"
	StatusResetting Status = "resetting"
)

// defaultResetTimeout bounds Reset's wait for the tick loop to exit.
const defaultResetTimeout = 2500 * time.Millisecond

// Engine drives the simulation: one background goroutine advances prices,
// detects SMA crossovers and executes trades against the ledger, once per
// tick interval. A single mutex guards all state; control calls and
// snapshot reads take the same lock, so readers are linearizable with
// respect to ticks. Construct one with NewEngine and hand it to the
// transport layer; there is no package-level instance.
type Engine struct {
	mu sync.Mutex

	cfg      *config.Config
	clock    func() time.Time
	walk     *pricing.Walk
	detector *strategies.SMACross
	journal  journal.Journal

	ledger *Ledger
	hist   map[string]*pricing.History
	prices map[string]float64

	status   Status
	lastTick time.Time
	logs     []string               // newest first
	equity   []journal.EquitySample // oldest first

	// epoch stamps the live generation of engine state. Reset bumps it, so
	// a tick loop that outlives Reset's join timeout observes a stale epoch
	// and abandons instead of clobbering post-reset state.
	epoch  uint64
	cancel context.CancelFunc
	done   chan struct{}

	resetTimeout time.Duration
}

// NewEngine constructs a stopped engine from cfg. A nil journal disables
// persistence.
func NewEngine(cfg *config.Config, j journal.Journal) *Engine {
	if j == nil {
		j = journal.Nop{}
	}
	e := &Engine{
		cfg:          cfg,
		clock:        time.Now,
		walk:         pricing.NewWalk(rand.New(rand.NewSource(time.Now().UnixNano()))),
		detector:     strategies.NewSMACross(cfg.Strategy.FastWindow, cfg.Strategy.SlowWindow),
		journal:      j,
		ledger:       NewLedger(cfg.Account.StartingCash, nil, cfg.Engine.TradeCap),
		status:       StatusStopped,
		resetTimeout: defaultResetTimeout,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.initLocked()
	e.logf("Bot initialized. Paper trading only (simulated prices).")
	e.sampleEquityLocked()
	return e
}

// initLocked reinitializes cash, positions, prices, histories, trades, logs
// and equity samples in place. Callers hold e.mu.
func (e *Engine) initLocked() {
	syms := e.cfg.Universe.Symbols()
	e.ledger.Reset(syms)
	e.hist = make(map[string]*pricing.History, len(syms))
	e.prices = make(map[string]float64, len(syms))
	for _, in := range e.cfg.Universe {
		e.prices[in.Symbol] = in.Anchor
		h := pricing.NewHistory(e.cfg.Engine.HistoryCap)
		h.Seed(in.Anchor, e.cfg.Engine.WarmupBars)
		e.hist[in.Symbol] = h
	}
	e.logs = nil
	e.equity = nil
	e.lastTick = time.Time{}
	e.cancel = nil
	e.done = nil
}

// Start spawns the background tick loop. Calling it while the loop is
// alive is a logged no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusStopped {
		e.logf("Start ignored: already running.")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.status = StatusRunning
	e.logf("Bot started.")
	go e.run(ctx, e.done, e.epoch)
}

// Stop raises the cooperative stop signal. The loop observes it at the next
// tick boundary; an in-flight tick always completes. Calling Stop while not
// running is a logged no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusRunning {
		e.logf("Stop ignored: already stopped.")
		return
	}
	e.cancel()
	e.status = StatusStopping
	e.logf("Stopping bot...")
}

// Reset forces a stop, waits up to the reset timeout for the loop to exit,
// then reinitializes all state. If the loop does not exit in time, Reset
// proceeds anyway; the bumped epoch keeps the stale loop from mutating the
// fresh state.
func (e *Engine) Reset() {
	e.mu.Lock()
	wasRunning := e.status == StatusRunning || e.status == StatusStopping
	if e.cancel != nil {
		e.cancel()
	}
	e.status = StatusResetting
	e.epoch++
	done := e.done
	timeout := e.resetTimeout
	e.mu.Unlock()

	if wasRunning && done != nil {
		select {
		case <-done:
		case <-time.After(timeout):
			e.mu.Lock()
			e.logf("Reset: tick loop did not exit within %s; proceeding.", timeout)
			e.mu.Unlock()
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.initLocked()
	e.status = StatusStopped
	e.logf("Bot reset.")
	e.sampleEquityLocked()
}

// run is the background tick loop. The inter-tick wait happens outside the
// lock; cancellation is observed only at tick boundaries.
func (e *Engine) run(ctx context.Context, done chan<- struct{}, epoch uint64) {
	defer close(done)
	defer e.finish(epoch)

	interval := time.Duration(e.cfg.Strategy.TickSeconds * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		if !e.tick(epoch) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// finish runs on every exit path of the loop, including panics, so the
// engine always lands in stopped with a closing log line. A stale epoch
// means a reset already rebuilt the state this loop was driving; leave the
// fresh state alone.
func (e *Engine) finish(epoch uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.epoch != epoch {
		return
	}
	e.status = StatusStopped
	e.logf("Bot stopped.")
}

// tick performs one simulation step under the lock: advance every price,
// then evaluate every instrument against the fully updated price set, then
// sample equity. The two passes are separate so trading decisions carry no
// instrument-ordering bias. Returns false if a reset invalidated this
// loop's epoch.
func (e *Engine) tick(epoch uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.epoch != epoch {
		return false
	}

	now := e.clock()

	for _, in := range e.cfg.Universe {
		e.advancePrice(in.Symbol, in.Anchor)
	}
	for _, in := range e.cfg.Universe {
		e.evaluate(in.Symbol, now)
	}

	e.lastTick = now
	e.sampleEquityLocked()
	return true
}

// advancePrice generates the next price for one instrument. A panic inside
// one instrument's processing is logged and that instrument skipped for the
// tick; the loop itself survives.
func (e *Engine) advancePrice(symbol string, anchor float64) {
	defer func() {
		if r := recover(); r != nil {
			e.logf("Tick error for %s: %v (instrument skipped)", symbol, r)
		}
	}()
	next := e.walk.Next(e.prices[symbol], anchor)
	e.prices[symbol] = next
	e.hist[symbol].Append(next)
}

// evaluate runs signal detection and trade execution for one instrument.
func (e *Engine) evaluate(symbol string, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			e.logf("Tick error for %s: %v (instrument skipped)", symbol, r)
		}
	}()

	sig := e.detector.Detect(e.hist[symbol])
	if sig == strategies.SignalNone {
		return
	}

	pos := e.ledger.Position(symbol)
	px := e.prices[symbol]

	switch {
	case sig == strategies.SignalCrossUp && pos.Qty <= 0:
		size := risk.Size(risk.Inputs{
			Cash:    e.ledger.Cash(),
			RiskPct: e.cfg.Strategy.RiskPerTrade,
			Price:   px,
		})
		e.executeLocked(symbol, SideBuy, size.Qty, px, e.detector.Reason(sig), now)

	case sig == strategies.SignalCrossDown && pos.Qty > 0:
		e.executeLocked(symbol, SideSell, pos.Qty, px, e.detector.Reason(sig), now)
	}
}

// executeLocked routes one instruction through the ledger and, if a trade
// actually occurred, logs and journals it.
func (e *Engine) executeLocked(symbol string, side Side, qty, price float64, reason string, now time.Time) {
	tr, ok := e.ledger.Execute(symbol, side, qty, price, reason, now)
	if !ok {
		return
	}
	e.logf("%s %s qty=%.2f @ %.2f (%s)", tr.Side, tr.Symbol, tr.Qty, tr.Price, tr.Reason)
	if err := e.journal.RecordTrade(journal.TradeRecord{
		TradeID: tr.ID,
		Time:    tr.Time,
		Symbol:  tr.Symbol,
		Side:    string(tr.Side),
		Qty:     tr.Qty,
		Price:   tr.Price,
		Reason:  tr.Reason,
	}); err != nil {
		e.logf("Journal error: %v", err)
	}
}

// sampleEquityLocked appends one equity sample and forwards it to the
// journal. Callers hold e.mu.
func (e *Engine) sampleEquityLocked() {
	sample := journal.EquitySample{
		Time:   e.clock(),
		Cash:   e.ledger.Cash(),
		Equity: e.ledger.Equity(e.prices),
	}
	if len(e.equity) == e.cfg.Engine.EquityCap {
		copy(e.equity, e.equity[1:])
		e.equity[len(e.equity)-1] = sample
	} else {
		e.equity = append(e.equity, sample)
	}
	if err := e.journal.RecordEquity(sample); err != nil {
		e.logf("Journal error: %v", err)
	}
}

// logf prepends a timestamped line to the bounded log ring, newest first.
// Callers hold e.mu.
func (e *Engine) logf(format string, args ...any) {
	line := e.clock().UTC().Format(time.RFC3339) + "  " + fmt.Sprintf(format, args...)
	if len(e.logs) == e.cfg.Engine.LogCap {
		copy(e.logs[1:], e.logs)
		e.logs[0] = line
		return
	}
	e.logs = append([]string{line}, e.logs...)
}

// Snapshot returns a read-only, consistent view of engine state. It never
// mutates anything.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock()
	equity := e.ledger.Equity(e.prices)

	var lastTick *string
	if !e.lastTick.IsZero() {
		s := e.lastTick.UTC().Format(time.RFC3339)
		lastTick = &s
	}

	prices := make(map[string]float64, len(e.prices))
	positions := make(map[string]PositionView, len(e.prices))
	for _, in := range e.cfg.Universe {
		px := e.prices[in.Symbol]
		pos := e.ledger.Position(in.Symbol)
		prices[in.Symbol] = px
		positions[in.Symbol] = PositionView{
			Qty:           pos.Qty,
			AvgPrice:      pos.AvgPrice,
			LastPrice:     px,
			MarketValue:   pos.MarketValue(px),
			UnrealizedPnL: pos.UnrealizedPL(px),
		}
	}

	trades := make([]TradeView, 0, snapshotTrades)
	for _, tr := range e.ledger.Trades(snapshotTrades) {
		trades = append(trades, TradeView{
			TS:     tr.Time.UTC().Format(time.RFC3339),
			Symbol: tr.Symbol,
			Side:   string(tr.Side),
			Qty:    tr.Qty,
			Price:  tr.Price,
			Reason: tr.Reason,
		})
	}

	nLogs := snapshotLogs
	if nLogs > len(e.logs) {
		nLogs = len(e.logs)
	}
	logs := make([]string, nLogs)
	copy(logs, e.logs[:nLogs])

	start := 0
	if len(e.equity) > snapshotEquity {
		start = len(e.equity) - snapshotEquity
	}
	curve := make([]EquityPoint, 0, len(e.equity)-start)
	for _, s := range e.equity[start:] {
		curve = append(curve, EquityPoint{
			TS:     s.Time.UTC().Format(time.RFC3339),
			Equity: s.Equity,
		})
	}

	return Snapshot{
		TS:          now.UTC().Format(time.RFC3339),
		Status:      string(e.status),
		Running:     e.status == StatusRunning,
		LastTickTS:  lastTick,
		Cash:        e.ledger.Cash(),
		Equity:      equity,
		PnL:         equity - e.ledger.StartingCash(),
		Prices:      prices,
		Positions:   positions,
		Trades:      trades,
		Logs:        logs,
		EquityCurve: curve,
		Params: Params{
			FastWindow:   e.cfg.Strategy.FastWindow,
			SlowWindow:   e.cfg.Strategy.SlowWindow,
			TickSeconds:  e.cfg.Strategy.TickSeconds,
			RiskPerTrade: e.cfg.Strategy.RiskPerTrade,
		},
	}
}
