package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "paperbot.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSQLiteRecordAndListTrades(t *testing.T) {
	j := newTestDB(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recs := []TradeRecord{
		{TradeID: "01A", Time: base, Symbol: "AAA", Side: "BUY", Qty: 10, Price: 100, Reason: "SMA cross UP (7/21)"},
		{TradeID: "01B", Time: base.Add(time.Second), Symbol: "AAA", Side: "SELL", Qty: 10, Price: 120, Reason: "SMA cross DOWN (7/21)"},
		{TradeID: "01C", Time: base.Add(2 * time.Second), Symbol: "BBB", Side: "BUY", Qty: 5, Price: 50, Reason: "SMA cross UP (7/21)"},
	}
	for _, r := range recs {
		require.NoError(t, j.RecordTrade(r))
	}

	out, err := j.ListRecentTrades(2)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Newest first.
	assert.Equal(t, "01C", out[0].TradeID)
	assert.Equal(t, "01B", out[1].TradeID)
	assert.Equal(t, "BBB", out[0].Symbol)
	assert.Equal(t, 5.0, out[0].Qty)
	assert.Equal(t, 50.0, out[0].Price)
}

func TestSQLiteDuplicateTradeIDRejected(t *testing.T) {
	j := newTestDB(t)

	rec := TradeRecord{TradeID: "01A", Time: time.Now(), Symbol: "AAA", Side: "BUY", Qty: 1, Price: 1, Reason: "r"}
	require.NoError(t, j.RecordTrade(rec))
	assert.Error(t, j.RecordTrade(rec))
}

func TestSQLiteRecordEquity(t *testing.T) {
	j := newTestDB(t)

	err := j.RecordEquity(EquitySample{
		Time:   time.Now(),
		Cash:   9_000,
		Equity: 10_050,
	})
	assert.NoError(t, err)
}
