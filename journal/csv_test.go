package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournal(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(TradeRecord{
		TradeID: "01A",
		Time:    now,
		Symbol:  "AAA",
		Side:    "BUY",
		Qty:     10.9,
		Price:   110,
		Reason:  "SMA cross UP (7/21)",
	}))
	require.NoError(t, j.RecordEquity(EquitySample{Time: now, Cash: 8_801, Equity: 10_000}))
	require.NoError(t, j.Close())

	tf, err := os.Open(tradesPath)
	require.NoError(t, err)
	defer tf.Close()

	rows, err := csv.NewReader(tf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"trade_id", "time", "symbol", "side", "qty", "price", "reason"}, rows[0])
	assert.Equal(t, "01A", rows[1][0])
	assert.Equal(t, "2026-03-01T12:00:00Z", rows[1][1])
	assert.Equal(t, "BUY", rows[1][3])
	assert.Equal(t, "10.9", rows[1][4])

	ef, err := os.Open(equityPath)
	require.NoError(t, err)
	defer ef.Close()

	rows, err = csv.NewReader(ef).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"time", "cash", "equity"}, rows[0])
	assert.Equal(t, "8801", rows[1][1])
}
