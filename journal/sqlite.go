package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, time, symbol, side, qty, price, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Time, t.Symbol, t.Side, t.Qty, t.Price, t.Reason,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySample) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(time, cash, equity)
		VALUES (?, ?, ?)`,
		e.Time, e.Cash, e.Equity,
	)
	return err
}

// ListRecentTrades returns up to limit trades, newest first.
func (j *SQLiteJournal) ListRecentTrades(limit int) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, time, symbol, side, qty, price, reason
		FROM trades
		ORDER BY time DESC, trade_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.Time,
			&rec.Symbol,
			&rec.Side,
			&rec.Qty,
			&rec.Price,
			&rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
