package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO runs
		(run_id, created, symbol, strategy, start_date, end_date, initial_cash, final_cash,
		 position, final_value, trades, wins, losses, net_pl, return_pct, max_dd_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Symbol, r.Strategy, r.Start, r.End, r.InitialCash, r.FinalCash,
		r.Position, r.FinalValue, r.Trades, r.Wins, r.Losses, r.NetPL, r.ReturnPct, r.MaxDDPct,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, symbol, date, side, price, shares)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Symbol, t.Date, t.Side, t.Price, t.Shares,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, time, close, cash, position, equity)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Time, e.Close, e.Cash, e.Position, e.Equity,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
