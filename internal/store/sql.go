package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"CoinCast/internal/model"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const storedDateLayout = "2006-01-02"

// SQLStore reads and writes coin_data through database/sql.
// Every call borrows a dedicated connection from the pool and returns it before exiting.
type SQLStore struct {
	db           *sql.DB
	dialect      dialect
	queryTimeout time.Duration
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string, queryTimeout time.Duration) (*SQLStore, error) {
	db, err := sql.Open(sqliteDialect.driver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the ingest job write while requests read.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	return newSQLStore(db, sqliteDialect, queryTimeout)
}

// NewPostgresStore connects to PostgreSQL and runs migrations.
func NewPostgresStore(dsn string, queryTimeout time.Duration) (*SQLStore, error) {
	db, err := sql.Open(postgresDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w: %w", model.ErrStorageUnavailable, err)
	}
	return newSQLStore(db, postgresDialect, queryTimeout)
}

func newSQLStore(db *sql.DB, d dialect, queryTimeout time.Duration) (*SQLStore, error) {
	s := &SQLStore{db: db, dialect: d, queryTimeout: queryTimeout}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLStore) migrate() error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func (s *SQLStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// ListTickers returns every distinct ticker, sorted ascending.
func (s *SQLStore) ListTickers(ctx context.Context) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickers: %w: %w", model.ErrStorageUnavailable, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `SELECT DISTINCT ticker FROM coin_data`)
	if err != nil {
		return nil, fmt.Errorf("list tickers: %w: %w", model.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	tickers := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tickers: %w: %w", model.ErrStorageUnavailable, err)
	}
	sort.Strings(tickers)
	return tickers, nil
}

// FetchSeries returns the ascending history of metric for ticker. Unknown
// tickers yield an empty series; rows with a NULL or non-finite value are skipped.
func (s *SQLStore) FetchSeries(ctx context.Context, ticker string, metric model.MetricKind) (model.TimeSeries, error) {
	series := model.TimeSeries{Ticker: ticker, Metric: metric, Points: []model.TimeSeriesPoint{}}

	column, err := metric.Column()
	if err != nil {
		return series, err
	}
	query := fmt.Sprintf(`SELECT CAST(date AS TEXT), %s FROM coin_data WHERE ticker = %s ORDER BY date`,
		column, s.dialect.bind(1))

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return series, fmt.Errorf("fetch series: %w: %w", model.ErrStorageUnavailable, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, ticker)
	if err != nil {
		return series, fmt.Errorf("fetch series: %w: %w", model.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawDate string
			value   sql.NullFloat64
		)
		if err := rows.Scan(&rawDate, &value); err != nil {
			return series, fmt.Errorf("scan %s row: %w", column, err)
		}
		if !value.Valid || math.IsNaN(value.Float64) || math.IsInf(value.Float64, 0) {
			continue
		}
		date, err := parseStoredDate(rawDate)
		if err != nil {
			return series, err
		}
		series.Points = append(series.Points, model.TimeSeriesPoint{Date: date, Value: value.Float64})
	}
	if err := rows.Err(); err != nil {
		return series, fmt.Errorf("fetch series: %w: %w", model.ErrStorageUnavailable, err)
	}

	// Text ordering in storage may not match calendar ordering for mixed formats.
	sort.SliceStable(series.Points, func(i, j int) bool {
		return series.Points[i].Date.Before(series.Points[j].Date)
	})
	return series, nil
}

// UpsertRows inserts or replaces rows keyed by (ticker, date) in one transaction.
// A nil percent change never overwrites a stored one.
func (s *SQLStore) UpsertRows(ctx context.Context, rows []model.CoinRow) error {
	if len(rows) == 0 {
		return nil
	}
	b := s.dialect.bind
	query := fmt.Sprintf(`INSERT INTO coin_data (ticker, date, open_price, price_pct_change)
		VALUES (%s, %s, %s, %s)
		ON CONFLICT (ticker, date) DO UPDATE SET
			open_price = excluded.open_price,
			price_pct_change = COALESCE(excluded.price_pct_change, coin_data.price_pct_change)`,
		b(1), b(2), b(3), b(4))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w: %w", model.ErrStorageUnavailable, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Ticker, r.Date.Format(storedDateLayout), r.OpenPrice, r.PricePctChange); err != nil {
			return fmt.Errorf("upsert %s %s: %w", r.Ticker, r.Date.Format(storedDateLayout), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// parseStoredDate accepts "2006-01-02" optionally followed by a time part.
func parseStoredDate(raw string) (time.Time, error) {
	if len(raw) >= len(storedDateLayout) {
		if t, err := time.Parse(storedDateLayout, raw[:len(storedDateLayout)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse stored date %q: unrecognised format", raw)
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
