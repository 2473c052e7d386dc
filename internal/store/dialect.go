package store

import "fmt"

// dialect captures the differences between the supported SQL backends.
type dialect struct {
	driver string
	schema []string
	// bind returns the placeholder for the n-th (1-based) parameter.
	bind func(n int) string
}

var sqliteDialect = dialect{
	driver: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS coin_data (
			ticker           TEXT NOT NULL,
			date             TEXT NOT NULL,
			open_price       REAL,
			price_pct_change REAL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_coin_data_ticker_date ON coin_data(ticker, date)`,
	},
	bind: func(int) string { return "?" },
}

var postgresDialect = dialect{
	driver: "postgres",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS coin_data (
			ticker           VARCHAR(32) NOT NULL,
			date             DATE NOT NULL,
			open_price       DOUBLE PRECISION,
			price_pct_change DOUBLE PRECISION
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_coin_data_ticker_date ON coin_data(ticker, date)`,
	},
	bind: func(n int) string { return fmt.Sprintf("$%d", n) },
}
