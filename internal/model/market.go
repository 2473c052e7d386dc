package model

import "time"

// OHLCV represents a single daily bar. Only open and close are ingested.
type OHLCV struct {
	Time  time.Time
	Open  float64
	Close float64
}

// CoinRow is one stored row of coin_data. Nil metrics are written as NULL.
type CoinRow struct {
	Ticker         string
	Date           time.Time
	OpenPrice      *float64
	PricePctChange *float64
}
