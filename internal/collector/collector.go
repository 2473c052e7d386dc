package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"CoinCast/internal/model"
	"CoinCast/internal/store"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData map[string][]model.OHLCV
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, ticker, _ string) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.DailyData[ticker]; ok {
		return bars, nil
	}
	return generateMockBars(m.Price, 30), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:  today.AddDate(0, 0, -(count - i)),
			Open:  p * 0.999,
			Close: p,
		}
	}
	return bars
}

// Collector pulls daily bars for each ticker and writes them to storage.
type Collector struct {
	Fetcher Fetcher
	Writer  store.RowWriter
	Tickers []string
	Range   string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, writer store.RowWriter, tickers []string, rng string) *Collector {
	return &Collector{Fetcher: fetcher, Writer: writer, Tickers: tickers, Range: rng}
}

// Collect ingests every configured ticker. A failing ticker is logged and
// skipped; the returned error reports how many failed.
func (c *Collector) Collect(ctx context.Context) error {
	failed := 0
	for _, ticker := range c.Tickers {
		n, err := c.CollectTicker(ctx, ticker)
		if err != nil {
			log.Printf("[WARN] ingest %s via %s failed: %v", ticker, c.Fetcher.Name(), err)
			failed++
			continue
		}
		log.Printf("[INFO] ingested %d rows for %s", n, ticker)
	}
	if failed > 0 {
		return fmt.Errorf("ingest: %d of %d tickers failed", failed, len(c.Tickers))
	}
	return nil
}

// CollectTicker fetches and stores one ticker, returning the number of rows written.
func (c *Collector) CollectTicker(ctx context.Context, ticker string) (int, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, c.Range)
	if err != nil {
		return 0, fmt.Errorf("fetch daily bars: %w", err)
	}
	rows := ToRows(ticker, bars)
	if len(rows) == 0 {
		return 0, nil
	}
	if err := c.Writer.UpsertRows(ctx, rows); err != nil {
		return 0, fmt.Errorf("store rows: %w", err)
	}
	return len(rows), nil
}

// ToRows converts ascending daily bars into coin_data rows. The percent change
// is close-to-close against the previous calendar day and nil for the first day.
// Bars falling on the same calendar day keep the latest.
func ToRows(ticker string, bars []model.OHLCV) []model.CoinRow {
	rows := make([]model.CoinRow, 0, len(bars))
	var (
		prevDayClose float64
		hasPrevDay   bool
		lastClose    float64
	)
	for _, b := range bars {
		date := truncateDay(b.Time)
		if n := len(rows); n > 0 && !rows[n-1].Date.Equal(date) {
			prevDayClose, hasPrevDay = lastClose, true
		}
		lastClose = b.Close

		open := b.Open
		row := model.CoinRow{
			Ticker:    ticker,
			Date:      date,
			OpenPrice: &open,
		}
		if hasPrevDay && prevDayClose != 0 {
			pct := (b.Close - prevDayClose) / prevDayClose * 100
			row.PricePctChange = &pct
		}

		if n := len(rows); n > 0 && rows[n-1].Date.Equal(date) {
			rows[n-1] = row
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
