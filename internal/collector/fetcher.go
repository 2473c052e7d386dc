package collector

import (
	"context"

	"CoinCast/internal/model"
)

// Fetcher defines the interface for fetching daily market bars.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, ticker, rng string) ([]model.OHLCV, error)
	Name() string
}
