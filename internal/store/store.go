package store

import (
	"context"

	"CoinCast/internal/model"
)

// SeriesStore is the read side used to build charts.
type SeriesStore interface {
	ListTickers(ctx context.Context) ([]string, error)
	FetchSeries(ctx context.Context, ticker string, metric model.MetricKind) (model.TimeSeries, error)
}

// RowWriter persists ingested rows.
type RowWriter interface {
	UpsertRows(ctx context.Context, rows []model.CoinRow) error
}

// Store is a full storage backend.
type Store interface {
	SeriesStore
	RowWriter
	Ping(ctx context.Context) error
	Close() error
}
