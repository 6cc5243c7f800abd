package contracts

import (
	"context"
	"time"
)

// NewsProvider fetches company headlines
// SSOT: news ingestion interface
type NewsProvider interface {
	CompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]NewsEvent, error)
}

// CandleProvider fetches daily close series.
// A (nil, nil) return means "no data for this symbol", not an error;
// every derived field stays nil downstream.
type CandleProvider interface {
	DailyCandles(ctx context.Context, symbol string, from, to time.Time) (*CandleSeries, error)
}

// DocumentStore is the persistent key-value document store holding the
// pool and leaderboard documents
type DocumentStore interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
