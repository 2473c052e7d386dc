package store

import (
	"fmt"
	"time"
)

// Options selects and configures a storage backend.
type Options struct {
	Driver       string // "sqlite" or "postgres"
	SQLitePath   string
	PostgresDSN  string
	QueryTimeout time.Duration
}

// Open returns the backend named by opts.Driver.
func Open(opts Options) (*SQLStore, error) {
	switch opts.Driver {
	case "", "sqlite":
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path is required")
		}
		return NewSQLiteStore(opts.SQLitePath, opts.QueryTimeout)
	case "postgres":
		if opts.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres dsn is required")
		}
		return NewPostgresStore(opts.PostgresDSN, opts.QueryTimeout)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", opts.Driver)
	}
}
