package database

import "context"

// Store is the lifecycle every storage backend exposes to the container.
type Store interface {
	HealthCheck(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*MemoryDB)(nil)
	_ Store = (*SQLiteDB)(nil)
	_ Store = (*PostgresDB)(nil)
)
