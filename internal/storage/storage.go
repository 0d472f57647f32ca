package storage

import (
	"context"
	"database/sql"
	"fmt"

	"frontdesk-backend/internal/config"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
	"frontdesk-backend/internal/repository/memory"
	"frontdesk-backend/internal/repository/postgres"

	_ "github.com/lib/pq"
)

const (
	TypeMemory   = "memory"
	TypePostgres = "postgres"
)

// Backend bundles the repositories the front desk runs against.
// Memory is seeded with demo guests; postgres persists across restarts.
type Backend struct {
	Type      string
	Guests    repository.GuestRepository
	Rooms     repository.RoomRepository
	Checkouts repository.CheckoutRepository
	db        *sql.DB
}

// Open selects the backend named by cfg.Store.Type
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Store.Type {
	case TypeMemory:
		logger.Info("Using in-memory store with demo data")
		store := memory.NewSeededStore()
		return &Backend{
			Type:      TypeMemory,
			Guests:    store.GuestRepository,
			Rooms:     store.RoomRepository,
			Checkouts: store.CheckoutRepository,
		}, nil

	case TypePostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Info("Database connection established")
		return newPostgresBackend(db), nil
	}
	return nil, fmt.Errorf("unsupported store type %q", cfg.Store.Type)
}

func newPostgresBackend(db *sql.DB) *Backend {
	store := postgres.NewStore(db)
	return &Backend{
		Type:      TypePostgres,
		Guests:    store.GuestRepository,
		Rooms:     store.RoomRepository,
		Checkouts: store.CheckoutRepository,
		db:        db,
	}
}

// Ping reports whether the backend is reachable. Memory is always up.
func (b *Backend) Ping(ctx context.Context) error {
	if b.db == nil {
		return nil
	}
	return b.db.PingContext(ctx)
}

func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}
