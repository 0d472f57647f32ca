package repository

import (
	"context"
	"time"

	"frontdesk-backend/internal/domain"
)

type GuestRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Guest, error)
	// Search returns in-house guests whose field (selected by mode) contains term, case-insensitively.
	Search(ctx context.Context, mode domain.SearchMode, term string) ([]domain.Guest, error)
	ListInHouse(ctx context.Context) ([]domain.Guest, error)
	MarkCheckedOut(ctx context.Context, id string, at time.Time) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) error
	List(ctx context.Context) ([]domain.Room, error)
}

// CheckoutRepository is the append-only checkout history consumed by reporting.
type CheckoutRepository interface {
	Create(ctx context.Context, tx *domain.CheckoutTransaction) error
	GetByID(ctx context.Context, id string) (*domain.CheckoutTransaction, error)
	ListCompletedBetween(ctx context.Context, from, to time.Time) ([]domain.CheckoutTransaction, error)
}
