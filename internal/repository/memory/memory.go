package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/repository"
)

// Store keeps guests, rooms and checkout history in process memory.
// It backs the "memory" store type and the service tests.
type Store struct {
	repository.GuestRepository
	repository.RoomRepository
	repository.CheckoutRepository
}

func NewStore(guests []domain.Guest, rooms []domain.Room) *Store {
	return &Store{
		GuestRepository:    NewGuestRepository(guests),
		RoomRepository:     NewRoomRepository(rooms),
		CheckoutRepository: NewCheckoutRepository(),
	}
}

// NewSeededStore returns a store populated with the property's demo data.
func NewSeededStore() *Store {
	return NewStore(SeedGuests(), SeedRooms())
}

func SeedGuests() []domain.Guest {
	return []domain.Guest{
		{
			ID:         "1",
			Name:       "Carlos Rodríguez",
			RoomID:     "101",
			DocumentID: "12345678A",
			CheckInAt:  time.Date(2025, 8, 9, 14, 30, 0, 0, time.UTC),
			Phone:      "+34 666 123 456",
			Email:      "carlos.rodriguez@email.com",
			Status:     domain.GuestStatusInHouse,
		},
		{
			ID:         "2",
			Name:       "María González",
			RoomID:     "205",
			DocumentID: "87654321B",
			CheckInAt:  time.Date(2025, 8, 10, 16, 15, 0, 0, time.UTC),
			Phone:      "+34 677 987 654",
			Email:      "maria.gonzalez@email.com",
			Status:     domain.GuestStatusInHouse,
		},
		{
			ID:         "3",
			Name:       "Antonio López",
			RoomID:     "312",
			DocumentID: "11223344C",
			CheckInAt:  time.Date(2025, 8, 8, 12, 0, 0, 0, time.UTC),
			Phone:      "+34 688 456 789",
			Email:      "antonio.lopez@email.com",
			Status:     domain.GuestStatusInHouse,
		},
	}
}

func SeedRooms() []domain.Room {
	return []domain.Room{
		{ID: "101", Type: "doble", Floor: 1, Status: domain.RoomStatusOccupied},
		{ID: "102", Type: "individual", Floor: 1, Status: domain.RoomStatusAvailable},
		{ID: "103", Type: "triple", Floor: 1, Status: domain.RoomStatusCleaning},
		{ID: "205", Type: "suite", Floor: 2, Status: domain.RoomStatusOccupied},
		{ID: "206", Type: "familiar", Floor: 2, Status: domain.RoomStatusMaintenance},
		{ID: "301", Type: "presidencial", Floor: 3, Status: domain.RoomStatusAvailable},
		{ID: "312", Type: "suite", Floor: 3, Status: domain.RoomStatusOccupied},
	}
}

type guestRepository struct {
	mu     sync.RWMutex
	guests map[string]*domain.Guest
	order  []string
}

func NewGuestRepository(guests []domain.Guest) repository.GuestRepository {
	r := &guestRepository{guests: make(map[string]*domain.Guest, len(guests))}
	for i := range guests {
		g := guests[i]
		if g.Status == "" {
			g.Status = domain.GuestStatusInHouse
		}
		r.guests[g.ID] = &g
		r.order = append(r.order, g.ID)
	}
	return r
}

func (r *guestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.guests[id]
	if !ok {
		return nil, domain.ErrGuestNotFound
	}
	out := *g
	return &out, nil
}

func (r *guestRepository) Search(ctx context.Context, mode domain.SearchMode, term string) ([]domain.Guest, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := []domain.Guest{}
	if term == "" {
		return matches, nil
	}
	for _, id := range r.order {
		g := r.guests[id]
		if g.Status != domain.GuestStatusInHouse {
			continue
		}
		var field string
		switch mode {
		case domain.SearchByRoom:
			field = g.RoomID
		case domain.SearchByName:
			field = g.Name
		case domain.SearchByDocument:
			field = g.DocumentID
		default:
			return nil, &domain.ValidationError{Field: "mode", Reason: "unsupported search mode " + string(mode)}
		}
		if strings.Contains(strings.ToLower(field), term) {
			matches = append(matches, *g)
		}
	}
	return matches, nil
}

func (r *guestRepository) ListInHouse(ctx context.Context) ([]domain.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Guest
	for _, id := range r.order {
		if g := r.guests[id]; g.Status == domain.GuestStatusInHouse {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *guestRepository) MarkCheckedOut(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.guests[id]
	if !ok {
		return domain.ErrGuestNotFound
	}
	g.Status = domain.GuestStatusCheckedOut
	g.CheckedOutAt = &at
	return nil
}

type roomRepository struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

func NewRoomRepository(rooms []domain.Room) repository.RoomRepository {
	r := &roomRepository{rooms: make(map[string]*domain.Room, len(rooms))}
	for i := range rooms {
		room := rooms[i]
		r.rooms[room.ID] = &room
	}
	return r
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	out := *room
	return &out, nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.Status = status
	room.UpdatedOn = time.Now().Format(time.RFC3339)
	return nil
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, *room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type checkoutRepository struct {
	mu  sync.RWMutex
	txs []domain.CheckoutTransaction
}

func NewCheckoutRepository() repository.CheckoutRepository {
	return &checkoutRepository{}
}

func (r *checkoutRepository) Create(ctx context.Context, tx *domain.CheckoutTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *checkoutRepository) GetByID(ctx context.Context, id string) (*domain.CheckoutTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.txs {
		if r.txs[i].ID == id {
			out := r.txs[i]
			return &out, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *checkoutRepository) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]domain.CheckoutTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.CheckoutTransaction{}
	for _, tx := range r.txs {
		if !tx.CompletedAt.Before(from) && tx.CompletedAt.Before(to) {
			out = append(out, tx)
		}
	}
	return out, nil
}
