package postgres

import (
	"database/sql"
	"strings"

	"frontdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.GuestRepository
	repository.RoomRepository
	repository.CheckoutRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		GuestRepository:    NewGuestRepository(db),
		RoomRepository:     NewRoomRepository(db),
		CheckoutRepository: NewCheckoutRepository(db),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere in a column.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
