package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
)

const guestColumns = `id, name, room_id, document_id, phone, email, check_in_at, planned_check_out, status, checked_out_at`

var searchColumns = map[domain.SearchMode]string{
	domain.SearchByRoom:     "room_id",
	domain.SearchByName:     "name",
	domain.SearchByDocument: "document_id",
}

type guestRepository struct {
	db *sql.DB
}

func NewGuestRepository(db *sql.DB) repository.GuestRepository {
	return &guestRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGuest(row rowScanner) (*domain.Guest, error) {
	var (
		g          domain.Guest
		planned    sql.NullTime
		checkedOut sql.NullTime
	)
	if err := row.Scan(&g.ID, &g.Name, &g.RoomID, &g.DocumentID, &g.Phone, &g.Email, &g.CheckInAt, &planned, &g.Status, &checkedOut); err != nil {
		return nil, err
	}
	if planned.Valid {
		t := planned.Time
		g.PlannedCheckOut = &t
	}
	if checkedOut.Valid {
		t := checkedOut.Time
		g.CheckedOutAt = &t
	}
	return &g, nil
}

func (r *guestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	logger.DatabaseCall("SELECT", "guests", "guestID", id)
	g, err := scanGuest(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get guest %s: %w", id, err)
	}
	return g, nil
}

func (r *guestRepository) Search(ctx context.Context, mode domain.SearchMode, term string) ([]domain.Guest, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.Guest{}, nil
	}
	column, ok := searchColumns[mode]
	if !ok {
		return nil, &domain.ValidationError{Field: "mode", Reason: "unsupported search mode " + string(mode)}
	}

	query := `SELECT ` + guestColumns + ` FROM guests WHERE status = $1 AND ` + column + ` ILIKE $2 ORDER BY id`
	logger.DatabaseCall("SELECT", "guests", "mode", mode)
	return r.queryGuests(ctx, query, domain.GuestStatusInHouse, containsPattern(term))
}

func (r *guestRepository) ListInHouse(ctx context.Context) ([]domain.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE status = $1 ORDER BY id`
	return r.queryGuests(ctx, query, domain.GuestStatusInHouse)
}

func (r *guestRepository) queryGuests(ctx context.Context, query string, args ...any) ([]domain.Guest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := []domain.Guest{}
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

func (r *guestRepository) MarkCheckedOut(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE guests SET status = $1, checked_out_at = $2 WHERE id = $3`
	logger.DatabaseCall("UPDATE", "guests", "guestID", id)
	res, err := r.db.ExecContext(ctx, query, domain.GuestStatusCheckedOut, at, id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "guestID", id)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err, "guestID", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrGuestNotFound
	}
	return nil
}
