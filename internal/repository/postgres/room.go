package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	room := &domain.Room{}
	query := `SELECT id, type, floor, status, updated_on FROM rooms WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.Type, &room.Floor, &room.Status, &room.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) error {
	logger.EnterMethod("roomRepository.UpdateStatus", "roomID", id, "status", status)

	query := `UPDATE rooms SET status = $1, updated_on = $2 WHERE id = $3`
	logger.DatabaseCall("UPDATE", "rooms", "roomID", id)
	res, err := r.db.ExecContext(ctx, query, status, time.Now().Format(time.RFC3339), id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "roomID", id)
		logger.ExitMethodWithError("roomRepository.UpdateStatus", err, "roomID", id)
		return err
	}

	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err, "roomID", id)
	if err == nil && n == 0 {
		err = domain.ErrRoomNotFound
	}
	if err != nil {
		logger.ExitMethodWithError("roomRepository.UpdateStatus", err, "roomID", id)
		return err
	}
	logger.ExitMethod("roomRepository.UpdateStatus", "roomID", id)
	return nil
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type, floor, status, updated_on FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Type, &room.Floor, &room.Status, &room.UpdatedOn); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
