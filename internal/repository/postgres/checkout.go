package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
)

const checkoutColumns = `id, guest, billing, payment, assessment, feedback, completed_at, completed_by, resulting_room_status`

type checkoutRepository struct {
	db *sql.DB
}

func NewCheckoutRepository(db *sql.DB) repository.CheckoutRepository {
	return &checkoutRepository{db: db}
}

func (r *checkoutRepository) Create(ctx context.Context, tx *domain.CheckoutTransaction) error {
	logger.EnterMethod("checkoutRepository.Create", "transactionID", tx.ID, "guestID", tx.Guest.ID)

	guest, err := json.Marshal(tx.Guest)
	if err != nil {
		return fmt.Errorf("marshal guest: %w", err)
	}
	billing, err := json.Marshal(tx.Billing)
	if err != nil {
		return fmt.Errorf("marshal billing: %w", err)
	}
	payment, err := json.Marshal(tx.Payment)
	if err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}
	assessment, err := json.Marshal(tx.Assessment)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	var feedback []byte
	if tx.Feedback != nil {
		if feedback, err = json.Marshal(tx.Feedback); err != nil {
			return fmt.Errorf("marshal feedback: %w", err)
		}
	}

	query := `INSERT INTO checkout_transactions (id, guest_id, room_id, guest, billing, payment, assessment, feedback, total_cents, completed_at, completed_by, resulting_room_status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	logger.DatabaseCall("INSERT", "checkout_transactions", "transactionID", tx.ID)

	_, err = r.db.ExecContext(ctx, query,
		tx.ID, tx.Guest.ID, tx.Guest.RoomID, guest, billing, payment, assessment, feedback,
		tx.Billing.TotalCents, tx.CompletedAt, tx.CompletedBy, tx.ResultingRoomStatus)
	logger.DatabaseResult("INSERT", 1, err, "transactionID", tx.ID)

	if err != nil {
		logger.ExitMethodWithError("checkoutRepository.Create", err, "transactionID", tx.ID)
		return err
	}
	logger.ExitMethod("checkoutRepository.Create", "transactionID", tx.ID)
	return nil
}

func (r *checkoutRepository) GetByID(ctx context.Context, id string) (*domain.CheckoutTransaction, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout_transactions WHERE id = $1`
	tx, err := scanCheckout(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *checkoutRepository) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]domain.CheckoutTransaction, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout_transactions
	          WHERE completed_at >= $1 AND completed_at < $2 ORDER BY completed_at`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []domain.CheckoutTransaction{}
	for rows.Next() {
		tx, err := scanCheckout(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func scanCheckout(row rowScanner) (*domain.CheckoutTransaction, error) {
	var (
		tx                                       domain.CheckoutTransaction
		guest, billing, payment, assessment, fbk []byte
	)
	if err := row.Scan(&tx.ID, &guest, &billing, &payment, &assessment, &fbk, &tx.CompletedAt, &tx.CompletedBy, &tx.ResultingRoomStatus); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(guest, &tx.Guest); err != nil {
		return nil, fmt.Errorf("unmarshal guest: %w", err)
	}
	if err := json.Unmarshal(billing, &tx.Billing); err != nil {
		return nil, fmt.Errorf("unmarshal billing: %w", err)
	}
	if err := json.Unmarshal(payment, &tx.Payment); err != nil {
		return nil, fmt.Errorf("unmarshal payment: %w", err)
	}
	if err := json.Unmarshal(assessment, &tx.Assessment); err != nil {
		return nil, fmt.Errorf("unmarshal assessment: %w", err)
	}
	if len(fbk) > 0 {
		var f domain.GuestFeedback
		if err := json.Unmarshal(fbk, &f); err != nil {
			return nil, fmt.Errorf("unmarshal feedback: %w", err)
		}
		tx.Feedback = &f
	}
	return &tx, nil
}
