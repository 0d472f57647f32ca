package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/metrics"
	"frontdesk-backend/internal/repository"
	"frontdesk-backend/internal/security"

	"github.com/google/uuid"
)

const DefaultCommitTimeout = 10 * time.Second

// checkoutCoordinator owns the single active checkout. mu guards every field
// below it; the commit itself runs unlocked while state is finalizing.
type checkoutCoordinator struct {
	directory     GuestDirectory
	billing       BillingCalculator
	inventory     RoomInventory
	history       repository.CheckoutRepository
	guestRepo     repository.GuestRepository
	metrics       *metrics.CheckoutMetrics
	commitTimeout time.Duration
	now           func() time.Time
	newID         func() string

	mu         sync.Mutex
	state      domain.CheckoutState
	guest      *domain.Guest
	txID       string
	gate       *PaymentGate
	assessment *AssessmentRecorder
	feedback   *FeedbackCollector
	// pending is the transaction of a failed commit; retries write it unchanged.
	pending *domain.CheckoutTransaction
	last    *domain.CheckoutTransaction
}

func NewCheckoutCoordinator(
	directory GuestDirectory,
	billing BillingCalculator,
	inventory RoomInventory,
	history repository.CheckoutRepository,
	guestRepo repository.GuestRepository,
	m *metrics.CheckoutMetrics,
	commitTimeout time.Duration,
) CheckoutCoordinator {
	if commitTimeout <= 0 {
		commitTimeout = DefaultCommitTimeout
	}
	return &checkoutCoordinator{
		directory:     directory,
		billing:       billing,
		inventory:     inventory,
		history:       history,
		guestRepo:     guestRepo,
		metrics:       m,
		commitTimeout: commitTimeout,
		now:           time.Now,
		newID:         uuid.NewString,
		state:         domain.CheckoutStateIdle,
		gate:          NewPaymentGate(),
		assessment:    NewAssessmentRecorder(),
		feedback:      NewFeedbackCollector(),
	}
}

func (c *checkoutCoordinator) SelectGuest(ctx context.Context, guestID string) error {
	if guestID == "" {
		return &domain.ValidationError{Field: "guest_id", Reason: "is required"}
	}
	guest, err := c.directory.Get(ctx, guestID)
	if err != nil {
		return err
	}
	return c.SelectGuestRecord(guest)
}

// SelectGuestRecord starts a fresh checkout for guest, discarding payment,
// assessment and feedback captured for any previous guest.
func (c *checkoutCoordinator) SelectGuestRecord(guest *domain.Guest) error {
	if guest == nil {
		return &domain.ValidationError{Field: "guest", Reason: "is required"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.CheckoutStateFinalizing {
		return c.reject("busy", &domain.NotReadyError{State: c.state, Reason: "checkout commit in progress"})
	}

	c.guest = guest
	c.txID = c.newID()
	c.pending = nil
	c.gate.Reset()
	c.assessment.Reset()
	c.feedback.Reset()
	c.state = domain.CheckoutStateGuestSelected

	snapshot := c.billing.ComputeSnapshot(guest, c.now())
	logger.WithCheckout(guest.ID, guest.RoomID).Info("Guest selected for checkout",
		"nights", snapshot.Nights,
		"total_cents", snapshot.TotalCents,
	)
	return nil
}

func (c *checkoutCoordinator) SelectPaymentMethod(method domain.PaymentMethod) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkEditable(); err != nil {
		return err
	}
	if err := c.gate.SelectMethod(method); err != nil {
		return err
	}
	c.state = domain.CheckoutStatePaymentPending
	return nil
}

// ConfirmPayment selects method when it differs from the current one and then
// confirms. An empty method confirms the method already selected.
func (c *checkoutCoordinator) ConfirmPayment(method domain.PaymentMethod) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkEditable(); err != nil {
		return err
	}
	if method != "" && method != c.gate.Record().Method {
		if err := c.gate.SelectMethod(method); err != nil {
			return err
		}
		c.state = domain.CheckoutStatePaymentPending
	}
	if c.gate.State() == domain.PaymentStateNoMethod {
		return c.reject("no_method", &domain.NotReadyError{State: c.state, Reason: "no payment method selected"})
	}
	if err := c.gate.Confirm(c.now()); err != nil {
		return err
	}
	c.state = domain.CheckoutStateReady
	return nil
}

func (c *checkoutCoordinator) AddDamage(id string) error {
	return c.update(func() error { return c.assessment.AddDamage(id) })
}

func (c *checkoutCoordinator) RemoveDamage(id string) error {
	return c.update(func() error { return c.assessment.RemoveDamage(id) })
}

func (c *checkoutCoordinator) AddMaintenanceNeed(id string) error {
	return c.update(func() error { return c.assessment.AddMaintenanceNeed(id) })
}

func (c *checkoutCoordinator) RemoveMaintenanceNeed(id string) error {
	return c.update(func() error { return c.assessment.RemoveMaintenanceNeed(id) })
}

func (c *checkoutCoordinator) SetOverallCondition(level domain.OverallCondition) error {
	return c.update(func() error { return c.assessment.SetOverallCondition(level) })
}

func (c *checkoutCoordinator) SetNotes(text string) error {
	return c.update(func() error {
		c.assessment.SetNotes(text)
		return nil
	})
}

func (c *checkoutCoordinator) SetRating(n int) error {
	return c.update(func() error { return c.feedback.SetRating(n) })
}

func (c *checkoutCoordinator) SetCategoryRating(category domain.FeedbackCategory, n int) error {
	return c.update(func() error { return c.feedback.SetCategoryRating(category, n) })
}

func (c *checkoutCoordinator) SetRecommend(recommend bool) error {
	return c.update(func() error {
		c.feedback.SetRecommend(recommend)
		return nil
	})
}

func (c *checkoutCoordinator) SetComments(text string) error {
	return c.update(func() error {
		c.feedback.SetComments(text)
		return nil
	})
}

// Snapshot stays available while a commit is in flight.
func (c *checkoutCoordinator) Snapshot() (domain.StayBillingSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.CheckoutStateFinalized && c.last != nil {
		return c.last.Billing, nil
	}
	if c.pending != nil {
		return c.pending.Billing, nil
	}
	if c.guest == nil {
		return domain.StayBillingSnapshot{}, &domain.NotReadyError{State: c.state, Reason: "no guest selected"}
	}
	return c.billing.ComputeSnapshot(c.guest, c.now()), nil
}

func (c *checkoutCoordinator) Finalize(ctx context.Context) (*domain.CheckoutTransaction, error) {
	c.mu.Lock()
	if err := c.checkReady(); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	tx := c.pending
	if tx == nil {
		tx = c.buildTransaction(ctx)
	}
	c.state = domain.CheckoutStateFinalizing
	c.mu.Unlock()

	log := logger.WithCheckout(tx.Guest.ID, tx.Guest.RoomID)
	start := time.Now()
	err := c.commit(ctx, tx)
	c.metrics.ObserveCommitDuration(time.Since(start))

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = domain.CheckoutStateReady
		c.pending = tx
		c.metrics.ObserveCommitFailure()
		log.Warn("Checkout commit failed, checkout kept for retry", "transaction_id", tx.ID, "error", err)
		return nil, &domain.CommitFailedError{Err: err}
	}

	c.state = domain.CheckoutStateFinalized
	c.pending = nil
	c.last = tx
	c.metrics.ObserveFinalized(string(tx.ResultingRoomStatus))
	log.Info("Checkout finalized",
		"transaction_id", tx.ID,
		"total_cents", tx.Billing.TotalCents,
		"room_status", tx.ResultingRoomStatus,
		"completed_by", tx.CompletedBy,
	)
	return tx, nil
}

// buildTransaction requires c.mu.
func (c *checkoutCoordinator) buildTransaction(ctx context.Context) *domain.CheckoutTransaction {
	completedAt := c.now()
	assessment := c.assessment.Assessment()
	guest := *c.guest
	guest.Status = domain.GuestStatusCheckedOut
	guest.CheckedOutAt = &completedAt

	return &domain.CheckoutTransaction{
		ID:                  c.txID,
		Guest:               guest,
		Billing:             c.billing.ComputeSnapshot(c.guest, completedAt),
		Payment:             c.gate.Record(),
		Assessment:          assessment,
		Feedback:            c.feedback.Feedback(),
		CompletedAt:         completedAt,
		CompletedBy:         security.OperatorFromContext(ctx),
		ResultingRoomStatus: assessment.ResultingRoomStatus(),
	}
}

// commit waits at most commitTimeout for the external writes, even when a
// collaborator ignores ctx.
func (c *checkoutCoordinator) commit(ctx context.Context, tx *domain.CheckoutTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, c.commitTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- c.writeTransaction(ctx, tx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("commit did not complete: %w", ctx.Err())
	}
}

// writeTransaction is safe to repeat with the same tx: the history append is
// skipped when an earlier attempt already stored it. No write starts once ctx
// is done, so an abandoned attempt cannot complete behind the operator.
func (c *checkoutCoordinator) writeTransaction(ctx context.Context, tx *domain.CheckoutTransaction) error {
	if err := c.inventory.UpdateRoomStatus(ctx, tx.Guest.RoomID, tx.ResultingRoomStatus); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.history.GetByID(ctx, tx.ID)
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		if err := c.history.Create(ctx, tx); err != nil {
			return fmt.Errorf("failed to record checkout: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up checkout history: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.guestRepo.MarkCheckedOut(ctx, tx.Guest.ID, tx.CompletedAt); err != nil {
		return fmt.Errorf("failed to check out guest: %w", err)
	}
	return nil
}

func (c *checkoutCoordinator) Status() CheckoutStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := CheckoutStatus{
		State:           c.state,
		PaymentState:    c.gate.State(),
		Payment:         c.gate.Record(),
		Assessment:      c.assessment.Assessment(),
		Feedback:        c.feedback.Feedback(),
		LastTransaction: c.last,
	}
	if c.guest != nil {
		g := *c.guest
		status.Guest = &g
	}
	return status
}

// Receipt renders the finalized transaction, or a preview of the checkout in progress.
func (c *checkoutCoordinator) Receipt() (*Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.CheckoutStateFinalized && c.last != nil {
		return NewReceipt(c.last), nil
	}
	if c.pending != nil {
		return newPreviewReceipt(&c.pending.Guest, c.pending.Billing, c.pending.Payment), nil
	}
	if c.guest != nil {
		return newPreviewReceipt(c.guest, c.billing.ComputeSnapshot(c.guest, c.now()), c.gate.Record()), nil
	}
	return nil, &domain.NotReadyError{State: c.state, Reason: "no checkout to render"}
}

func (c *checkoutCoordinator) update(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkEditable(); err != nil {
		return err
	}
	return fn()
}

// checkEditable requires c.mu.
func (c *checkoutCoordinator) checkEditable() error {
	switch {
	case c.state == domain.CheckoutStateFinalizing:
		return c.reject("busy", &domain.NotReadyError{State: c.state, Reason: "checkout commit in progress"})
	case c.guest == nil:
		return c.reject("no_guest", &domain.NotReadyError{State: c.state, Reason: "no guest selected"})
	case c.state == domain.CheckoutStateFinalized:
		return c.reject("finalized", &domain.NotReadyError{State: c.state, Reason: "checkout already finalized, select a guest to start a new one"})
	case c.pending != nil:
		return c.reject("commit_pending", &domain.NotReadyError{State: c.state, Reason: "commit failed, retry finalize or select a guest to abandon"})
	}
	return nil
}

// checkReady requires c.mu.
func (c *checkoutCoordinator) checkReady() error {
	switch c.state {
	case domain.CheckoutStateReady:
	case domain.CheckoutStateFinalizing:
		return c.reject("busy", &domain.NotReadyError{State: c.state, Reason: "checkout commit in progress"})
	case domain.CheckoutStateFinalized:
		return c.reject("finalized", &domain.NotReadyError{State: c.state, Reason: "checkout already finalized"})
	case domain.CheckoutStateIdle:
		return c.reject("no_guest", &domain.NotReadyError{State: c.state, Reason: "no guest selected"})
	default:
		return c.reject("payment_unconfirmed", &domain.NotReadyError{State: c.state, Reason: "payment not confirmed"})
	}
	if c.guest == nil || !c.gate.Record().Confirmed {
		return c.reject("payment_unconfirmed", &domain.NotReadyError{State: c.state, Reason: "payment not confirmed"})
	}
	return nil
}

func (c *checkoutCoordinator) reject(reason string, err *domain.NotReadyError) error {
	c.metrics.ObserveRejected(reason)
	logger.Debug("Checkout action rejected", "reason", reason, "state", err.State)
	return err
}
