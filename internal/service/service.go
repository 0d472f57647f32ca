package service

import (
	"context"
	"time"

	"frontdesk-backend/internal/domain"
)

type GuestDirectory interface {
	Find(ctx context.Context, term string, mode domain.SearchMode) ([]domain.Guest, error)
	Get(ctx context.Context, id string) (*domain.Guest, error)
	ListInHouse(ctx context.Context) ([]domain.Guest, error)
}

type BillingCalculator interface {
	ComputeSnapshot(guest *domain.Guest, now time.Time) domain.StayBillingSnapshot
	RateTable() domain.RateTable
}

// RoomInventory receives the room status produced by a finalized checkout.
type RoomInventory interface {
	UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) error
}

type ReceiptService interface {
	SendReceipt(ctx context.Context, receipt *Receipt) error
}

type CheckoutCoordinator interface {
	SelectGuest(ctx context.Context, guestID string) error
	SelectGuestRecord(guest *domain.Guest) error
	SelectPaymentMethod(method domain.PaymentMethod) error
	ConfirmPayment(method domain.PaymentMethod) error

	AddDamage(id string) error
	RemoveDamage(id string) error
	AddMaintenanceNeed(id string) error
	RemoveMaintenanceNeed(id string) error
	SetOverallCondition(level domain.OverallCondition) error
	SetNotes(text string) error

	SetRating(n int) error
	SetCategoryRating(category domain.FeedbackCategory, n int) error
	SetRecommend(recommend bool) error
	SetComments(text string) error

	Snapshot() (domain.StayBillingSnapshot, error)
	Finalize(ctx context.Context) (*domain.CheckoutTransaction, error)
	Status() CheckoutStatus
	Receipt() (*Receipt, error)
}

// CheckoutStatus is a read-only view of the coordinator.
type CheckoutStatus struct {
	State           domain.CheckoutState        `json:"state"`
	Guest           *domain.Guest               `json:"guest,omitempty"`
	PaymentState    domain.PaymentState         `json:"payment_state"`
	Payment         domain.PaymentRecord        `json:"payment"`
	Assessment      domain.RoomAssessment       `json:"assessment"`
	Feedback        *domain.GuestFeedback       `json:"feedback,omitempty"`
	LastTransaction *domain.CheckoutTransaction `json:"last_transaction,omitempty"`
}
