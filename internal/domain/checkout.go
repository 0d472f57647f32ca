package domain

import "time"

type CheckoutState string

const (
	CheckoutStateIdle           CheckoutState = "idle"
	CheckoutStateGuestSelected  CheckoutState = "guest_selected"
	CheckoutStatePaymentPending CheckoutState = "payment_pending"
	CheckoutStateReady          CheckoutState = "ready"
	CheckoutStateFinalizing     CheckoutState = "finalizing"
	CheckoutStateFinalized      CheckoutState = "finalized"
)

// CheckoutTransaction is created once per successful finalize and never mutated afterwards.
type CheckoutTransaction struct {
	ID                  string              `json:"id"`
	Guest               Guest               `json:"guest"`
	Billing             StayBillingSnapshot `json:"billing"`
	Payment             PaymentRecord       `json:"payment"`
	Assessment          RoomAssessment      `json:"assessment"`
	Feedback            *GuestFeedback      `json:"feedback,omitempty"`
	CompletedAt         time.Time           `json:"completed_at"`
	CompletedBy         string              `json:"completed_by,omitempty"`
	ResultingRoomStatus RoomStatus          `json:"resulting_room_status"`
}

type CheckoutSummary struct {
	Count            int   `json:"count"`
	RevenueCents     int64 `json:"revenue_cents"`
	TaxCents         int64 `json:"tax_cents"`
	MaintenanceRooms int   `json:"maintenance_rooms"`
}

func SummarizeCheckouts(txs []CheckoutTransaction) CheckoutSummary {
	var s CheckoutSummary
	for _, tx := range txs {
		s.Count++
		s.RevenueCents += tx.Billing.TotalCents
		s.TaxCents += tx.Billing.TaxCents
		if tx.ResultingRoomStatus == RoomStatusMaintenancePendingCleaning {
			s.MaintenanceRooms++
		}
	}
	return s
}
