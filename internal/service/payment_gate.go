package service

import (
	"time"

	"frontdesk-backend/internal/domain"
)

// PaymentGate holds the settlement method and the operator's confirmation.
// It is owned by a single coordinator and is not safe for concurrent use.
type PaymentGate struct {
	record domain.PaymentRecord
}

func NewPaymentGate() *PaymentGate {
	return &PaymentGate{}
}

func (g *PaymentGate) State() domain.PaymentState {
	switch {
	case g.record.Confirmed:
		return domain.PaymentStateConfirmed
	case g.record.Method != "":
		return domain.PaymentStateMethodSelected
	default:
		return domain.PaymentStateNoMethod
	}
}

// SelectMethod always clears a previous confirmation, even for the same method.
func (g *PaymentGate) SelectMethod(method domain.PaymentMethod) error {
	if _, err := domain.ParsePaymentMethod(string(method)); err != nil {
		return err
	}
	g.record = domain.PaymentRecord{Method: method}
	return nil
}

func (g *PaymentGate) Confirm(now time.Time) error {
	switch g.State() {
	case domain.PaymentStateNoMethod:
		return &domain.NotReadyError{Reason: "no payment method selected"}
	case domain.PaymentStateConfirmed:
		return nil
	}
	g.record.Confirmed = true
	g.record.ConfirmedAt = &now
	return nil
}

func (g *PaymentGate) Record() domain.PaymentRecord {
	rec := g.record
	if rec.ConfirmedAt != nil {
		at := *rec.ConfirmedAt
		rec.ConfirmedAt = &at
	}
	return rec
}

func (g *PaymentGate) Reset() {
	g.record = domain.PaymentRecord{}
}
