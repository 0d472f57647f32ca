package jobs

import (
	"context"
	"fmt"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
)

// NightAuditResult is the in-house position at audit time.
type NightAuditResult struct {
	AuditedAt    time.Time
	Guests       int
	Nights       int
	BalanceCents int64
}

// NightAudit prices every in-house stay at the current moment and publishes the open balance
func (jr *JobRunner) NightAudit() {
	jr.runWithRecovery("NightAudit", func() {
		if _, err := jr.runNightAudit(context.Background()); err != nil {
			logger.Error("Night audit failed", "error", err)
		}
	})
}

func (jr *JobRunner) runNightAudit(ctx context.Context) (NightAuditResult, error) {
	now := jr.now()
	result := NightAuditResult{AuditedAt: now}

	guests, err := jr.services.Directory.ListInHouse(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list in-house guests: %w", err)
	}

	for i := range guests {
		snap := jr.services.Billing.ComputeSnapshot(&guests[i], now)
		result.Guests++
		result.Nights += snap.Nights
		result.BalanceCents += snap.TotalCents

		logger.Info("Night audit stay",
			"guest_id", guests[i].ID,
			"room_id", guests[i].RoomID,
			"nights", snap.Nights,
			"total_cents", snap.TotalCents)
	}

	jr.metrics.SetInHouse(result.Guests, result.BalanceCents)
	logger.Info("Night audit completed",
		"guests", result.Guests,
		"nights", result.Nights,
		"balance_cents", result.BalanceCents)
	return result, nil
}

// DailyCheckoutReport summarises checkouts completed in the last 24 hours
func (jr *JobRunner) DailyCheckoutReport() {
	jr.runWithRecovery("DailyCheckoutReport", func() {
		if _, err := jr.runDailyReport(context.Background()); err != nil {
			logger.Error("Daily checkout report failed", "error", err)
		}
	})
}

func (jr *JobRunner) runDailyReport(ctx context.Context) (domain.CheckoutSummary, error) {
	to := jr.now()
	from := to.Add(-24 * time.Hour)

	txs, err := jr.history.ListCompletedBetween(ctx, from, to)
	if err != nil {
		return domain.CheckoutSummary{}, fmt.Errorf("failed to list checkouts: %w", err)
	}

	summary := domain.SummarizeCheckouts(txs)
	logger.Info("Daily checkout report",
		"from", from.Format(time.RFC3339),
		"to", to.Format(time.RFC3339),
		"checkouts", summary.Count,
		"revenue_cents", summary.RevenueCents,
		"tax_cents", summary.TaxCents,
		"maintenance_rooms", summary.MaintenanceRooms)
	return summary, nil
}
