package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"frontdesk-backend/internal/domain"
)

// Day is the billable night length.
const Day = 24 * time.Hour

// CalculateNights returns the billable nights between check-in and now:
// the ceiling of elapsed 24h periods, never less than 1.
func CalculateNights(checkIn, now time.Time) int {
	elapsed := now.Sub(checkIn)
	if elapsed <= 0 {
		return 1
	}
	nights := int(elapsed / Day)
	if elapsed%Day != 0 {
		nights++
	}
	if nights < 1 {
		return 1
	}
	return nights
}

// ApplyTax rounds subtotal*rate half away from zero to the nearest cent.
func ApplyTax(subtotalCents int64, rate float64) int64 {
	return int64(math.Round(float64(subtotalCents) * rate))
}

// CalculateStaySnapshot builds the billing snapshot for a guest at the given moment.
// Calling it twice with the same inputs yields identical output.
func CalculateStaySnapshot(guest *domain.Guest, now time.Time, rates domain.RateTable) domain.StayBillingSnapshot {
	nights := CalculateNights(guest.CheckInAt, now)

	items := make([]domain.LineItem, 0, len(rates.Services))
	var servicesTotal int64
	for _, svc := range rates.Services {
		qty := nights
		if svc.Cadence == domain.CadencePerStay {
			qty = 1
		}
		line := svc.UnitPriceCents * int64(qty)
		items = append(items, domain.LineItem{
			Name:           svc.Name,
			UnitPriceCents: svc.UnitPriceCents,
			Quantity:       qty,
			LineTotalCents: line,
		})
		servicesTotal += line
	}

	roomCharge := rates.NightlyRateCents * int64(nights)
	subtotal := roomCharge + servicesTotal
	tax := ApplyTax(subtotal, rates.TaxRate)

	return domain.StayBillingSnapshot{
		GuestID:          guest.ID,
		ComputedAt:       now,
		Nights:           nights,
		NightlyRateCents: rates.NightlyRateCents,
		RoomChargeCents:  roomCharge,
		ServiceLineItems: items,
		SubtotalCents:    subtotal,
		TaxRate:          rates.TaxRate,
		TaxCents:         tax,
		TotalCents:       subtotal + tax,
		Currency:         rates.Currency,
	}
}

// ParseAmount converts a decimal amount such as "12.50" into cents.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if !isDigits(whole) || (hasFrac && !isDigits(frac)) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %v", s, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %v", s, err)
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return total, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatCents renders cents as a two-decimal amount, e.g. 12155 -> "121.55".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
