package domain

import "time"

type BillingCadence string

const (
	// CadencePerNight charges one unit per billed night.
	CadencePerNight BillingCadence = "per_night"
	// CadencePerStay charges a single unit regardless of length of stay.
	CadencePerStay BillingCadence = "per_stay"
)

type ServiceRate struct {
	Name           string         `json:"name"`
	UnitPriceCents int64          `json:"unit_price_cents"`
	Cadence        BillingCadence `json:"cadence"`
}

// RateTable is read-only after construction.
type RateTable struct {
	NightlyRateCents int64         `json:"nightly_rate_cents"`
	Services         []ServiceRate `json:"services"`
	TaxRate          float64       `json:"tax_rate"`
	Currency         string        `json:"currency"`
}

type LineItem struct {
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	LineTotalCents int64  `json:"line_total_cents"`
}

type StayBillingSnapshot struct {
	GuestID          string     `json:"guest_id"`
	ComputedAt       time.Time  `json:"computed_at"`
	Nights           int        `json:"nights"`
	NightlyRateCents int64      `json:"nightly_rate_cents"`
	RoomChargeCents  int64      `json:"room_charge_cents"`
	ServiceLineItems []LineItem `json:"service_line_items"`
	SubtotalCents    int64      `json:"subtotal_cents"`
	TaxRate          float64    `json:"tax_rate"`
	TaxCents         int64      `json:"tax_cents"`
	TotalCents       int64      `json:"total_cents"`
	Currency         string     `json:"currency"`
}

// ServiceTotalCents sums the ancillary line items.
func (s StayBillingSnapshot) ServiceTotalCents() int64 {
	var total int64
	for _, item := range s.ServiceLineItems {
		total += item.LineTotalCents
	}
	return total
}
