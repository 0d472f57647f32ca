package service

import (
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/utils"
)

type billingCalculator struct {
	rates domain.RateTable
}

// NewBillingCalculator fixes the rate table for the lifetime of the calculator.
func NewBillingCalculator(rates domain.RateTable) BillingCalculator {
	services := make([]domain.ServiceRate, len(rates.Services))
	copy(services, rates.Services)
	rates.Services = services
	return &billingCalculator{rates: rates}
}

func (b *billingCalculator) ComputeSnapshot(guest *domain.Guest, now time.Time) domain.StayBillingSnapshot {
	return utils.CalculateStaySnapshot(guest, now, b.rates)
}

func (b *billingCalculator) RateTable() domain.RateTable {
	rates := b.rates
	rates.Services = make([]domain.ServiceRate, len(b.rates.Services))
	copy(rates.Services, b.rates.Services)
	return rates
}
