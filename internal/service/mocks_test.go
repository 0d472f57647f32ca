package service

import (
	"context"
	"time"

	"frontdesk-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockRoomInventory struct {
	mock.Mock
}

func (m *MockRoomInventory) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

type MockCheckoutRepo struct {
	mock.Mock
}

func (m *MockCheckoutRepo) Create(ctx context.Context, tx *domain.CheckoutTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCheckoutRepo) GetByID(ctx context.Context, id string) (*domain.CheckoutTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutTransaction), args.Error(1)
}

func (m *MockCheckoutRepo) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]domain.CheckoutTransaction, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.CheckoutTransaction), args.Error(1)
}

type MockGuestRepo struct {
	mock.Mock
}

func (m *MockGuestRepo) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Guest), args.Error(1)
}

func (m *MockGuestRepo) Search(ctx context.Context, mode domain.SearchMode, term string) ([]domain.Guest, error) {
	args := m.Called(ctx, mode, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Guest), args.Error(1)
}

func (m *MockGuestRepo) ListInHouse(ctx context.Context) ([]domain.Guest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Guest), args.Error(1)
}

func (m *MockGuestRepo) MarkCheckedOut(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

var testRates = domain.RateTable{
	NightlyRateCents: 8500,
	Services: []domain.ServiceRate{
		{Name: "Desayuno", UnitPriceCents: 1250, Cadence: domain.CadencePerNight},
		{Name: "Parking", UnitPriceCents: 800, Cadence: domain.CadencePerNight},
		{Name: "WiFi Premium", UnitPriceCents: 500, Cadence: domain.CadencePerNight},
	},
	TaxRate:  0.10,
	Currency: "EUR",
}
