package service

import (
	"context"
	"fmt"
	"strings"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
)

type guestDirectory struct {
	guestRepo repository.GuestRepository
}

func NewGuestDirectory(guestRepo repository.GuestRepository) GuestDirectory {
	return &guestDirectory{guestRepo: guestRepo}
}

// Find never fails on an empty term; it returns an empty result instead.
func (d *guestDirectory) Find(ctx context.Context, term string, mode domain.SearchMode) ([]domain.Guest, error) {
	logger.EnterMethod("guestDirectory.Find", "mode", mode)

	mode, err := domain.ParseSearchMode(string(mode))
	if err != nil {
		logger.ExitMethodWithError("guestDirectory.Find", err)
		return nil, err
	}
	if strings.TrimSpace(term) == "" {
		logger.ExitMethod("guestDirectory.Find", "count", 0)
		return []domain.Guest{}, nil
	}

	guests, err := d.guestRepo.Search(ctx, mode, term)
	if err != nil {
		logger.ExitMethodWithError("guestDirectory.Find", err)
		return nil, fmt.Errorf("failed to search guests: %w", err)
	}
	if guests == nil {
		guests = []domain.Guest{}
	}

	logger.ExitMethod("guestDirectory.Find", "count", len(guests))
	return guests, nil
}

func (d *guestDirectory) Get(ctx context.Context, id string) (*domain.Guest, error) {
	guest, err := d.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guest.Status != domain.GuestStatusInHouse {
		return nil, domain.ErrGuestNotFound
	}
	return guest, nil
}

func (d *guestDirectory) ListInHouse(ctx context.Context) ([]domain.Guest, error) {
	return d.guestRepo.ListInHouse(ctx)
}
