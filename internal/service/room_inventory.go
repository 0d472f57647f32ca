package service

import (
	"context"
	"fmt"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
)

type roomInventory struct {
	roomRepo repository.RoomRepository
}

func NewRoomInventory(roomRepo repository.RoomRepository) RoomInventory {
	return &roomInventory{roomRepo: roomRepo}
}

func (r *roomInventory) UpdateRoomStatus(ctx context.Context, roomID string, status domain.RoomStatus) error {
	logger.ExternalServiceCall("room-inventory", "UpdateRoomStatus", "room_id", roomID, "status", status)
	err := r.roomRepo.UpdateStatus(ctx, roomID, status)
	logger.ExternalServiceResult("room-inventory", "UpdateRoomStatus", err, "room_id", roomID)
	if err != nil {
		return fmt.Errorf("failed to update room %s: %w", roomID, err)
	}
	return nil
}
