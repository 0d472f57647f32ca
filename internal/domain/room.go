package domain

type RoomStatus string

const (
	RoomStatusAvailable                  RoomStatus = "available"
	RoomStatusOccupied                   RoomStatus = "occupied"
	RoomStatusCleaning                   RoomStatus = "cleaning"
	RoomStatusMaintenancePendingCleaning RoomStatus = "maintenance-pending-cleaning"
	RoomStatusMaintenance                RoomStatus = "maintenance"
	RoomStatusReserved                   RoomStatus = "reserved"
)

type Room struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Floor     int        `json:"floor"`
	Status    RoomStatus `json:"status"`
	UpdatedOn string     `json:"updated_on"`
}
