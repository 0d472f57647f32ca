package domain

import "time"

type GuestStatus string

const (
	GuestStatusInHouse    GuestStatus = "IN_HOUSE"
	GuestStatusCheckedOut GuestStatus = "CHECKED_OUT"
)

type SearchMode string

const (
	SearchByRoom     SearchMode = "room"
	SearchByName     SearchMode = "name"
	SearchByDocument SearchMode = "document"
)

func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(s) {
	case SearchByRoom, SearchByName, SearchByDocument:
		return SearchMode(s), nil
	case "":
		return SearchByRoom, nil
	}
	return "", &ValidationError{Field: "mode", Reason: "must be one of room, name, document"}
}

type Guest struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	RoomID          string      `json:"room_id"`
	DocumentID      string      `json:"document_id"`
	Phone           string      `json:"phone"`
	Email           string      `json:"email"`
	CheckInAt       time.Time   `json:"check_in_at"`
	PlannedCheckOut *time.Time  `json:"planned_check_out,omitempty"`
	Status          GuestStatus `json:"status"`
	CheckedOutAt    *time.Time  `json:"checked_out_at,omitempty"`
}
