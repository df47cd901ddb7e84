package model

import (
	"github.com/lib/pq"

	"lodge/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID             = "id"
	FieldHotelID        = "hotel_id"
	FieldRoomTypeID     = "room_type_id"
	FieldRoomNumber     = "room_number"
	FieldFloor          = "floor"
	FieldPhysicalStatus = "physical_status"
	FieldNotes          = "notes"
	FieldPhotos         = "photos"
	FieldActive         = "active"
)

// Physical room statuses. Orthogonal to the booking lifecycle: a room can
// be dirty while its next booking is already confirmed.
const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
	StatusDirty       = "dirty"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusDirty:
		return true
	}

	return false
}

// Bookable reports whether a room in this physical status can be offered.
// Dirty rooms are bookable only when the caller opts in; maintenance rooms
// never are.
func Bookable(s string, includeDirty bool) bool {
	switch s {
	case StatusAvailable, StatusOccupied:
		return true
	case StatusDirty:
		return includeDirty
	default:
		return false
	}
}

type Room struct {
	ID             string         `db:"id"`
	HotelID        string         `db:"hotel_id"`
	RoomTypeID     string         `db:"room_type_id"`
	RoomNumber     string         `db:"room_number"`
	Floor          int            `db:"floor"`
	PhysicalStatus string         `db:"physical_status"`
	Notes          string         `db:"notes"`
	Photos         pq.StringArray `db:"photos"`
	Active         bool           `db:"active"`
	model.Metadata
}
