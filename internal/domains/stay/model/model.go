package model

import (
	"time"

	"github.com/shopspring/decimal"

	"lodge/shared/model"
)

const (
	TableName  = "stays"
	EntityName = "stay"

	FieldID                = "id"
	FieldBookingID         = "booking_id"
	FieldRoomID            = "room_id"
	FieldStaffID           = "staff_id"
	FieldCheckedInAt       = "checked_in_at"
	FieldCheckedOutAt      = "checked_out_at"
	FieldIncidentalCharges = "incidental_charges"
	FieldNotes             = "notes"
)

// Stay records the physical occupancy of a booking: opened at check-in,
// closed at check-out. Incidental charges (minibar, laundry) accumulate on
// the stay and are settled at check-out.
type Stay struct {
	ID                string          `db:"id"`
	BookingID         string          `db:"booking_id"`
	RoomID            string          `db:"room_id"`
	StaffID           string          `db:"staff_id"`
	CheckedInAt       time.Time       `db:"checked_in_at"`
	CheckedOutAt      *time.Time      `db:"checked_out_at"`
	IncidentalCharges decimal.Decimal `db:"incidental_charges"`
	Notes             string          `db:"notes"`
	model.Metadata
}

// Open reports whether the guest is still in the room.
func (s Stay) Open() bool {
	return s.CheckedOutAt == nil
}
