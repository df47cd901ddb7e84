package model

import (
	"time"

	"github.com/shopspring/decimal"

	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldHotelID         = "hotel_id"
	FieldCustomerID      = "customer_id"
	FieldRoomID          = "room_id"
	FieldRoomTypeID      = "room_type_id"
	FieldRatePerNight    = "rate_per_night"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldGuestCount      = "guest_count"
	FieldStatus          = "status"
	FieldTotalAmount     = "total_amount"
	FieldSpecialRequests = "special_requests"
	FieldCancelReason    = "cancel_reason"
	FieldArchived        = "archived"
)

// Booking lifecycle statuses. The set is closed; transitions are enforced
// by the booking service, which is the only writer of the status column.
const (
	StatusBooked     = "booked"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
)

// transitions lists every permitted (from, to) pair. checked_in cannot be
// cancelled: a guest physically present can only be checked out.
var transitions = map[string][]string{
	StatusBooked:    {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut},
}

// CanTransition reports whether the lifecycle permits moving a booking
// from one status to another. Every pair not listed is rejected.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// IsValidStatus reports whether s is one of the closed status set.
func IsValidStatus(s string) bool {
	switch s {
	case StatusBooked, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}

	return false
}

// IsActiveStatus reports whether a booking in this status consumes room
// availability. Cancelled bookings never consumed the room; checked_out
// stays are over, so a new booking may start the same day.
func IsActiveStatus(s string) bool {
	return s == StatusBooked || s == StatusCheckedIn
}

// ActiveStatuses returns the statuses that participate in overlap checks.
func ActiveStatuses() []string {
	return []string{StatusBooked, StatusCheckedIn}
}

// Booking is a reservation of one room for one customer over a half-open
// date range [CheckInDate, CheckOutDate). RoomTypeID and RatePerNight are
// snapshotted at booking time so historical pricing survives later room
// type changes; this denormalization is intentional.
type Booking struct {
	ID              string          `db:"id"`
	HotelID         string          `db:"hotel_id"`
	CustomerID      string          `db:"customer_id"`
	RoomID          string          `db:"room_id"`
	RoomTypeID      *string         `db:"room_type_id"`
	RatePerNight    decimal.Decimal `db:"rate_per_night"`
	CheckInDate     time.Time       `db:"check_in_date"`
	CheckOutDate    time.Time       `db:"check_out_date"`
	GuestCount      int             `db:"guest_count"`
	Status          string          `db:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	SpecialRequests string          `db:"special_requests"`
	CancelReason    *string         `db:"cancel_reason"`
	Archived        bool            `db:"archived"`
	model.Metadata
}

// Nights returns the number of occupied nights. CheckOutDate is exclusive,
// so the last occupied night is the day before it.
func (b Booking) Nights() int {
	return Nights(b.CheckInDate, b.CheckOutDate)
}

// Overlaps reports whether the booking's range intersects [checkIn, checkOut).
// Two half-open ranges [a,b) and [c,d) intersect iff a < d and c < b.
func (b Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckInDate.Before(checkOut) && checkIn.Before(b.CheckOutDate)
}
