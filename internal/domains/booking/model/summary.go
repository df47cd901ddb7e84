package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryRow is the booking ledger joined with guest, room and room type
// data, for the front-desk overview. Read-only; inserts go through Booking.
type SummaryRow struct {
	ID           string          `db:"id"`
	HotelID      string          `db:"hotel_id"`
	Status       string          `db:"status"`
	CheckInDate  time.Time       `db:"check_in_date"`
	CheckOutDate time.Time       `db:"check_out_date"`
	GuestCount   int             `db:"guest_count"`
	RatePerNight decimal.Decimal `db:"rate_per_night"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	Archived     bool            `db:"archived"`

	CustomerID    string  `db:"customer_id"`
	CustomerName  *string `db:"customer_name"  table:"customers"  column:"full_name"`
	CustomerPhone *string `db:"customer_phone" table:"customers"  column:"phone"`
	RoomID        string  `db:"room_id"`
	RoomNumber    *string `db:"room_number"    table:"rooms"      column:"room_number"`
	RoomTypeName  *string `db:"room_type_name" table:"room_types" column:"name"`
}

// GetJoinQuery is picked up by the generic repository via reflection and
// appended to every SELECT on this model.
func (SummaryRow) GetJoinQuery() string {
	return `LEFT JOIN customers ON customers.id = bookings.customer_id
		LEFT JOIN rooms ON rooms.id = bookings.room_id
		LEFT JOIN room_types ON room_types.id = bookings.room_type_id`
}
