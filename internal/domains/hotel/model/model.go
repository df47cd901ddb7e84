package model

import "lodge/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID      = "id"
	FieldName    = "name"
	FieldAddress = "address"
	FieldCity    = "city"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldActive  = "active"
)

// Hotel is a branch. Rooms, bookings and staff all hang off a branch.
type Hotel struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
	City    string `db:"city"`
	Phone   string `db:"phone"`
	Email   string `db:"email"`
	Active  bool   `db:"active"`
	model.Metadata
}
