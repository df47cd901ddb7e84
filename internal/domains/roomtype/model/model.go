package model

import (
	"github.com/shopspring/decimal"

	"lodge/shared/model"
)

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID          = "id"
	FieldHotelID     = "hotel_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldBaseRate    = "base_rate"
	FieldCapacity    = "capacity"
	FieldActive      = "active"
)

// RoomType groups rooms that share a nightly rate and a guest capacity.
// BaseRate is the rate snapshotted onto bookings at creation time.
type RoomType struct {
	ID          string          `db:"id"`
	HotelID     string          `db:"hotel_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	BaseRate    decimal.Decimal `db:"base_rate"`
	Capacity    int             `db:"capacity"`
	Active      bool            `db:"active"`
	model.Metadata
}
