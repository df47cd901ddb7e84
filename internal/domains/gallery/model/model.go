package model

import (
	"github.com/lib/pq"

	"lodge/shared/model"
)

const (
	TableName  = "galleries"
	EntityName = "gallery"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImages      = "images"
)

// Gallery is a curated photo set for a room, shown on the public listing.
type Gallery struct {
	ID          string         `db:"id"`
	RoomID      string         `db:"room_id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Images      pq.StringArray `db:"images"`
	model.Metadata
}
