package dto

import (
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateRoomRequest struct {
	HotelID    string   `json:"hotel_id"     validate:"required,uuid"`
	RoomTypeID string   `json:"room_type_id" validate:"required,uuid"`
	RoomNumber string   `json:"room_number"  validate:"required,max=10"`
	Floor      int      `json:"floor"        validate:"omitempty,min=0"`
	Notes      string   `json:"notes"        validate:"omitempty,max=500"`
	Photos     []string `json:"photos"       validate:"omitempty,dive,url"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:             uuid.NewString(),
		HotelID:        c.HotelID,
		RoomTypeID:     c.RoomTypeID,
		RoomNumber:     c.RoomNumber,
		Floor:          c.Floor,
		PhysicalStatus: model.StatusAvailable,
		Notes:          c.Notes,
		Photos:         pq.StringArray(c.Photos),
		Active:         true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomTypeID string `db:"room_type_id" json:"room_type_id" validate:"omitempty,uuid"`
	RoomNumber string `db:"room_number"  json:"room_number"  validate:"omitempty,max=10"`
	Floor      int    `db:"floor"        json:"floor"        validate:"omitempty,min=0"`
	Notes      string `db:"notes"        json:"notes"        validate:"omitempty,max=500"`
	Active     *bool  `db:"active"       json:"active"       validate:"omitempty"`
}

// SetStatusRequest moves a room between physical statuses, for housekeeping
// and maintenance flows.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance dirty"`
}

type UploadPhotoRequest struct {
	Photo     *multipart.FileHeader
	PhotoFile multipart.File
}

type UploadPhotoResponse struct {
	URL string `json:"url"`
}

type RoomResponse struct {
	ID             string   `json:"id"`
	HotelID        string   `json:"hotel_id"`
	RoomTypeID     string   `json:"room_type_id"`
	RoomNumber     string   `json:"room_number"`
	Floor          int      `json:"floor"`
	PhysicalStatus string   `json:"physical_status"`
	Notes          string   `json:"notes"`
	Photos         []string `json:"photos"`
	Active         bool     `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.RoomTypeID = model.RoomTypeID
	r.RoomNumber = model.RoomNumber
	r.Floor = model.Floor
	r.PhysicalStatus = model.PhysicalStatus
	r.Notes = model.Notes
	r.Photos = model.Photos
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
