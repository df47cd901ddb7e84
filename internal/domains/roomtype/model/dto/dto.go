package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lodge/internal/domains/roomtype/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreateRoomTypeRequest struct {
	HotelID     string `json:"hotel_id"    validate:"required,uuid"`
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	BaseRate    string `json:"base_rate"   validate:"required"`
	Capacity    int    `json:"capacity"    validate:"required,min=1,max=20"`
}

func (c *CreateRoomTypeRequest) ToModel(user string) (model.RoomType, error) {
	baseRate, err := decimal.NewFromString(c.BaseRate)
	if err != nil {
		return model.RoomType{}, err //nolint:wrapcheck
	}

	return model.RoomType{
		ID:          uuid.NewString(),
		HotelID:     c.HotelID,
		Name:        c.Name,
		Description: c.Description,
		BaseRate:    baseRate,
		Capacity:    c.Capacity,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateRoomTypeRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty,max=500"`
	BaseRate    string `db:"base_rate"   json:"base_rate"   validate:"omitempty"`
	Capacity    int    `db:"capacity"    json:"capacity"    validate:"omitempty,min=1,max=20"`
	Active      *bool  `db:"active"      json:"active"      validate:"omitempty"`
}

type RoomTypeResponse struct {
	ID          string `json:"id"`
	HotelID     string `json:"hotel_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BaseRate    string `json:"base_rate"`
	Capacity    int    `json:"capacity"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Name = model.Name
	r.Description = model.Description
	r.BaseRate = model.BaseRate.StringFixed(2)
	r.Capacity = model.Capacity
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}
