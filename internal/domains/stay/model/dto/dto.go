package dto

import (
	"lodge/internal/domains/stay/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/timezone"
)

type StayResponse struct {
	ID                string `json:"id"`
	BookingID         string `json:"booking_id"`
	RoomID            string `json:"room_id"`
	StaffID           string `json:"staff_id"`
	CheckedInAt       string `json:"checked_in_at"`
	CheckedOutAt      string `json:"checked_out_at,omitempty"`
	IncidentalCharges string `json:"incidental_charges"`
	Notes             string `json:"notes"`
	gDto.Metadata
}

func (r *StayResponse) FromModel(model model.Stay) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.RoomID = model.RoomID
	r.StaffID = model.StaffID
	r.CheckedInAt = timezone.Format(model.CheckedInAt, constant.DateFormat)

	if model.CheckedOutAt != nil {
		r.CheckedOutAt = timezone.Format(*model.CheckedOutAt, constant.DateFormat)
	}

	r.IncidentalCharges = model.IncidentalCharges.StringFixed(2)
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetStaysResponse struct {
	Stays     []StayResponse `json:"stays"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetStaysResponse) FromModels(models []model.Stay, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Stays = make([]StayResponse, len(models))
	for i, mod := range models {
		r.Stays[i].FromModel(mod)
	}
}
