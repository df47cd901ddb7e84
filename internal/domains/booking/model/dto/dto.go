package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lodge/internal/domains/booking/model"
	customerDto "lodge/internal/domains/customer/model/dto"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

// CreateBookingRequest opens a reservation. The guest is referenced by ID
// for repeat customers or described inline for walk-ins; ExpectedTotal is
// advisory and always recomputed server-side.
type CreateBookingRequest struct {
	HotelID         string                             `json:"hotel_id"         validate:"required,uuid"`
	RoomID          string                             `json:"room_id"          validate:"required,uuid"`
	CustomerID      string                             `json:"customer_id"      validate:"omitempty,uuid"`
	Customer        *customerDto.CreateCustomerRequest `json:"customer"         validate:"omitempty"`
	CheckInDate     string                             `json:"check_in_date"    validate:"required"`
	CheckOutDate    string                             `json:"check_out_date"   validate:"required"`
	GuestCount      int                                `json:"guest_count"      validate:"required,min=1"`
	SpecialRequests string                             `json:"special_requests" validate:"omitempty,max=500"`
	ExpectedTotal   string                             `json:"expected_total"   validate:"omitempty"`
}

// ParseDates validates the requested range: parseable dates, half-open
// order, and these are the only date rules enforced at the DTO layer.
func (c *CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return checkIn, checkOut, failure.Validation(model.FieldCheckInDate, "invalid date, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, c.CheckOutDate)
	if err != nil {
		return checkIn, checkOut, failure.Validation(model.FieldCheckOutDate, "invalid date, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.Validation(model.FieldCheckOutDate, "check-out must be after check-in") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

// ToModel builds the booking row with the rate snapshot and the computed
// total. Dates must have been parsed and validated first.
func (c *CreateBookingRequest) ToModel(user, customerID, roomTypeID string, rate decimal.Decimal, checkIn, checkOut time.Time) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		HotelID:         c.HotelID,
		CustomerID:      customerID,
		RoomID:          c.RoomID,
		RoomTypeID:      &roomTypeID,
		RatePerNight:    rate,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		GuestCount:      c.GuestCount,
		Status:          model.StatusBooked,
		TotalAmount:     model.ComputeTotal(rate, checkIn, checkOut),
		SpecialRequests: c.SpecialRequests,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest amends a booking before check-in: new dates, guest
// count, requests, or a cancellation.
type UpdateBookingRequest struct {
	CheckInDate     string `json:"check_in_date"    validate:"omitempty"`
	CheckOutDate    string `json:"check_out_date"   validate:"omitempty"`
	GuestCount      int    `json:"guest_count"      validate:"omitempty,min=1"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=500"`
	Status          string `json:"status"           validate:"omitempty,oneof=cancelled"`
	CancelReason    string `json:"cancel_reason"    validate:"omitempty,max=500"`
}

func (u *UpdateBookingRequest) Empty() bool {
	return *u == (UpdateBookingRequest{})
}

// ChangesDates reports whether the update touches the reserved range and
// therefore needs the full overlap re-check.
func (u *UpdateBookingRequest) ChangesDates() bool {
	return u.CheckInDate != "" || u.CheckOutDate != ""
}

type CheckInRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

type CheckOutRequest struct {
	BookingID         string `json:"booking_id"         validate:"required,uuid"`
	IncidentalCharges string `json:"incidental_charges" validate:"omitempty"`
	Notes             string `json:"notes"              validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID              string `json:"id"`
	HotelID         string `json:"hotel_id"`
	CustomerID      string `json:"customer_id"`
	RoomID          string `json:"room_id"`
	RoomTypeID      string `json:"room_type_id,omitempty"`
	RatePerNight    string `json:"rate_per_night"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	Nights          int    `json:"nights"`
	GuestCount      int    `json:"guest_count"`
	Status          string `json:"status"`
	TotalAmount     string `json:"total_amount"`
	SpecialRequests string `json:"special_requests,omitempty"`
	CancelReason    string `json:"cancel_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.CustomerID = model.CustomerID
	r.RoomID = model.RoomID

	if model.RoomTypeID != nil {
		r.RoomTypeID = *model.RoomTypeID
	}

	r.RatePerNight = model.RatePerNight.StringFixed(2)
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Nights = model.Nights()
	r.GuestCount = model.GuestCount
	r.Status = model.Status
	r.TotalAmount = model.TotalAmount.StringFixed(2)
	r.SpecialRequests = model.SpecialRequests

	if model.CancelReason != nil {
		r.CancelReason = *model.CancelReason
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type SummaryRowResponse struct {
	ID            string `json:"id"`
	HotelID       string `json:"hotel_id"`
	Status        string `json:"status"`
	CheckInDate   string `json:"check_in_date"`
	CheckOutDate  string `json:"check_out_date"`
	GuestCount    int    `json:"guest_count"`
	RatePerNight  string `json:"rate_per_night"`
	TotalAmount   string `json:"total_amount"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	RoomID        string `json:"room_id"`
	RoomNumber    string `json:"room_number,omitempty"`
	RoomTypeName  string `json:"room_type_name,omitempty"`
}

func (r *SummaryRowResponse) FromModel(row model.SummaryRow) {
	r.ID = row.ID
	r.HotelID = row.HotelID
	r.Status = row.Status
	r.CheckInDate = row.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = row.CheckOutDate.Format(constant.DateOnlyFormat)
	r.GuestCount = row.GuestCount
	r.RatePerNight = row.RatePerNight.StringFixed(2)
	r.TotalAmount = row.TotalAmount.StringFixed(2)
	r.CustomerID = row.CustomerID

	if row.CustomerName != nil {
		r.CustomerName = *row.CustomerName
	}

	if row.CustomerPhone != nil {
		r.CustomerPhone = *row.CustomerPhone
	}

	r.RoomID = row.RoomID

	if row.RoomNumber != nil {
		r.RoomNumber = *row.RoomNumber
	}

	if row.RoomTypeName != nil {
		r.RoomTypeName = *row.RoomTypeName
	}
}

type GetSummaryResponse struct {
	Bookings  []SummaryRowResponse `json:"bookings"`
	TotalPage int                  `json:"total_page"`
	TotalData int                  `json:"total_data"`
}

func (r *GetSummaryResponse) FromModels(rows []model.SummaryRow, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]SummaryRowResponse, len(rows))
	for i, row := range rows {
		r.Bookings[i].FromModel(row)
	}
}

// AvailabilityQuery asks which rooms of a branch are free for a range.
// IncludeDirty opts dirty rooms into the answer; maintenance rooms are
// always excluded.
type AvailabilityQuery struct {
	HotelID      string `validate:"required,uuid"`
	CheckInDate  string `validate:"required"`
	CheckOutDate string `validate:"required"`
	RoomTypeID   string `validate:"omitempty,uuid"`
	IncludeDirty bool
}

func (q *AvailabilityQuery) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, q.CheckInDate)
	if err != nil {
		return checkIn, checkOut, failure.Validation(model.FieldCheckInDate, "invalid date, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, q.CheckOutDate)
	if err != nil {
		return checkIn, checkOut, failure.Validation(model.FieldCheckOutDate, "invalid date, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.Validation(model.FieldCheckOutDate, "check-out must be after check-in") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

// AvailabilityResponse lists the rooms of a branch free for a range.
type AvailabilityResponse struct {
	HotelID      string     `json:"hotel_id"`
	CheckInDate  string     `json:"check_in_date"`
	CheckOutDate string     `json:"check_out_date"`
	Rooms        []FreeRoom `json:"rooms"`
	TotalData    int        `json:"total_data"`
}

type FreeRoom struct {
	RoomID         string `json:"room_id"`
	RoomNumber     string `json:"room_number"`
	RoomTypeID     string `json:"room_type_id"`
	PhysicalStatus string `json:"physical_status"`
}

// RoomAvailabilityQuery asks whether a single room is free for a range.
type RoomAvailabilityQuery struct {
	RoomID       string `validate:"required,uuid"`
	CheckInDate  string `validate:"required"`
	CheckOutDate string `validate:"required"`
}

func (q *RoomAvailabilityQuery) ParseDates() (checkIn, checkOut time.Time, err error) {
	branchQuery := AvailabilityQuery{CheckInDate: q.CheckInDate, CheckOutDate: q.CheckOutDate}

	return branchQuery.ParseDates()
}

type RoomAvailabilityResponse struct {
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Free         bool   `json:"free"`
}
