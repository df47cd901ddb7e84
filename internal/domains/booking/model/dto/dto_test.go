package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

func TestCreateBookingRequest_ParseDates(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{
			name:     "valid range",
			checkIn:  "2026-03-10",
			checkOut: "2026-03-12",
		},
		{
			name:     "malformed check-in",
			checkIn:  "10-03-2026",
			checkOut: "2026-03-12",
			wantErr:  true,
		},
		{
			name:     "malformed check-out",
			checkIn:  "2026-03-10",
			checkOut: "soon",
			wantErr:  true,
		},
		{
			name:     "check-out before check-in",
			checkIn:  "2026-03-12",
			checkOut: "2026-03-10",
			wantErr:  true,
		},
		{
			name:     "zero-night stay",
			checkIn:  "2026-03-10",
			checkOut: "2026-03-10",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateBookingRequest{
				CheckInDate:  tt.checkIn,
				CheckOutDate: tt.checkOut,
			}

			checkIn, checkOut, err := req.ParseDates()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, failure.KindValidation, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.True(t, checkOut.After(checkIn))
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		HotelID:         "hotel-1",
		RoomID:          "room-1",
		GuestCount:      2,
		SpecialRequests: "late arrival",
	}

	rate := decimal.RequireFromString("150.00")
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)

	booking := req.ToModel("user-1", "customer-1", "roomtype-1", rate, checkIn, checkOut)

	assert.NotEmpty(t, booking.ID, "expected ID to be generated")
	assert.Equal(t, "hotel-1", booking.HotelID)
	assert.Equal(t, "customer-1", booking.CustomerID)
	assert.Equal(t, "room-1", booking.RoomID)
	assert.Equal(t, "roomtype-1", *booking.RoomTypeID)
	assert.Equal(t, model.StatusBooked, booking.Status)
	assert.True(t, booking.RatePerNight.Equal(rate))
	assert.True(t, booking.TotalAmount.Equal(decimal.RequireFromString("450.00")), "got %s", booking.TotalAmount)
	assert.Equal(t, "user-1", booking.CreatedBy)
	assert.Equal(t, "user-1", booking.ModifiedBy)
	assert.False(t, booking.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestUpdateBookingRequest_Empty(t *testing.T) {
	assert.True(t, (&dto.UpdateBookingRequest{}).Empty())
	assert.False(t, (&dto.UpdateBookingRequest{GuestCount: 2}).Empty())
	assert.False(t, (&dto.UpdateBookingRequest{Status: model.StatusCancelled}).Empty())
}

func TestUpdateBookingRequest_ChangesDates(t *testing.T) {
	assert.False(t, (&dto.UpdateBookingRequest{GuestCount: 2}).ChangesDates())
	assert.True(t, (&dto.UpdateBookingRequest{CheckInDate: "2026-03-10"}).ChangesDates())
	assert.True(t, (&dto.UpdateBookingRequest{CheckOutDate: "2026-03-12"}).ChangesDates())
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	roomTypeID := "roomtype-1"
	cancelReason := "guest called"

	booking := model.Booking{
		ID:           "booking-1",
		HotelID:      "hotel-1",
		CustomerID:   "customer-1",
		RoomID:       "room-1",
		RoomTypeID:   &roomTypeID,
		RatePerNight: decimal.RequireFromString("150"),
		CheckInDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		GuestCount:   2,
		Status:       model.StatusCancelled,
		TotalAmount:  decimal.RequireFromString("300"),
		CancelReason: &cancelReason,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "user-1",
			ModifiedBy: "user-1",
		},
	}

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, "booking-1", res.ID)
	assert.Equal(t, "roomtype-1", res.RoomTypeID)
	assert.Equal(t, "150.00", res.RatePerNight)
	assert.Equal(t, "300.00", res.TotalAmount)
	assert.Equal(t, "2026-03-10", res.CheckInDate)
	assert.Equal(t, "2026-03-12", res.CheckOutDate)
	assert.Equal(t, 2, res.Nights)
	assert.Equal(t, "guest called", res.CancelReason)
	assert.Equal(t, "user-1", res.CreatedBy)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	models := []model.Booking{
		{ID: "booking-1", CheckInDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), CheckOutDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)},
		{ID: "booking-2", CheckInDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), CheckOutDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
	}

	var res dto.GetBookingsResponse
	res.FromModels(models, 12, 5)

	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, "booking-1", res.Bookings[0].ID)
}

func TestAvailabilityQuery_ParseDates(t *testing.T) {
	query := dto.AvailabilityQuery{
		HotelID:      "hotel-1",
		CheckInDate:  "2026-03-10",
		CheckOutDate: "2026-03-12",
	}

	checkIn, checkOut, err := query.ParseDates()

	assert.NoError(t, err)
	assert.Equal(t, 2, model.Nights(checkIn, checkOut))

	query.CheckOutDate = query.CheckInDate

	_, _, err = query.ParseDates()
	assert.Error(t, err)
	assert.Equal(t, failure.KindValidation, failure.GetKind(err))
}
