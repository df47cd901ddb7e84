package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	"lodge/infras/postgres"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/service"
	customerMocks "lodge/internal/domains/customer/mocks"
	customerModel "lodge/internal/domains/customer/model"
	customerDto "lodge/internal/domains/customer/model/dto"
	paymentMocks "lodge/internal/domains/payment/mocks"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
	roomTypeMocks "lodge/internal/domains/roomtype/mocks"
	roomTypeModel "lodge/internal/domains/roomtype/model"
	stayMocks "lodge/internal/domains/stay/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

const (
	testHotelID    = "4f8a4ab7-2f49-4dbd-b072-1f2345f3a001"
	testRoomID     = "4f8a4ab7-2f49-4dbd-b072-1f2345f3a002"
	testRoomTypeID = "4f8a4ab7-2f49-4dbd-b072-1f2345f3a003"
	testCustomerID = "4f8a4ab7-2f49-4dbd-b072-1f2345f3a004"
	testBookingID  = "4f8a4ab7-2f49-4dbd-b072-1f2345f3a005"
)

// bookingEnv wires the booking service against mocks. The write connection
// is backed by sqlmock so transactional paths see real Begin/Commit/Rollback.
type bookingEnv struct {
	repo     *bookingMocks.MockBooking
	summary  *bookingMocks.MockSummary
	room     *roomMocks.MockRoom
	roomType *roomTypeMocks.MockRoomType
	stay     *stayMocks.MockStay
	payment  *paymentMocks.MockPayment
	customer *customerMocks.MockCustomerService
	cache    *cacheMocks.MockRedisCache
	dbMock   sqlmock.Sqlmock
	cfg      *config.Config
	svc      service.Booking
}

func newBookingEnv(t *testing.T, ctrl *gomock.Controller) *bookingEnv {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	conn := &postgres.Connection{Write: sqlx.NewDb(db, "sqlmock")}

	env := &bookingEnv{
		repo:     bookingMocks.NewMockBooking(ctrl),
		summary:  bookingMocks.NewMockSummary(ctrl),
		room:     roomMocks.NewMockRoom(ctrl),
		roomType: roomTypeMocks.NewMockRoomType(ctrl),
		stay:     stayMocks.NewMockStay(ctrl),
		payment:  paymentMocks.NewMockPayment(ctrl),
		customer: customerMocks.NewMockCustomerService(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		dbMock:   dbMock,
		cfg:      &config.Config{},
	}

	env.cfg.Cache.TTL = 3600

	env.svc = service.New(
		env.repo,
		env.summary,
		env.room,
		env.roomType,
		env.stay,
		env.payment,
		env.customer,
		conn,
		env.cfg,
		env.cache,
		mocks.NewOtel(),
	)

	return env
}

// allowCacheInvalidation covers the asynchronous cache invalidation fired
// after successful writes.
func (e *bookingEnv) allowCacheInvalidation() {
	e.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	e.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func futureDate(t *testing.T, daysAhead int) string {
	t.Helper()

	return timezone.Now().AddDate(0, 0, daysAhead).Format(constant.DateOnlyFormat)
}

func availableRoom() roomModel.Room {
	return roomModel.Room{
		ID:             testRoomID,
		HotelID:        testHotelID,
		RoomTypeID:     testRoomTypeID,
		RoomNumber:     "101",
		PhysicalStatus: roomModel.StatusAvailable,
		Active:         true,
	}
}

func doubleRoomType() roomTypeModel.RoomType {
	return roomTypeModel.RoomType{
		ID:       testRoomTypeID,
		HotelID:  testHotelID,
		BaseRate: decimal.RequireFromString("150.00"),
		Capacity: 2,
	}
}

func bookedBooking() model.Booking {
	roomTypeID := testRoomTypeID

	return model.Booking{
		ID:           testBookingID,
		HotelID:      testHotelID,
		CustomerID:   testCustomerID,
		RoomID:       testRoomID,
		RoomTypeID:   &roomTypeID,
		RatePerNight: decimal.RequireFromString("150.00"),
		CheckInDate:  timezone.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		CheckOutDate: timezone.Now().AddDate(0, 0, 9).Truncate(24 * time.Hour),
		GuestCount:   2,
		Status:       model.StatusBooked,
		TotalAmount:  decimal.RequireFromString("300.00"),
	}
}

// arrivedBooking is a booked reservation whose range covers today, so the
// guest may be checked in.
func arrivedBooking() model.Booking {
	booking := bookedBooking()
	booking.CheckInDate = timezone.Now().Truncate(24 * time.Hour)
	booking.CheckOutDate = timezone.Now().AddDate(0, 0, 2).Truncate(24 * time.Hour)

	return booking
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)
	env.allowCacheInvalidation()

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
		wantField string
	}{
		{
			name: "successful creation prices nights times rate",
			req: dto.CreateBookingRequest{
				HotelID:      testHotelID,
				RoomID:       testRoomID,
				CustomerID:   testCustomerID,
				CheckInDate:  futureDate(t, 7),
				CheckOutDate: futureDate(t, 9),
				GuestCount:   2,
			},
			setupMock: func() {
				env.customer.EXPECT().
					Get(gomock.Any(), testCustomerID).
					Return(customerDto.CustomerResponse{ID: testCustomerID}, nil)

				env.dbMock.ExpectBegin()

				env.room.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testRoomID).
					Return(availableRoom(), nil)

				env.roomType.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(doubleRoomType(), nil)

				env.repo.EXPECT().
					ActiveOverlapExistsTx(gomock.Any(), gomock.Any(), testRoomID, gomock.Any(), gomock.Any(), "").
					Return(false, nil)

				env.repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
						assert.Equal(t, model.StatusBooked, booking.Status)
						assert.True(t, booking.TotalAmount.Equal(decimal.RequireFromString("300.00")))

						return nil
					})

				env.dbMock.ExpectCommit()
			},
		},
		{
			name: "check-out before check-in",
			req: dto.CreateBookingRequest{
				HotelID:      testHotelID,
				RoomID:       testRoomID,
				CustomerID:   testCustomerID,
				CheckInDate:  futureDate(t, 9),
				CheckOutDate: futureDate(t, 7),
				GuestCount:   2,
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name: "past check-in rejected",
			req: dto.CreateBookingRequest{
				HotelID:      testHotelID,
				RoomID:       testRoomID,
				CustomerID:   testCustomerID,
				CheckInDate:  futureDate(t, -2),
				CheckOutDate: futureDate(t, 1),
				GuestCount:   2,
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name: "customer reference required",
			req: dto.CreateBookingRequest{
				HotelID:      testHotelID,
				RoomID:       testRoomID,
				CheckInDate:  futureDate(t, 7),
				CheckOutDate: futureDate(t, 9),
				GuestCount:   2,
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name: "room already booked for the range",
			req: dto.CreateBookingRequest{
				HotelID:      testHotelID,
				RoomID:       testRoomID,
				CustomerID:   testCustomerID,
				CheckInDate:  futureDate(t, 7),
				CheckOutDate: futureDate(t, 9),
				GuestCount:   2,
			},
			setupMock: func() {
				env.customer.EXPECT().
					Get(gomock.Any(), testCustomerID).
					Return(customerDto.CustomerResponse{ID: testCustomerID}, nil)

				env.dbMock.ExpectBegin()

				env.room.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testRoomID).
					Return(availableRoom(), nil)

				env.roomType.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(doubleRoomType(), nil)

				env.repo.EXPECT().
					ActiveOverlapExistsTx(gomock.Any(), gomock.Any(), testRoomID, gomock.Any(), gomock.Any(), "").
					Return(true, nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "guest count over capacity",
			req: dto.CreateBookingRequest{
				HotelID:      testHotelID,
				RoomID:       testRoomID,
				CustomerID:   testCustomerID,
				CheckInDate:  futureDate(t, 7),
				CheckOutDate: futureDate(t, 9),
				GuestCount:   5,
			},
			setupMock: func() {
				env.customer.EXPECT().
					Get(gomock.Any(), testCustomerID).
					Return(customerDto.CustomerResponse{ID: testCustomerID}, nil)

				env.dbMock.ExpectBegin()

				env.room.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testRoomID).
					Return(availableRoom(), nil)

				env.roomType.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(doubleRoomType(), nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:   true,
			wantKind:  failure.KindValidation,
			wantField: model.FieldGuestCount,
		},
		{
			name: "room under maintenance",
			req: dto.CreateBookingRequest{
				HotelID:      testHotelID,
				RoomID:       testRoomID,
				CustomerID:   testCustomerID,
				CheckInDate:  futureDate(t, 7),
				CheckOutDate: futureDate(t, 9),
				GuestCount:   2,
			},
			setupMock: func() {
				env.customer.EXPECT().
					Get(gomock.Any(), testCustomerID).
					Return(customerDto.CustomerResponse{ID: testCustomerID}, nil)

				env.dbMock.ExpectBegin()

				room := availableRoom()
				room.PhysicalStatus = roomModel.StatusMaintenance

				env.room.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testRoomID).
					Return(room, nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "room belongs to another hotel",
			req: dto.CreateBookingRequest{
				HotelID:      testCustomerID,
				RoomID:       testRoomID,
				CustomerID:   testCustomerID,
				CheckInDate:  futureDate(t, 7),
				CheckOutDate: futureDate(t, 9),
				GuestCount:   2,
			},
			setupMock: func() {
				env.customer.EXPECT().
					Get(gomock.Any(), testCustomerID).
					Return(customerDto.CustomerResponse{ID: testCustomerID}, nil)

				env.dbMock.ExpectBegin()

				env.room.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testRoomID).
					Return(availableRoom(), nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := env.svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				if tt.wantField != "" {
					var fail *failure.Failure

					assert.ErrorAs(t, err, &fail)
					assert.Equal(t, tt.wantField, fail.Field)
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusBooked, res.Status)
			assert.Equal(t, "300.00", res.TotalAmount)
			assert.Equal(t, 2, res.Nights)
		})
	}
}

func TestBookingService_CreateWalkIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)
	env.allowCacheInvalidation()

	req := dto.CreateBookingRequest{
		HotelID: testHotelID,
		RoomID:  testRoomID,
		Customer: &customerDto.CreateCustomerRequest{
			FullName: "Walk In",
			Phone:    "+6281234567890",
		},
		CheckInDate:  futureDate(t, 7),
		CheckOutDate: futureDate(t, 8),
		GuestCount:   1,
	}

	env.customer.EXPECT().
		FindOrCreate(gomock.Any(), *req.Customer).
		Return(customerModel.Customer{ID: testCustomerID}, nil)

	env.dbMock.ExpectBegin()

	env.room.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), testRoomID).
		Return(availableRoom(), nil)

	env.roomType.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(doubleRoomType(), nil)

	env.repo.EXPECT().
		ActiveOverlapExistsTx(gomock.Any(), gomock.Any(), testRoomID, gomock.Any(), gomock.Any(), "").
		Return(false, nil)

	env.repo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
			assert.Equal(t, testCustomerID, booking.CustomerID)

			return nil
		})

	env.dbMock.ExpectCommit()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	res, err := env.svc.Create(ctx, req)

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, "150.00", res.TotalAmount)
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)
	env.allowCacheInvalidation()

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "cancel a booked reservation",
			req:  dto.UpdateBookingRequest{Status: model.StatusCancelled, CancelReason: "guest called"},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(bookedBooking(), nil)

				env.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
						assert.Equal(t, "guest called", fields[model.FieldCancelReason])

						return nil
					})

				env.dbMock.ExpectCommit()
			},
		},
		{
			name: "cancelling twice is a no-op",
			req:  dto.UpdateBookingRequest{Status: model.StatusCancelled},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				booking := bookedBooking()
				booking.Status = model.StatusCancelled

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(booking, nil)

				env.dbMock.ExpectCommit()
			},
		},
		{
			name: "checked-in guest cannot be cancelled",
			req:  dto.UpdateBookingRequest{Status: model.StatusCancelled},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				booking := bookedBooking()
				booking.Status = model.StatusCheckedIn

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(booking, nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTransition,
		},
		{
			name:      "cancellation combined with other changes",
			req:       dto.UpdateBookingRequest{Status: model.StatusCancelled, GuestCount: 3},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name:      "empty update",
			req:       dto.UpdateBookingRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name: "booking not found",
			req:  dto.UpdateBookingRequest{Status: model.StatusCancelled},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(model.Booking{}, nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := env.svc.Update(ctx, tt.req, testBookingID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Amend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)
	env.allowCacheInvalidation()

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "date change recomputes the total from the rate snapshot",
			req: dto.UpdateBookingRequest{
				CheckInDate:  futureDate(t, 10),
				CheckOutDate: futureDate(t, 13),
			},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(bookedBooking(), nil)

				env.room.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testRoomID).
					Return(availableRoom(), nil)

				env.repo.EXPECT().
					ActiveOverlapExistsTx(gomock.Any(), gomock.Any(), testRoomID, gomock.Any(), gomock.Any(), testBookingID).
					Return(false, nil)

				env.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						total, ok := fields[model.FieldTotalAmount].(decimal.Decimal)
						assert.True(t, ok)
						assert.True(t, total.Equal(decimal.RequireFromString("450.00")))

						return nil
					})

				env.dbMock.ExpectCommit()
			},
		},
		{
			name: "new dates collide with another booking",
			req: dto.UpdateBookingRequest{
				CheckInDate:  futureDate(t, 10),
				CheckOutDate: futureDate(t, 13),
			},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(bookedBooking(), nil)

				env.room.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testRoomID).
					Return(availableRoom(), nil)

				env.repo.EXPECT().
					ActiveOverlapExistsTx(gomock.Any(), gomock.Any(), testRoomID, gomock.Any(), gomock.Any(), testBookingID).
					Return(true, nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "re-dating into the past rejected",
			req: dto.UpdateBookingRequest{
				CheckInDate:  timezone.Now().AddDate(0, 0, -2).Format(constant.DateOnlyFormat),
				CheckOutDate: futureDate(t, 2),
			},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(bookedBooking(), nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindValidation,
		},
		{
			name: "guest count over capacity",
			req:  dto.UpdateBookingRequest{GuestCount: 5},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(bookedBooking(), nil)

				env.roomType.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(doubleRoomType(), nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindValidation,
		},
		{
			name: "checked-in booking cannot be amended",
			req:  dto.UpdateBookingRequest{SpecialRequests: "late checkout"},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				booking := bookedBooking()
				booking.Status = model.StatusCheckedIn

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(booking, nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := env.svc.Update(ctx, tt.req, testBookingID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)
	env.allowCacheInvalidation()

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "check-in opens a stay and occupies the room",
			setupMock: func() {
				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(arrivedBooking(), nil)

				env.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCheckedIn, fields[model.FieldStatus])

						return nil
					})

				env.stay.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				env.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldPhysicalStatus])

						return nil
					})

				env.dbMock.ExpectCommit()
			},
		},
		{
			name: "unpaid booking blocked when payment is required first",
			setupMock: func() {
				env.cfg.App.Policy.RequirePaymentBeforeCheckIn = true

				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(arrivedBooking(), nil)

				env.payment.EXPECT().
					SumByBooking(gomock.Any(), testBookingID).
					Return(decimal.RequireFromString("50.00"), nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "fully paid booking passes the payment gate",
			setupMock: func() {
				env.cfg.App.Policy.RequirePaymentBeforeCheckIn = true

				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(arrivedBooking(), nil)

				env.payment.EXPECT().
					SumByBooking(gomock.Any(), testBookingID).
					Return(decimal.RequireFromString("300.00"), nil)

				env.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				env.stay.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				env.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				env.dbMock.ExpectCommit()
			},
		},
		{
			name: "check-in before the reserved range rejected",
			setupMock: func() {
				env.cfg.App.Policy.RequirePaymentBeforeCheckIn = false

				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(bookedBooking(), nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "check-in after the stay has lapsed rejected",
			setupMock: func() {
				env.dbMock.ExpectBegin()

				booking := bookedBooking()
				booking.CheckInDate = timezone.Now().AddDate(0, 0, -3).Truncate(24 * time.Hour)
				booking.CheckOutDate = timezone.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(booking, nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "cancelled booking cannot be checked in",
			setupMock: func() {
				env.cfg.App.Policy.RequirePaymentBeforeCheckIn = false

				env.dbMock.ExpectBegin()

				booking := bookedBooking()
				booking.Status = model.StatusCancelled

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(booking, nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTransition,
		},
		{
			name: "double check-in rejected",
			setupMock: func() {
				env.dbMock.ExpectBegin()

				booking := bookedBooking()
				booking.Status = model.StatusCheckedIn

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(booking, nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := env.svc.CheckIn(ctx, dto.CheckInRequest{BookingID: testBookingID})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_CheckOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)
	env.allowCacheInvalidation()

	checkedIn := func() model.Booking {
		booking := bookedBooking()
		booking.Status = model.StatusCheckedIn

		return booking
	}

	tests := []struct {
		name      string
		req       dto.CheckOutRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "check-out closes the stay and marks the room dirty",
			req: dto.CheckOutRequest{
				BookingID:         testBookingID,
				IncidentalCharges: "45.50",
				Notes:             "minibar",
			},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(checkedIn(), nil)

				env.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCheckedOut, fields[model.FieldStatus])

						return nil
					})

				env.stay.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						charges, ok := fields["incidental_charges"].(decimal.Decimal)
						assert.True(t, ok)
						assert.True(t, charges.Equal(decimal.RequireFromString("45.50")))

						return nil
					})

				env.room.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, roomModel.StatusDirty, fields[roomModel.FieldPhysicalStatus])

						return nil
					})

				env.dbMock.ExpectCommit()
			},
		},
		{
			name: "negative charges rejected",
			req: dto.CheckOutRequest{
				BookingID:         testBookingID,
				IncidentalCharges: "-10.00",
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name: "malformed charges rejected",
			req: dto.CheckOutRequest{
				BookingID:         testBookingID,
				IncidentalCharges: "lots",
			},
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name: "booked guest has not checked in yet",
			req:  dto.CheckOutRequest{BookingID: testBookingID},
			setupMock: func() {
				env.dbMock.ExpectBegin()

				env.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), testBookingID).
					Return(bookedBooking(), nil)

				env.dbMock.ExpectRollback()
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := env.svc.CheckOut(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)
	env.allowCacheInvalidation()

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "booked reservation is hard deleted",
			setupMock: func() {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedBooking(), nil)

				env.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "completed stay is archived instead",
			setupMock: func() {
				booking := bookedBooking()
				booking.Status = model.StatusCheckedOut

				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				env.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, true, fields[model.FieldArchived])

						return nil
					})
			},
		},
		{
			name: "guest in the room refuses deletion",
			setupMock: func() {
				booking := bookedBooking()
				booking.Status = model.StatusCheckedIn

				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "booking not found",
			setupMock: func() {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := env.svc.Delete(ctx, testBookingID)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_IsRoomFree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)

	checkIn := timezone.Now().AddDate(0, 0, 7)
	checkOut := timezone.Now().AddDate(0, 0, 9)

	t.Run("free when no active booking overlaps", func(t *testing.T) {
		env.room.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableRoom(), nil)

		env.repo.EXPECT().
			ActiveOverlapExists(gomock.Any(), testRoomID, checkIn, checkOut, "").
			Return(false, nil)

		free, err := env.svc.IsRoomFree(context.Background(), testRoomID, checkIn, checkOut)

		assert.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("taken when an active booking overlaps", func(t *testing.T) {
		env.room.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableRoom(), nil)

		env.repo.EXPECT().
			ActiveOverlapExists(gomock.Any(), testRoomID, checkIn, checkOut, "").
			Return(true, nil)

		free, err := env.svc.IsRoomFree(context.Background(), testRoomID, checkIn, checkOut)

		assert.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("taken while the room is under maintenance", func(t *testing.T) {
		room := availableRoom()
		room.PhysicalStatus = roomModel.StatusMaintenance

		env.room.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		free, err := env.svc.IsRoomFree(context.Background(), testRoomID, checkIn, checkOut)

		assert.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("unknown room rejected", func(t *testing.T) {
		env.room.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := env.svc.IsRoomFree(context.Background(), testRoomID, checkIn, checkOut)

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("storage error propagates", func(t *testing.T) {
		env.room.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableRoom(), nil)

		env.repo.EXPECT().
			ActiveOverlapExists(gomock.Any(), testRoomID, checkIn, checkOut, "").
			Return(false, errors.New("database error"))

		_, err := env.svc.IsRoomFree(context.Background(), testRoomID, checkIn, checkOut)

		assert.Error(t, err)
	})
}

func TestBookingService_ListFreeRooms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)

	inventory := func() []roomModel.Room {
		available := availableRoom()

		busy := availableRoom()
		busy.ID = "room-busy"
		busy.RoomNumber = "102"

		dirty := availableRoom()
		dirty.ID = "room-dirty"
		dirty.RoomNumber = "103"
		dirty.PhysicalStatus = roomModel.StatusDirty

		maintenance := availableRoom()
		maintenance.ID = "room-maintenance"
		maintenance.RoomNumber = "104"
		maintenance.PhysicalStatus = roomModel.StatusMaintenance

		return []roomModel.Room{available, busy, dirty, maintenance}
	}

	query := dto.AvailabilityQuery{
		HotelID:      testHotelID,
		CheckInDate:  futureDate(t, 7),
		CheckOutDate: futureDate(t, 9),
	}

	t.Run("busy, dirty and maintenance rooms are excluded", func(t *testing.T) {
		env.repo.EXPECT().
			OverlappingRoomIDs(gomock.Any(), testHotelID, gomock.Any(), gomock.Any()).
			Return([]string{"room-busy"}, nil)

		env.room.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(inventory(), nil)

		res, err := env.svc.ListFreeRooms(context.Background(), query)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, testRoomID, res.Rooms[0].RoomID)
	})

	t.Run("dirty rooms are offered on request", func(t *testing.T) {
		withDirty := query
		withDirty.IncludeDirty = true

		env.repo.EXPECT().
			OverlappingRoomIDs(gomock.Any(), testHotelID, gomock.Any(), gomock.Any()).
			Return([]string{"room-busy"}, nil)

		env.room.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(inventory(), nil)

		res, err := env.svc.ListFreeRooms(context.Background(), withDirty)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
	})

	t.Run("invalid range rejected before any lookup", func(t *testing.T) {
		bad := query
		bad.CheckOutDate = bad.CheckInDate

		_, err := env.svc.ListFreeRooms(context.Background(), bad)

		assert.Error(t, err)
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)

	t.Run("found on cache miss", func(t *testing.T) {
		env.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		env.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookedBooking(), nil)

		env.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := env.svc.Get(context.Background(), testBookingID)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, testBookingID, res.ID)
		assert.Equal(t, 2, res.Nights)
		assert.Equal(t, "300.00", res.TotalAmount)
	})

	t.Run("not found", func(t *testing.T) {
		env.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		env.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := env.svc.Get(context.Background(), testBookingID)

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newBookingEnv(t, ctrl)

	t.Run("lists with total pages", func(t *testing.T) {
		env.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		env.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		env.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{bookedBooking()}, nil)

		env.cache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := env.svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Bookings, 1)
	})
}
