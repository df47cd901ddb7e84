package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	bookingModel "lodge/internal/domains/booking/model"
	paymentMocks "lodge/internal/domains/payment/mocks"
	"lodge/internal/domains/payment/model/dto"
	"lodge/internal/domains/payment/service"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

const testBookingID = "4f8a4ab7-2f49-4dbd-b072-1f2345f3b001"

func activeBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:          testBookingID,
		Status:      bookingModel.StatusBooked,
		TotalAmount: decimal.RequireFromString("300.00"),
	}
}

func TestPaymentService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		req       dto.CreatePaymentRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "successful payment",
			req: dto.CreatePaymentRequest{
				BookingID: testBookingID,
				Amount:    "150.00",
				Method:    "cash",
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(), nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "booking not found",
			req: dto.CreatePaymentRequest{
				BookingID: testBookingID,
				Amount:    "150.00",
				Method:    "cash",
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
		{
			name: "cancelled booking refuses payments",
			req: dto.CreatePaymentRequest{
				BookingID: testBookingID,
				Amount:    "150.00",
				Method:    "card",
			},
			setupMock: func() {
				booking := activeBooking()
				booking.Status = bookingModel.StatusCancelled

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "zero amount rejected",
			req: dto.CreatePaymentRequest{
				BookingID: testBookingID,
				Amount:    "0",
				Method:    "cash",
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(), nil)
			},
			wantErr:  true,
			wantKind: failure.KindValidation,
		},
		{
			name: "malformed amount rejected",
			req: dto.CreatePaymentRequest{
				BookingID: testBookingID,
				Amount:    "a lot",
				Method:    "cash",
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(), nil)
			},
			wantErr:  true,
			wantKind: failure.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

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

func TestPaymentService_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel)

	t.Run("partially paid booking", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeBooking(), nil)

		mockRepo.EXPECT().
			SumByBooking(gomock.Any(), testBookingID).
			Return(decimal.RequireFromString("100.00"), nil)

		res, err := svc.Reconcile(context.Background(), testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, "300.00", res.TotalAmount)
		assert.Equal(t, "100.00", res.TotalPaid)
		assert.Equal(t, "200.00", res.Balance)
		assert.False(t, res.Settled)
	})

	t.Run("settled booking", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeBooking(), nil)

		mockRepo.EXPECT().
			SumByBooking(gomock.Any(), testBookingID).
			Return(decimal.RequireFromString("300.00"), nil)

		res, err := svc.Reconcile(context.Background(), testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, "0.00", res.Balance)
		assert.True(t, res.Settled)
	})

	t.Run("overpaid booking stays settled", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeBooking(), nil)

		mockRepo.EXPECT().
			SumByBooking(gomock.Any(), testBookingID).
			Return(decimal.RequireFromString("350.00"), nil)

		res, err := svc.Reconcile(context.Background(), testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, "-50.00", res.Balance)
		assert.True(t, res.Settled)
	})

	t.Run("booking not found", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{}, nil)

		_, err := svc.Reconcile(context.Background(), testBookingID)

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("ledger error propagates", func(t *testing.T) {
		mockBookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeBooking(), nil)

		mockRepo.EXPECT().
			SumByBooking(gomock.Any(), testBookingID).
			Return(decimal.Zero, errors.New("database error"))

		_, err := svc.Reconcile(context.Background(), testBookingID)

		assert.Error(t, err)
	})
}
