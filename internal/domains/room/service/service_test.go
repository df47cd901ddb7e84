package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	s3Mocks "lodge/infras/s3/mocks"
	hotelMocks "lodge/internal/domains/hotel/mocks"
	roomMocks "lodge/internal/domains/room/mocks"
	"lodge/internal/domains/room/model"
	"lodge/internal/domains/room/model/dto"
	"lodge/internal/domains/room/service"
	roomTypeMocks "lodge/internal/domains/roomtype/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
)

const (
	testHotelID    = "4f8a4ab7-2f49-4dbd-b072-1f2345f3c001"
	testRoomTypeID = "4f8a4ab7-2f49-4dbd-b072-1f2345f3c002"
	testRoomID     = "4f8a4ab7-2f49-4dbd-b072-1f2345f3c003"
)

type roomEnv struct {
	repo     *roomMocks.MockRoom
	hotel    *hotelMocks.MockHotel
	roomType *roomTypeMocks.MockRoomType
	cache    *cacheMocks.MockRedisCache
	svc      service.Room
}

func newRoomEnv(t *testing.T, ctrl *gomock.Controller) *roomEnv {
	t.Helper()

	env := &roomEnv{
		repo:     roomMocks.NewMockRoom(ctrl),
		hotel:    hotelMocks.NewMockHotel(ctrl),
		roomType: roomTypeMocks.NewMockRoomType(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	env.svc = service.New(env.repo, env.hotel, env.roomType, cfg, env.cache, mocks.NewOtel(), s3Mocks.NewMockS3(ctrl))

	return env
}

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newRoomEnv(t, ctrl)
	env.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	req := dto.CreateRoomRequest{
		HotelID:    testHotelID,
		RoomTypeID: testRoomTypeID,
		RoomNumber: "101",
		Floor:      1,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func() {
				env.hotel.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				env.roomType.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				env.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "unknown hotel",
			setupMock: func() {
				env.hotel.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "unknown room type",
			setupMock: func() {
				env.hotel.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				env.roomType.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			setupMock: func() {
				env.hotel.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := env.svc.Create(ctx, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_SetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newRoomEnv(t, ctrl)
	env.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	env.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	dirtyRoom := func() model.Room {
		return model.Room{
			ID:             testRoomID,
			HotelID:        testHotelID,
			RoomTypeID:     testRoomTypeID,
			RoomNumber:     "101",
			PhysicalStatus: model.StatusDirty,
			Active:         true,
		}
	}

	tests := []struct {
		name      string
		status    string
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name:   "housekeeping marks a dirty room available",
			status: model.StatusAvailable,
			setupMock: func() {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(dirtyRoom(), nil)

				env.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusAvailable, fields[model.FieldPhysicalStatus])

						return nil
					})
			},
		},
		{
			name:   "setting the current status is a no-op",
			status: model.StatusDirty,
			setupMock: func() {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(dirtyRoom(), nil)
			},
		},
		{
			name:      "unknown status rejected",
			status:    "broken",
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindValidation,
		},
		{
			name:   "room not found",
			status: model.StatusMaintenance,
			setupMock: func() {
				env.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := env.svc.SetStatus(ctx, dto.SetStatusRequest{Status: tt.status}, testRoomID)

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
