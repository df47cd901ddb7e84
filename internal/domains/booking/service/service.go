package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	customerService "lodge/internal/domains/customer/service"
	paymentRepo "lodge/internal/domains/payment/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	roomTypeModel "lodge/internal/domains/roomtype/model"
	roomTypeRepo "lodge/internal/domains/roomtype/repository"
	stayModel "lodge/internal/domains/stay/model"
	stayRepo "lodge/internal/domains/stay/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

const (
	cacheGetBooking     = "booking:get"
	cacheGetAllBooking  = "booking:gets"
	cacheCountBooking   = "booking:count"
	cacheSummaryBooking = "booking:summary"

	defaultQueryTimeout = 5 * time.Second
)

// Booking owns the reservation ledger and is the only writer of booking
// statuses and of room physical statuses driven by the lifecycle.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Summary(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSummaryResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
	CheckIn(ctx context.Context, req dto.CheckInRequest) error
	CheckOut(ctx context.Context, req dto.CheckOutRequest) error
	IsRoomFree(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	ListFreeRooms(ctx context.Context, query dto.AvailabilityQuery) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	summaryRepo  repository.Summary
	roomRepo     roomRepo.Room
	roomTypeRepo roomTypeRepo.RoomType
	stayRepo     stayRepo.Stay
	paymentRepo  paymentRepo.Payment
	customerSvc  customerService.Customer
	db           *postgres.Connection
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	summaryRepo repository.Summary,
	roomRepo roomRepo.Room,
	roomTypeRepo roomTypeRepo.RoomType,
	stayRepo stayRepo.Stay,
	paymentRepo paymentRepo.Payment,
	customerSvc customerService.Customer,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		summaryRepo:  summaryRepo,
		roomRepo:     roomRepo,
		roomTypeRepo: roomTypeRepo,
		stayRepo:     stayRepo,
		paymentRepo:  paymentRepo,
		customerSvc:  customerSvc,
		db:           db,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// dbCtx bounds a storage operation with the configured query timeout.
func (s *serviceImpl) dbCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(s.cfg.DB.Postgres.QueryTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}

	return context.WithTimeout(ctx, timeout)
}

// asTransient maps context deadline hits to a retryable failure. Nothing
// from a timed-out attempt may be reused; callers retry from the top.
func asTransient(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return failure.Transient(err) //nolint:wrapcheck
	}

	return err
}

// Create opens a reservation. The room row is locked for the duration of
// the transaction, so the overlap re-check and the insert are atomic with
// respect to concurrent writers on the same room.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	if !s.cfg.App.Policy.AllowPastCheckIn {
		today := timezone.Now().Truncate(24 * time.Hour)
		if checkIn.Before(today) {
			return res, failure.Validation(model.FieldCheckInDate, "check-in date is in the past") // nolint:wrapcheck
		}
	}

	customerID, err := s.resolveCustomer(ctx, req)
	if err != nil {
		return res, err
	}

	ctx, cancel := s.dbCtx(ctx)
	defer cancel()

	var booking model.Booking

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, txErr := s.roomRepo.GetForUpdateTx(ctx, tx, req.RoomID)
		if txErr != nil {
			return txErr
		}

		if room.ID == constant.Empty {
			return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
		}

		if room.HotelID != req.HotelID {
			return failure.Validation(model.FieldRoomID, "room does not belong to this hotel") // nolint:wrapcheck
		}

		if !room.Active {
			return failure.Validation(model.FieldRoomID, "room is not in service") // nolint:wrapcheck
		}

		if room.PhysicalStatus == roomModel.StatusMaintenance {
			return failure.Conflict("room is under maintenance") // nolint:wrapcheck
		}

		roomType, txErr := s.roomTypeRepo.Get(ctx, shared.FilterByID(room.RoomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
		if txErr != nil {
			return txErr
		}

		if roomType.ID == constant.Empty {
			return failure.BadRequestFromString("room type does not exist") // nolint:wrapcheck
		}

		if req.GuestCount > roomType.Capacity {
			return failure.Validation(model.FieldGuestCount, fmt.Sprintf("room sleeps at most %d guests", roomType.Capacity)) // nolint:wrapcheck
		}

		overlap, txErr := s.repo.ActiveOverlapExistsTx(ctx, tx, req.RoomID, checkIn, checkOut, constant.Empty)
		if txErr != nil {
			return txErr
		}

		if overlap {
			return failure.RoomConflict(req.RoomID, checkIn, checkOut) // nolint:wrapcheck
		}

		booking = req.ToModel(user, customerID, roomType.ID, roomType.BaseRate, checkIn, checkOut)

		s.warnOnTotalMismatch(req.ExpectedTotal, booking.TotalAmount)

		return s.repo.InsertTx(ctx, tx, booking)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, asTransient(err)
	}

	s.invalidateBookingCaches(ctx, booking.ID)

	res.FromModel(booking)

	return res, nil
}

// resolveCustomer returns the guest profile for the booking: an existing
// profile by ID, or find-or-create from the inline description.
func (s *serviceImpl) resolveCustomer(ctx context.Context, req dto.CreateBookingRequest) (string, error) {
	if req.CustomerID != constant.Empty {
		customer, err := s.customerSvc.Get(ctx, req.CustomerID)
		if err != nil {
			return constant.Empty, err
		}

		return customer.ID, nil
	}

	if req.Customer == nil {
		return constant.Empty, failure.Validation(model.FieldCustomerID, "customer_id or customer is required") // nolint:wrapcheck
	}

	customer, err := s.customerSvc.FindOrCreate(ctx, *req.Customer)
	if err != nil {
		return constant.Empty, err
	}

	return customer.ID, nil
}

// warnOnTotalMismatch logs when the client's advisory total disagrees with
// the server computation. The server total always wins.
func (s *serviceImpl) warnOnTotalMismatch(expected string, computed decimal.Decimal) {
	if expected == constant.Empty {
		return
	}

	expectedDec, err := decimal.NewFromString(expected)
	if err != nil || !expectedDec.Equal(computed) {
		log.Warn().
			Str("expected", expected).
			Str("computed", computed.StringFixed(2)).
			Msg("client-supplied booking total differs from server computation")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// Summary serves the front-desk ledger: bookings joined with guest, room
// and room type.
func (s *serviceImpl) Summary(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheSummaryBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking summary")

		return res, nil
	}

	total, err := s.summaryRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count booking summary")

		return res, fmt.Errorf("failed to count booking summary: %w", err)
	}

	rows, err := s.summaryRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking summary")

		return res, fmt.Errorf("failed to get booking summary: %w", err)
	}

	res.FromModels(rows, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update amends a booking before check-in, or cancels it. Cancellation is
// idempotent; date changes rerun the full overlap check under the room
// lock with the original rate snapshot.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if req.Status == model.StatusCancelled {
		if req.ChangesDates() || req.GuestCount != 0 || req.SpecialRequests != constant.Empty {
			return failure.Validation(model.FieldStatus, "cancellation cannot be combined with other changes") // nolint:wrapcheck
		}

		return s.cancel(ctx, id, req.CancelReason)
	}

	return s.amend(ctx, req, id)
}

// cancel releases the room for the whole reserved range. Cancelling an
// already-cancelled booking is a no-op so client retries stay safe.
func (s *serviceImpl) cancel(ctx context.Context, id, reason string) (err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ctx, cancel := s.dbCtx(ctx)
	defer cancel()

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, txErr := s.repo.GetForUpdateTx(ctx, tx, id)
		if txErr != nil {
			return txErr
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if booking.Status == model.StatusCancelled {
			return nil
		}

		if !model.CanTransition(booking.Status, model.StatusCancelled) {
			return failure.InvalidTransition(booking.Status, model.StatusCancelled) // nolint:wrapcheck
		}

		fields := map[string]any{
			model.FieldStatus:        model.StatusCancelled,
			model.FieldCancelReason:  reason,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		return s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return asTransient(err)
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

// amend changes dates, guest count or requests on a booking that has not
// been checked in yet.
func (s *serviceImpl) amend(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ctx, cancel := s.dbCtx(ctx)
	defer cancel()

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, txErr := s.repo.GetForUpdateTx(ctx, tx, id)
		if txErr != nil {
			return txErr
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if booking.Status != model.StatusBooked {
			return failure.Conflict(fmt.Sprintf("cannot amend a %s booking", booking.Status)) // nolint:wrapcheck
		}

		fields := map[string]any{
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if req.GuestCount != 0 {
			if booking.RoomTypeID != nil {
				roomType, rtErr := s.roomTypeRepo.Get(ctx, shared.FilterByID(*booking.RoomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
				if rtErr != nil {
					return rtErr
				}

				if roomType.ID != constant.Empty && req.GuestCount > roomType.Capacity {
					return failure.Validation(model.FieldGuestCount, fmt.Sprintf("room sleeps at most %d guests", roomType.Capacity)) // nolint:wrapcheck
				}
			}

			fields[model.FieldGuestCount] = req.GuestCount
		}

		if req.SpecialRequests != constant.Empty {
			fields[model.FieldSpecialRequests] = req.SpecialRequests
		}

		if req.ChangesDates() {
			checkIn, checkOut := booking.CheckInDate, booking.CheckOutDate

			if req.CheckInDate != constant.Empty {
				checkIn, txErr = time.Parse(constant.DateOnlyFormat, req.CheckInDate)
				if txErr != nil {
					return failure.Validation(model.FieldCheckInDate, "invalid date, expected YYYY-MM-DD") // nolint:wrapcheck
				}
			}

			if req.CheckOutDate != constant.Empty {
				checkOut, txErr = time.Parse(constant.DateOnlyFormat, req.CheckOutDate)
				if txErr != nil {
					return failure.Validation(model.FieldCheckOutDate, "invalid date, expected YYYY-MM-DD") // nolint:wrapcheck
				}
			}

			if !checkOut.After(checkIn) {
				return failure.Validation(model.FieldCheckOutDate, "check-out must be after check-in") // nolint:wrapcheck
			}

			if req.CheckInDate != constant.Empty && !s.cfg.App.Policy.AllowPastCheckIn {
				today := timezone.Now().Truncate(24 * time.Hour)
				if checkIn.Before(today) {
					return failure.Validation(model.FieldCheckInDate, "check-in date is in the past") // nolint:wrapcheck
				}
			}

			// Lock the room row so a concurrent create on the same room
			// cannot slip between the overlap check and the update.
			room, roomErr := s.roomRepo.GetForUpdateTx(ctx, tx, booking.RoomID)
			if roomErr != nil {
				return roomErr
			}

			if room.ID == constant.Empty {
				return failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
			}

			overlap, ovErr := s.repo.ActiveOverlapExistsTx(ctx, tx, booking.RoomID, checkIn, checkOut, booking.ID)
			if ovErr != nil {
				return ovErr
			}

			if overlap {
				return failure.RoomConflict(booking.RoomID, checkIn, checkOut) // nolint:wrapcheck
			}

			fields[model.FieldCheckInDate] = checkIn
			fields[model.FieldCheckOutDate] = checkOut
			fields[model.FieldTotalAmount] = model.ComputeTotal(booking.RatePerNight, checkIn, checkOut)

			txErr = s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))

			return repository.MapConflict(txErr, booking.RoomID, checkIn, checkOut)
		}

		return s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return asTransient(err)
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

// CheckIn transitions booked -> checked_in, opens a stay record and marks
// the room occupied, all in one transaction.
func (s *serviceImpl) CheckIn(ctx context.Context, req dto.CheckInRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ctx, cancel := s.dbCtx(ctx)
	defer cancel()

	var roomID string

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, txErr := s.repo.GetForUpdateTx(ctx, tx, req.BookingID)
		if txErr != nil {
			return txErr
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if !model.CanTransition(booking.Status, model.StatusCheckedIn) {
			return failure.InvalidTransition(booking.Status, model.StatusCheckedIn) // nolint:wrapcheck
		}

		// A guest may only be checked in during the reserved range.
		today := timezone.Now().Truncate(24 * time.Hour)
		if today.Before(booking.CheckInDate) {
			return failure.Conflict(fmt.Sprintf("check-in opens on %s", booking.CheckInDate.Format(constant.DateOnlyFormat))) // nolint:wrapcheck
		}

		if !today.Before(booking.CheckOutDate) {
			return failure.Conflict(fmt.Sprintf("stay ended on %s", booking.CheckOutDate.Format(constant.DateOnlyFormat))) // nolint:wrapcheck
		}

		if s.cfg.App.Policy.RequirePaymentBeforeCheckIn {
			paid, payErr := s.paymentRepo.SumByBooking(ctx, booking.ID)
			if payErr != nil {
				return payErr
			}

			if paid.LessThan(booking.TotalAmount) {
				return failure.Conflict("booking is not fully paid") // nolint:wrapcheck
			}
		}

		roomID = booking.RoomID

		fields := map[string]any{
			model.FieldStatus:        model.StatusCheckedIn,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if txErr = s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); txErr != nil {
			return txErr
		}

		stay := stayModel.Stay{
			ID:                uuid.NewString(),
			BookingID:         booking.ID,
			RoomID:            booking.RoomID,
			StaffID:           user,
			CheckedInAt:       timezone.Now(),
			IncidentalCharges: decimal.Zero,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}

		if txErr = s.stayRepo.InsertTx(ctx, tx, stay); txErr != nil {
			return txErr
		}

		roomFields := map[string]any{
			roomModel.FieldPhysicalStatus: roomModel.StatusOccupied,
			constant.FieldModifiedAt:      timezone.Now(),
			constant.FieldModifiedBy:      user,
		}

		return s.roomRepo.UpdateTx(ctx, tx, roomFields, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check in booking")

		return asTransient(err)
	}

	s.invalidateBookingCaches(ctx, req.BookingID)
	s.invalidateRoomCaches(ctx, roomID)

	return nil
}

// CheckOut transitions checked_in -> checked_out, closes the stay with any
// incidental charges and marks the room dirty for housekeeping.
func (s *serviceImpl) CheckOut(ctx context.Context, req dto.CheckOutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	charges := decimal.Zero

	if req.IncidentalCharges != constant.Empty {
		charges, err = decimal.NewFromString(req.IncidentalCharges)
		if err != nil {
			return failure.Validation(stayModel.FieldIncidentalCharges, "invalid amount") // nolint:wrapcheck
		}

		if charges.IsNegative() {
			return failure.Validation(stayModel.FieldIncidentalCharges, "charges cannot be negative") // nolint:wrapcheck
		}
	}

	ctx, cancel := s.dbCtx(ctx)
	defer cancel()

	var roomID string

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, txErr := s.repo.GetForUpdateTx(ctx, tx, req.BookingID)
		if txErr != nil {
			return txErr
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if !model.CanTransition(booking.Status, model.StatusCheckedOut) {
			return failure.InvalidTransition(booking.Status, model.StatusCheckedOut) // nolint:wrapcheck
		}

		roomID = booking.RoomID

		fields := map[string]any{
			model.FieldStatus:        model.StatusCheckedOut,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if txErr = s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); txErr != nil {
			return txErr
		}

		stayFields := map[string]any{
			stayModel.FieldCheckedOutAt:      timezone.Now(),
			stayModel.FieldIncidentalCharges: charges,
			constant.FieldModifiedAt:         timezone.Now(),
			constant.FieldModifiedBy:         user,
		}

		if req.Notes != constant.Empty {
			stayFields[stayModel.FieldNotes] = req.Notes
		}

		if txErr = s.stayRepo.UpdateTx(ctx, tx, stayFields, openStayFilter(booking.ID)); txErr != nil {
			return txErr
		}

		roomFields := map[string]any{
			roomModel.FieldPhysicalStatus: roomModel.StatusDirty,
			constant.FieldModifiedAt:      timezone.Now(),
			constant.FieldModifiedBy:      user,
		}

		return s.roomRepo.UpdateTx(ctx, tx, roomFields, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check out booking")

		return asTransient(err)
	}

	s.invalidateBookingCaches(ctx, req.BookingID)
	s.invalidateRoomCaches(ctx, roomID)

	return nil
}

// openStayFilter matches the stay that has not been closed yet.
func openStayFilter(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    stayModel.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    stayModel.TableName,
			},
			gDto.Filter{
				Field:    stayModel.FieldCheckedOutAt,
				Operator: gDto.FilterIsNull,
				Table:    stayModel.TableName,
			},
		},
	}
}

// Delete removes a booking that never turned into a stay, or archives a
// completed one. Active stays refuse deletion.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	switch booking.Status {
	case model.StatusCheckedIn:
		return failure.Conflict("cannot delete a booking with a guest in the room") // nolint:wrapcheck
	case model.StatusCheckedOut:
		// Completed stays are financial history: archive instead of delete.
		fields := map[string]any{
			model.FieldArchived:      true,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err = s.repo.Update(ctx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to archive booking")

			return fmt.Errorf("failed to archive booking: %w", err)
		}
	default:
		if err = s.repo.Delete(ctx, filter); err != nil {
			log.Error().Err(err).Msg("failed to delete booking")

			return fmt.Errorf("failed to delete booking: %w", err)
		}
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

// IsRoomFree answers whether a room has no active booking intersecting the
// range and is not under maintenance. Advisory only: the booking
// transaction re-checks under lock.
func (s *serviceImpl) IsRoomFree(ctx context.Context, roomID string, checkIn, checkOut time.Time) (free bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRoomFree")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return false, asTransient(err)
	}

	if room.ID == constant.Empty {
		return false, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if room.PhysicalStatus == roomModel.StatusMaintenance {
		return false, nil
	}

	overlap, err := s.repo.ActiveOverlapExists(ctx, roomID, checkIn, checkOut, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return false, asTransient(err)
	}

	return !overlap, nil
}

// ListFreeRooms lists the bookable rooms of a branch for a range. Results
// are never cached; a stale availability answer is worse than a slow one.
func (s *serviceImpl) ListFreeRooms(ctx context.Context, query dto.AvailabilityQuery) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListFreeRooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := query.ParseDates()
	if err != nil {
		return res, err
	}

	busyIDs, err := s.repo.OverlappingRoomIDs(ctx, query.HotelID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to list overlapping rooms")

		return res, asTransient(err)
	}

	busy := make(map[string]struct{}, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = struct{}{}
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, roomFilter(query))
	if err != nil {
		log.Error().Err(err).Msg("failed to list rooms")

		return res, asTransient(err)
	}

	res.HotelID = query.HotelID
	res.CheckInDate = query.CheckInDate
	res.CheckOutDate = query.CheckOutDate
	res.Rooms = []dto.FreeRoom{}

	for _, room := range rooms {
		if _, taken := busy[room.ID]; taken {
			continue
		}

		if !roomModel.Bookable(room.PhysicalStatus, query.IncludeDirty) {
			continue
		}

		res.Rooms = append(res.Rooms, dto.FreeRoom{
			RoomID:         room.ID,
			RoomNumber:     room.RoomNumber,
			RoomTypeID:     room.RoomTypeID,
			PhysicalStatus: room.PhysicalStatus,
		})
	}

	res.TotalData = len(res.Rooms)

	return res, nil
}

func roomFilter(query dto.AvailabilityQuery) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    roomModel.FieldHotelID,
			Operator: gDto.FilterOperatorEq,
			Value:    query.HotelID,
			Table:    roomModel.TableName,
		},
		gDto.Filter{
			Field:    roomModel.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    roomModel.TableName,
		},
	}

	if query.RoomTypeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    roomModel.FieldRoomTypeID,
			Operator: gDto.FilterOperatorEq,
			Value:    query.RoomTypeID,
			Table:    roomModel.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheSummaryBooking)
	}()
}

func (s *serviceImpl) invalidateRoomCaches(ctx context.Context, roomID string) {
	if roomID == constant.Empty {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey("room:get", roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, "room:gets")
	}()
}
