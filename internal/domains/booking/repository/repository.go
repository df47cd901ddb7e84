package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Booking, error)
	ActiveOverlapExists(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
	ActiveOverlapExistsTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
	OverlappingRoomIDs(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertTx inserts inside the caller's transaction and translates the
// schema-level exclusion backstop into a room conflict. The service checks
// overlaps first; the constraint only fires when two writers race past it.
func (repo *repositoryImpl) InsertTx(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking) error {
	err := repo.Repository.InsertTx(ctx, sqltx, booking)

	return MapConflict(err, booking.RoomID, booking.CheckInDate, booking.CheckOutDate)
}

// GetForUpdateTx locks the booking row for the rest of the transaction, so
// concurrent lifecycle transitions on the same booking serialize.
func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetForUpdateTx")
	defer scope.End()

	columns := strings.Join([]string{
		model.FieldID,
		model.FieldHotelID,
		model.FieldCustomerID,
		model.FieldRoomID,
		model.FieldRoomTypeID,
		model.FieldRatePerNight,
		model.FieldCheckInDate,
		model.FieldCheckOutDate,
		model.FieldGuestCount,
		model.FieldStatus,
		model.FieldTotalAmount,
		model.FieldSpecialRequests,
		model.FieldCancelReason,
		model.FieldArchived,
		constant.FieldCreatedBy,
		constant.FieldModifiedBy,
	}, ", ")

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", columns, model.TableName, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var booking model.Booking

	err := sqltx.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to lock booking row: %w", err)
	}

	return booking, nil
}

// ActiveOverlapExists is the read-connection variant of the overlap check,
// for advisory availability answers outside a booking transaction.
func (repo *repositoryImpl) ActiveOverlapExists(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ActiveOverlapExists")
	defer scope.End()

	query := overlapExistsQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exists bool

	err := repo.db.Read.GetContext(ctx, &exists, query, roomID, checkOut, checkIn, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	return exists, nil
}

// ActiveOverlapExistsTx reports whether any booked or checked_in booking on
// the room intersects the half-open range [checkIn, checkOut). Runs on the
// caller's transaction, after the room row is locked. excludeID skips the
// booking being re-dated.
func (repo *repositoryImpl) ActiveOverlapExistsTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ActiveOverlapExistsTx")
	defer scope.End()

	query := overlapExistsQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exists bool

	err := sqltx.GetContext(ctx, &exists, query, roomID, checkOut, checkIn, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}

	return exists, nil
}

// OverlappingRoomIDs returns the rooms of a branch that hold at least one
// active booking intersecting the range. Read-side counterpart of the
// overlap check, used by availability listings.
func (repo *repositoryImpl) OverlappingRoomIDs(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.OverlappingRoomIDs")
	defer scope.End()

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s
		WHERE %s = $1
		AND %s IN ('%s', '%s')
		AND %s < $2
		AND %s > $3`,
		model.FieldRoomID, model.TableName,
		model.FieldHotelID,
		model.FieldStatus, model.StatusBooked, model.StatusCheckedIn,
		model.FieldCheckInDate,
		model.FieldCheckOutDate,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	roomIDs := []string{}

	err := repo.db.Read.SelectContext(ctx, &roomIDs, query, hotelID, checkOut, checkIn)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list overlapping rooms: %w", err)
	}

	return roomIDs, nil
}

// overlapExistsQuery checks the half-open intersection [a,b) x [c,d):
// a < d AND c < b. Only booked and checked_in rows consume availability.
func overlapExistsQuery() string {
	return fmt.Sprintf(`SELECT EXISTS(
		SELECT 1 FROM %s
		WHERE %s = $1
		AND %s IN ('%s', '%s')
		AND %s < $2
		AND %s > $3
		AND %s <> $4
	)`,
		model.TableName,
		model.FieldRoomID,
		model.FieldStatus, model.StatusBooked, model.StatusCheckedIn,
		model.FieldCheckInDate,
		model.FieldCheckOutDate,
		model.FieldID,
	)
}

// MapConflict turns pq unique/exclusion violations into the conflict the
// client can act on. Any other error passes through untouched.
func MapConflict(err error, roomID string, checkIn, checkOut time.Time) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case constant.PqErrorCodeUniqueViolation, constant.PqErrorCodeExclusionViolation:
			return failure.RoomConflict(roomID, checkIn, checkOut) //nolint:wrapcheck
		}
	}

	return err
}
