package repository

//go:generate go run go.uber.org/mock/mockgen -source=./summary.go -destination=../mocks/summary_mock.go -package=mocks

import (
	"context"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	gDto "lodge/shared/dto"
	gRepo "lodge/shared/repository"
)

// Summary reads the booking ledger joined with customers, rooms and room
// types. Separate repository so the join never leaks into writes.
type Summary interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SummaryRow, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type summaryImpl struct {
	gRepo.Repository[model.SummaryRow]
	db   *postgres.Connection
	otel otel.Otel
}

func NewSummary(db *postgres.Connection, otel otel.Otel) Summary {
	return &summaryImpl{
		Repository: gRepo.NewRepository[model.SummaryRow](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
