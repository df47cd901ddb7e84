package model

import (
	"time"

	"github.com/shopspring/decimal"

	"lodge/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldMethod    = "method"
	FieldReference = "reference"
	FieldPaidAt    = "paid_at"
	FieldNotes     = "notes"
)

const (
	MethodCash     = "cash"
	MethodCard     = "card"
	MethodTransfer = "transfer"
)

// Payment is one entry in a booking's payment ledger. A booking may be
// settled across several payments (deposit, balance, incidentals).
type Payment struct {
	ID        string          `db:"id"`
	BookingID string          `db:"booking_id"`
	Amount    decimal.Decimal `db:"amount"`
	Method    string          `db:"method"`
	Reference string          `db:"reference"`
	PaidAt    time.Time       `db:"paid_at"`
	Notes     string          `db:"notes"`
	model.Metadata
}
