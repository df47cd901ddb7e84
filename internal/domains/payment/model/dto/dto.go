package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lodge/internal/domains/payment/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type CreatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Amount    string `json:"amount"     validate:"required"`
	Method    string `json:"method"     validate:"required,oneof=cash card transfer"`
	Reference string `json:"reference"  validate:"omitempty,max=100"`
	Notes     string `json:"notes"      validate:"omitempty,max=500"`
}

func (c *CreatePaymentRequest) ToModel(user string) (model.Payment, error) {
	amount, err := decimal.NewFromString(c.Amount)
	if err != nil {
		return model.Payment{}, err //nolint:wrapcheck
	}

	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		Amount:    amount,
		Method:    c.Method,
		Reference: c.Reference,
		PaidAt:    timezone.Now(),
		Notes:     c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type PaymentResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
	PaidAt    string `json:"paid_at"`
	Notes     string `json:"notes"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Amount = model.Amount.StringFixed(2)
	r.Method = model.Method
	r.Reference = model.Reference
	r.PaidAt = timezone.Format(model.PaidAt, constant.DateFormat)
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

// ReconciliationResponse settles a booking's ledger: the amount owed
// against the amount received.
type ReconciliationResponse struct {
	BookingID   string `json:"booking_id"`
	TotalAmount string `json:"total_amount"`
	TotalPaid   string `json:"total_paid"`
	Balance     string `json:"balance"`
	Settled     bool   `json:"settled"`
}
