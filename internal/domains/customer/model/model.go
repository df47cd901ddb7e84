package model

import "lodge/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID       = "id"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldIDNumber = "id_number"
	FieldNotes    = "notes"
)

// Customer is a guest profile. Profiles are matched by email or phone at
// booking intake so repeat guests keep a single record.
type Customer struct {
	ID       string `db:"id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	IDNumber string `db:"id_number"`
	Notes    string `db:"notes"`
	model.Metadata
}
