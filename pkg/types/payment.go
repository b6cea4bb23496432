package types

import (
	"errors"
	"time"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrDuplicate is returned by the store when an insert trips a unique
	// constraint (phone number, tx_ref, subscriber email). Handlers turn it
	// into a field-level error, never a 500.
	ErrDuplicate = errors.New("record already exists")
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Terminal reports whether the status permits no further transition.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

type Payment struct {
	ID          string        `db:"id"`
	Amount      float64       `db:"amount"`
	TxRef       string        `db:"tx_ref"`
	Status      PaymentStatus `db:"status"`
	Email       string        `db:"email"`
	FirstName   string        `db:"first_name"`
	LastName    string        `db:"last_name"`
	PhoneNumber string        `db:"phone_number"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}
