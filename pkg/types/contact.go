package types

import (
	"errors"
	"time"
)

var ErrContactNotFound = errors.New("contact not found")

type Contact struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Location    string    `db:"location"`
	Email       string    `db:"email"`
	PhoneNumber *string   `db:"phone_number"`
	Message     string    `db:"message"`
	CreatedAt   time.Time `db:"created_at"`
}
