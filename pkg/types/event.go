package types

import (
	"errors"
	"time"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrPreviousEventNotFound = errors.New("previous event not found")
)

type Event struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	EventDate   time.Time `db:"event_date"`
	ImageURL    string    `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
}

type PreviousEvent struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	EventDate   time.Time `db:"event_date"`
	ImageURL    string    `db:"image_url"`
	CreatedAt   time.Time `db:"created_at"`
}
