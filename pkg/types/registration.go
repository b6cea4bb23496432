package types

import (
	"errors"
	"time"
)

var ErrRegistrationNotFound = errors.New("feeding registration not found")

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

type FeedingLocation string

const (
	LocationAddisAbaba FeedingLocation = "addis_ababa"
	LocationBishoftu   FeedingLocation = "bishoftu"
	LocationAdama      FeedingLocation = "adama"
	LocationMojo       FeedingLocation = "mojo"
)

type FeedingRegistration struct {
	ID            string          `db:"id"`
	FullName      string          `db:"full_name"`
	Email         string          `db:"email"`
	Phone         string          `db:"phone"`
	MealType      MealType        `db:"meal_type"`
	Location      FeedingLocation `db:"location"`
	PreferredDate time.Time       `db:"preferred_date"`
	Notes         string          `db:"notes"`
	CreatedAt     time.Time       `db:"created_at"`
}
