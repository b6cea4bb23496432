package types

import "time"

type Subscriber struct {
	Email        string    `db:"email"`
	SubscribedAt time.Time `db:"subscribed_at"`
}
