package store

import (
	"context"
	"fmt"
	"time"

	"rotomethiopia/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const subscriberTableName = "rotom.subscribers"

type SubscriberRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriberRepository(pool *pgxpool.Pool) *SubscriberRepository {
	return &SubscriberRepository{pool: pool}
}

// CreateSubscriber inserts the email; a duplicate comes back as
// types.ErrDuplicate so the racing subscribe gets a field error.
func (r *SubscriberRepository) CreateSubscriber(ctx context.Context, subscriber *types.Subscriber) error {
	subscriber.SubscribedAt = time.Now()

	query, args, err := psql().Insert(subscriberTableName).
		Columns("email", "subscribed_at").
		Values(subscriber.Email, subscriber.SubscribedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert subscriber query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return wrapUnique(err)
	}

	return nil
}

func (r *SubscriberRepository) SubscriberExists(ctx context.Context, email string) (bool, error) {
	query, args, err := psql().Select("count(*)").From(subscriberTableName).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate subscriber exists query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check subscriber: %w", err)
	}

	return count > 0, nil
}
