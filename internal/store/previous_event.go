package store

import (
	"context"
	"fmt"
	"time"

	"rotomethiopia/internal/utils"
	"rotomethiopia/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const previousEventTableName = "rotom.previous_events"

var previousEventColumns = utils.StructTagValues(types.PreviousEvent{})

type PreviousEventRepository struct {
	pool *pgxpool.Pool
}

func NewPreviousEventRepository(pool *pgxpool.Pool) *PreviousEventRepository {
	return &PreviousEventRepository{pool: pool}
}

func (r *PreviousEventRepository) PreviousEvent(ctx context.Context, eventID string) (*types.PreviousEvent, error) {
	query, args, err := psql().Select(previousEventColumns...).From(previousEventTableName).
		Where(sq.Eq{"id": eventID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate previous event query: %w", err)
	}

	var event = new(types.PreviousEvent)
	err = pgxscan.Get(ctx, r.pool, event, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrPreviousEventNotFound
	}

	return event, nil
}

// PreviousEvents lists past event photos, most recent event date first.
func (r *PreviousEventRepository) PreviousEvents(ctx context.Context, limit, offset uint64) ([]*types.PreviousEvent, error) {
	builder := psql().Select(previousEventColumns...).From(previousEventTableName).
		OrderBy("event_date DESC").
		Offset(offset)

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate previous events query: %w", err)
	}

	var events = make([]*types.PreviousEvent, 0)
	if err := pgxscan.Select(ctx, r.pool, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch previous events: %w", err)
	}

	return events, nil
}

func (r *PreviousEventRepository) CountPreviousEvents(ctx context.Context) (int, error) {
	query, args, err := psql().Select("count(*)").From(previousEventTableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate previous event count query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count previous events: %w", err)
	}

	return count, nil
}

func (r *PreviousEventRepository) CreatePreviousEvent(ctx context.Context, event *types.PreviousEvent) error {
	event.ID = utils.NanoID()
	event.CreatedAt = time.Now()

	query, args, err := psql().Insert(previousEventTableName).SetMap(utils.StructToMap(event)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert previous event query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create previous event")
}

func (r *PreviousEventRepository) UpdatePreviousEvent(ctx context.Context, eventID string, event *types.PreviousEvent) error {
	event.ID = eventID

	query, args, err := psql().Update(previousEventTableName).SetMap(utils.StructToMap(event)).
		Where(sq.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update previous event query for event %s: %w", eventID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update previous event")
}
