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

const eventTableName = "rotom.events"

var eventColumns = utils.StructTagValues(types.Event{})

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Event(ctx context.Context, eventID string) (*types.Event, error) {
	query, args, err := psql().Select(eventColumns...).From(eventTableName).
		Where(sq.Eq{"id": eventID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event query: %w", err)
	}

	var event = new(types.Event)
	err = pgxscan.Get(ctx, r.pool, event, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrEventNotFound
	}

	return event, nil
}

// UpcomingEvents lists events scheduled from now on, soonest first.
func (r *EventRepository) UpcomingEvents(ctx context.Context, limit, offset uint64) ([]*types.Event, error) {
	builder := psql().Select(eventColumns...).From(eventTableName).
		Where(sq.GtOrEq{"event_date": time.Now()}).
		OrderBy("event_date ASC").
		Offset(offset)

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate upcoming events query: %w", err)
	}

	var events = make([]*types.Event, 0)
	if err := pgxscan.Select(ctx, r.pool, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming events: %w", err)
	}

	return events, nil
}

func (r *EventRepository) CountUpcomingEvents(ctx context.Context) (int, error) {
	query, args, err := psql().Select("count(*)").From(eventTableName).
		Where(sq.GtOrEq{"event_date": time.Now()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate event count query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count upcoming events: %w", err)
	}

	return count, nil
}

func (r *EventRepository) CreateEvent(ctx context.Context, event *types.Event) error {
	event.ID = utils.NanoID()
	event.CreatedAt = time.Now()

	query, args, err := psql().Insert(eventTableName).SetMap(utils.StructToMap(event)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert event query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create event")
}

func (r *EventRepository) UpdateEvent(ctx context.Context, eventID string, event *types.Event) error {
	event.ID = eventID

	query, args, err := psql().Update(eventTableName).SetMap(utils.StructToMap(event)).
		Where(sq.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update event query for event %s: %w", eventID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update event")
}
