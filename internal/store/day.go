package store

import (
	"context"
	"fmt"

	"rotomethiopia/internal/utils"
	"rotomethiopia/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dayTableName = "rotom.days"

var dayColumns = utils.StructTagValues(types.Day{})

type DayRepository struct {
	pool *pgxpool.Pool
}

func NewDayRepository(pool *pgxpool.Pool) *DayRepository {
	return &DayRepository{pool: pool}
}

func (r *DayRepository) AllDays(ctx context.Context) ([]*types.Day, error) {
	query, args, err := psql().Select(dayColumns...).From(dayTableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate days query: %w", err)
	}

	var days = make([]*types.Day, 0)
	if err := pgxscan.Select(ctx, r.pool, &days, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch days: %w", err)
	}

	return days, nil
}

func (r *DayRepository) UpsertDay(ctx context.Context, day *types.Day) error {
	query := `
		INSERT INTO rotom.days (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name`

	_, err := r.pool.Exec(ctx, query, day.ID, day.Name)
	return utils.ErrorWrapOrNil(err, "failed to upsert day")
}
