package store

import (
	"context"
	"fmt"

	"rotomethiopia/internal/utils"
	"rotomethiopia/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const interestTableName = "rotom.interest_categories"

var interestColumns = utils.StructTagValues(types.InterestCategory{})

type InterestRepository struct {
	pool *pgxpool.Pool
}

func NewInterestRepository(pool *pgxpool.Pool) *InterestRepository {
	return &InterestRepository{pool: pool}
}

func (r *InterestRepository) AllInterests(ctx context.Context) ([]*types.InterestCategory, error) {
	query, args, err := psql().Select(interestColumns...).From(interestTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate interests query: %w", err)
	}

	var interests = make([]*types.InterestCategory, 0)
	if err := pgxscan.Select(ctx, r.pool, &interests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch interests: %w", err)
	}

	return interests, nil
}

func (r *InterestRepository) UpsertInterest(ctx context.Context, interest *types.InterestCategory) error {
	query := `
		INSERT INTO rotom.interest_categories (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name`

	_, err := r.pool.Exec(ctx, query, interest.ID, interest.Name)
	return utils.ErrorWrapOrNil(err, "failed to upsert interest category")
}
