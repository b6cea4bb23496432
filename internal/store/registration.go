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

const registrationTableName = "rotom.feeding_registrations"

var registrationColumns = utils.StructTagValues(types.FeedingRegistration{})

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) CreateRegistration(ctx context.Context, registration *types.FeedingRegistration) error {
	registration.ID = utils.NanoID()
	registration.CreatedAt = time.Now()

	query, args, err := psql().Insert(registrationTableName).SetMap(utils.StructToMap(registration)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert registration query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create feeding registration")
}

func (r *RegistrationRepository) Registration(ctx context.Context, registrationID string) (*types.FeedingRegistration, error) {
	query, args, err := psql().Select(registrationColumns...).From(registrationTableName).
		Where(sq.Eq{"id": registrationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate registration query: %w", err)
	}

	var registration = new(types.FeedingRegistration)
	err = pgxscan.Get(ctx, r.pool, registration, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrRegistrationNotFound
	}

	return registration, nil
}

func (r *RegistrationRepository) Registrations(ctx context.Context, limit, offset uint64) ([]*types.FeedingRegistration, error) {
	query, args, err := psql().Select(registrationColumns...).From(registrationTableName).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate registrations query: %w", err)
	}

	var registrations = make([]*types.FeedingRegistration, 0)
	if err := pgxscan.Select(ctx, r.pool, &registrations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch registrations: %w", err)
	}

	return registrations, nil
}

func (r *RegistrationRepository) CountRegistrations(ctx context.Context) (int, error) {
	query, args, err := psql().Select("count(*)").From(registrationTableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate registration count query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}
