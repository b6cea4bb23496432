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

const (
	volunteerTableName         = "rotom.volunteer_profiles"
	volunteerDayTableName      = "rotom.volunteer_days"
	volunteerInterestTableName = "rotom.volunteer_interests"
)

var volunteerColumns = utils.StructTagValues(types.VolunteerProfile{})

type VolunteerRepository struct {
	pool *pgxpool.Pool
}

func NewVolunteerRepository(pool *pgxpool.Pool) *VolunteerRepository {
	return &VolunteerRepository{pool: pool}
}

// CreateVolunteer inserts the profile plus its day and interest assignments
// in one transaction. A duplicate phone number surfaces as types.ErrDuplicate.
func (r *VolunteerRepository) CreateVolunteer(ctx context.Context, volunteer *types.VolunteerProfile, dayIDs, interestIDs []string) error {
	volunteer.ID = utils.NanoID()
	volunteer.CreatedAt = time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query, args, err := psql().Insert(volunteerTableName).SetMap(utils.StructToMap(volunteer)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert volunteer query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return wrapUnique(err)
	}

	if len(dayIDs) > 0 {
		builder := psql().Insert(volunteerDayTableName).Columns("volunteer_id", "day_id")
		for _, dayID := range dayIDs {
			builder = builder.Values(volunteer.ID, dayID)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate insert volunteer days query: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert volunteer days: %w", err)
		}
	}

	if len(interestIDs) > 0 {
		builder := psql().Insert(volunteerInterestTableName).Columns("volunteer_id", "interest_id")
		for _, interestID := range interestIDs {
			builder = builder.Values(volunteer.ID, interestID)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate insert volunteer interests query: %w", err)
		}

		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert volunteer interests: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit volunteer transaction: %w", err)
	}

	return nil
}

func (r *VolunteerRepository) Volunteer(ctx context.Context, volunteerID string) (*types.VolunteerProfile, error) {
	query, args, err := psql().Select(volunteerColumns...).From(volunteerTableName).
		Where(sq.Eq{"id": volunteerID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteer query: %w", err)
	}

	var volunteer = new(types.VolunteerProfile)
	err = pgxscan.Get(ctx, r.pool, volunteer, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrVolunteerNotFound
	}

	if volunteer.Days, err = r.volunteerDays(ctx, volunteerID); err != nil {
		return nil, err
	}

	if volunteer.Interests, err = r.volunteerInterests(ctx, volunteerID); err != nil {
		return nil, err
	}

	return volunteer, nil
}

func (r *VolunteerRepository) Volunteers(ctx context.Context, limit, offset uint64) ([]*types.VolunteerProfile, error) {
	query, args, err := psql().Select(volunteerColumns...).From(volunteerTableName).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteers query: %w", err)
	}

	var volunteers = make([]*types.VolunteerProfile, 0)
	if err := pgxscan.Select(ctx, r.pool, &volunteers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}

	return volunteers, nil
}

func (r *VolunteerRepository) CountVolunteers(ctx context.Context) (int, error) {
	query, args, err := psql().Select("count(*)").From(volunteerTableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate volunteer count query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count volunteers: %w", err)
	}

	return count, nil
}

func (r *VolunteerRepository) volunteerDays(ctx context.Context, volunteerID string) ([]*types.Day, error) {
	query, args, err := psql().Select("d.id", "d.name").
		From(dayTableName + " d").
		Join(volunteerDayTableName + " vd ON vd.day_id = d.id").
		Where(sq.Eq{"vd.volunteer_id": volunteerID}).
		OrderBy("d.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteer days query: %w", err)
	}

	var days = make([]*types.Day, 0)
	if err := pgxscan.Select(ctx, r.pool, &days, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer days: %w", err)
	}

	return days, nil
}

func (r *VolunteerRepository) volunteerInterests(ctx context.Context, volunteerID string) ([]*types.InterestCategory, error) {
	query, args, err := psql().Select("i.id", "i.name").
		From(interestTableName + " i").
		Join(volunteerInterestTableName + " vi ON vi.interest_id = i.id").
		Where(sq.Eq{"vi.volunteer_id": volunteerID}).
		OrderBy("i.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate volunteer interests query: %w", err)
	}

	var interests = make([]*types.InterestCategory, 0)
	if err := pgxscan.Select(ctx, r.pool, &interests, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer interests: %w", err)
	}

	return interests, nil
}
