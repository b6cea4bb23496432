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

const contactTableName = "rotom.contacts"

var contactColumns = utils.StructTagValues(types.Contact{})

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) CreateContact(ctx context.Context, contact *types.Contact) error {
	contact.ID = utils.NanoID()
	contact.CreatedAt = time.Now()

	query, args, err := psql().Insert(contactTableName).SetMap(utils.StructToMap(contact)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert contact query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create contact")
}

func (r *ContactRepository) Contact(ctx context.Context, contactID string) (*types.Contact, error) {
	query, args, err := psql().Select(contactColumns...).From(contactTableName).
		Where(sq.Eq{"id": contactID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact query: %w", err)
	}

	var contact = new(types.Contact)
	err = pgxscan.Get(ctx, r.pool, contact, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrContactNotFound
	}

	return contact, nil
}

func (r *ContactRepository) Contacts(ctx context.Context, limit, offset uint64) ([]*types.Contact, error) {
	query, args, err := psql().Select(contactColumns...).From(contactTableName).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contacts query: %w", err)
	}

	var contacts = make([]*types.Contact, 0)
	if err := pgxscan.Select(ctx, r.pool, &contacts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) CountContacts(ctx context.Context) (int, error) {
	query, args, err := psql().Select("count(*)").From(contactTableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate contact count query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	return count, nil
}
