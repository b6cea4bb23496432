package store

import (
	"errors"

	"rotomethiopia/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// wrapUnique maps Postgres unique-constraint violations to types.ErrDuplicate
// so callers can treat a lost concurrent write as a field error.
func wrapUnique(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return types.ErrDuplicate
	}

	return err
}
