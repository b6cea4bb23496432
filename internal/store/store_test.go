package store

import (
	"errors"
	"testing"

	"rotomethiopia/pkg/types"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestWrapUnique(t *testing.T) {
	if wrapUnique(nil) != nil {
		t.Error("nil must stay nil")
	}

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "volunteer_profiles_phone_number_key"}
	if got := wrapUnique(unique); !errors.Is(got, types.ErrDuplicate) {
		t.Errorf("unique violation mapped to %v, want ErrDuplicate", got)
	}

	other := &pgconn.PgError{Code: "23503"}
	if got := wrapUnique(other); errors.Is(got, types.ErrDuplicate) {
		t.Error("a foreign-key violation must not read as a duplicate")
	}

	plain := errors.New("connection reset")
	if got := wrapUnique(plain); got != plain {
		t.Errorf("non-pg errors must pass through, got %v", got)
	}
}
