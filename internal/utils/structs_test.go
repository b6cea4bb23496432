package utils

import (
	"errors"
	"reflect"
	"testing"
)

type tagged struct {
	ID      string   `db:"id"`
	Name    string   `db:"name"`
	Skipped []string `db:"-"`
	NoTag   string
}

func TestStructTagValues(t *testing.T) {
	got := StructTagValues(tagged{})
	want := []string{"id", "name"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("StructTagValues = %v, want %v", got, want)
	}

	if ptr := StructTagValues(&tagged{}); !reflect.DeepEqual(ptr, want) {
		t.Errorf("StructTagValues on pointer = %v, want %v", ptr, want)
	}
}

func TestStructToMap(t *testing.T) {
	got := StructToMap(tagged{ID: "abc", Name: "x", NoTag: "ignored"})
	want := map[string]any{"id": "abc", "name": "x"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("StructToMap = %v, want %v", got, want)
	}
}

func TestErrorWrapOrNil(t *testing.T) {
	if ErrorWrapOrNil(nil, "context") != nil {
		t.Error("wrapping nil must stay nil")
	}

	base := errors.New("boom")
	wrapped := ErrorWrapOrNil(base, "saving record")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error must unwrap to the original")
	}
	if wrapped.Error() != "saving record: boom" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestNanoIDLength(t *testing.T) {
	if got := len(NanoID()); got != NanoidSize {
		t.Errorf("NanoID length = %d, want %d", got, NanoidSize)
	}
	if got := len(NanoIDSize(16)); got != 16 {
		t.Errorf("NanoIDSize(16) length = %d, want 16", got)
	}
}
