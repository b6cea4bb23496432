package types

import "testing"

func TestNewPaginationClamps(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		total    int
		wantPage int
	}{
		{"first page", 1, 45, 1},
		{"zero clamps to first", 0, 45, 1},
		{"negative clamps to first", -3, 45, 1},
		{"past the end clamps to last", 99, 45, 5},
		{"empty list still has one page", 1, 0, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPagination(c.page, 10, c.total)
			if p.Page != c.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, c.wantPage)
			}
		})
	}
}

func TestPaginationWindow(t *testing.T) {
	p := NewPagination(3, 10, 45)

	if got := p.TotalPages(); got != 5 {
		t.Errorf("TotalPages = %d, want 5", got)
	}
	if got := p.Offset(); got != 20 {
		t.Errorf("Offset = %d, want 20", got)
	}
	if !p.HasPrev() || !p.HasNext() {
		t.Error("page 3 of 5 should have both neighbors")
	}
	if p.PrevPage() != 2 || p.NextPage() != 4 {
		t.Errorf("neighbors = %d/%d, want 2/4", p.PrevPage(), p.NextPage())
	}

	last := NewPagination(5, 10, 45)
	if last.HasNext() {
		t.Error("last page should not have a next page")
	}
	if !last.HasPrev() {
		t.Error("last page should have a previous page")
	}
}

func TestPaymentStatusTerminal(t *testing.T) {
	if PaymentStatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	if !PaymentStatusSuccess.Terminal() || !PaymentStatusFailed.Terminal() {
		t.Error("success and failed are terminal")
	}
}
