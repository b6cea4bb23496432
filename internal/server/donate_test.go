package server

import (
	"bytes"
	"strings"
	"testing"

	"rotomethiopia/internal/forms"
)

// A donor who leaves the name fields empty must see the messages next to
// those fields, not a bare re-render.
func TestDonatePageRendersNameErrors(t *testing.T) {
	templates, err := loadTemplates()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}

	form := &forms.DonationForm{Amount: "100", Email: "donor@example.com"}
	_, errs := form.Validate(50, "ETB", []string{"09", "07"})
	if !errs.Any() {
		t.Fatal("expected validation errors for missing names")
	}

	data := &DonatePageData{
		Form:          form,
		FormErrors:    errs,
		MinimumAmount: 50,
		Currency:      "ETB",
	}
	data.Title = "Donate"

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page.donate", data); err != nil {
		t.Fatalf("render donate page: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"First name is required.", "Last name is required."} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}
