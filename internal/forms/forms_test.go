package forms

import (
	"strings"
	"testing"
)

var testPrefixes = []string{"09", "07"}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"someone@example.com", true},
		{"a@b.c", true},
		{"missing-at.example.com", false},
		{"missing-dot@example", false},
		{"", false},
	}

	for _, c := range cases {
		if got := ValidEmail(c.email); got != c.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", c.email, got, c.want)
		}
	}
}

func TestValidLocalPhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"0912345678", true},
		{"0712345678", true},
		{"0812345678", false}, // wrong prefix
		{"091234567", false},  // too short
		{"09123456789", false},
		{"09123a5678", false},
		{"+251912345", false},
	}

	for _, c := range cases {
		if got := ValidLocalPhone(c.phone, testPrefixes); got != c.want {
			t.Errorf("ValidLocalPhone(%q) = %v, want %v", c.phone, got, c.want)
		}
	}
}

func TestValidInternationalPhone(t *testing.T) {
	if !ValidInternationalPhone("+251912345678") {
		t.Error("expected +251912345678 to be valid")
	}
	if ValidInternationalPhone("0912345678") {
		t.Error("expected 0912345678 to be invalid without country code")
	}
	if ValidInternationalPhone("+") {
		t.Error("expected bare + to be invalid")
	}
}

func TestContactFormValidate(t *testing.T) {
	cases := []struct {
		name       string
		form       ContactForm
		wantFields []string
	}{
		{
			name: "valid",
			form: ContactForm{
				Name:     "Abebe Kebede",
				Location: "Addis Ababa",
				Email:    "abebe@example.com",
				Message:  "I want to help.",
			},
		},
		{
			name: "valid with phone",
			form: ContactForm{
				Name:        "Abebe Kebede",
				Location:    "Addis Ababa",
				Email:       "abebe@example.com",
				PhoneNumber: "0912345678",
				Message:     "I want to help.",
			},
		},
		{
			name:       "everything missing",
			form:       ContactForm{},
			wantFields: []string{"name", "location", "email", "message"},
		},
		{
			name: "bad phone",
			form: ContactForm{
				Name:        "Abebe Kebede",
				Location:    "Addis Ababa",
				Email:       "abebe@example.com",
				PhoneNumber: "12345",
				Message:     "Hello",
			},
			wantFields: []string{"phone_number"},
		},
		{
			name: "name too long",
			form: ContactForm{
				Name:     strings.Repeat("a", 101),
				Location: "Addis Ababa",
				Email:    "abebe@example.com",
				Message:  "Hello",
			},
			wantFields: []string{"name"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			errs := c.form.Validate(testPrefixes)
			assertFields(t, errs, c.wantFields)
		})
	}
}

func TestContactFormRecordOmitsEmptyPhone(t *testing.T) {
	form := ContactForm{Name: "A", Location: "B", Email: "a@b.c", Message: "hi"}
	if rec := form.Record(); rec.PhoneNumber != nil {
		t.Errorf("expected nil phone number, got %q", *rec.PhoneNumber)
	}

	form.PhoneNumber = "0912345678"
	rec := form.Record()
	if rec.PhoneNumber == nil || *rec.PhoneNumber != "0912345678" {
		t.Error("expected phone number to round-trip into the record")
	}
}

func TestVolunteerFormValidate(t *testing.T) {
	valid := VolunteerForm{
		FirstName:      "Sara",
		LastName:       "Tesfaye",
		Age:            24,
		PhoneNumber:    "+251911223344",
		EducationLevel: "bachelor_degree",
		TimesAvailable: "morning",
	}

	if errs := valid.Validate(); errs.Any() {
		t.Fatalf("expected no errors, got %v", errs)
	}

	cases := []struct {
		name   string
		mutate func(*VolunteerForm)
		field  string
	}{
		{"missing first name", func(f *VolunteerForm) { f.FirstName = " " }, "first_name"},
		{"missing last name", func(f *VolunteerForm) { f.LastName = "" }, "last_name"},
		{"zero age", func(f *VolunteerForm) { f.Age = 0 }, "age"},
		{"local phone rejected", func(f *VolunteerForm) { f.PhoneNumber = "0911223344" }, "phone_number"},
		{"bogus education", func(f *VolunteerForm) { f.EducationLevel = "wizard" }, "education_level"},
		{"bogus availability", func(f *VolunteerForm) { f.TimesAvailable = "midnight" }, "times_available"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			form := valid
			c.mutate(&form)
			errs := form.Validate()
			if len(errs[c.field]) == 0 {
				t.Errorf("expected an error on %q, got %v", c.field, errs)
			}
		})
	}
}

func TestFeedingFormValidate(t *testing.T) {
	valid := FeedingForm{
		FullName:      "Marta Alemu",
		Email:         "marta@example.com",
		Phone:         "0912345678",
		MealType:      "lunch",
		Location:      "addis_ababa",
		PreferredDate: "2026-09-15",
	}

	if errs := valid.Validate(); errs.Any() {
		t.Fatalf("expected no errors, got %v", errs)
	}

	cases := []struct {
		name   string
		mutate func(*FeedingForm)
		field  string
	}{
		{"bad meal", func(f *FeedingForm) { f.MealType = "brunch" }, "meal_type"},
		{"bad location", func(f *FeedingForm) { f.Location = "gondar" }, "location"},
		{"bad date", func(f *FeedingForm) { f.PreferredDate = "15/09/2026" }, "preferred_date"},
		{"missing name", func(f *FeedingForm) { f.FullName = "" }, "full_name"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			form := valid
			c.mutate(&form)
			errs := form.Validate()
			if len(errs[c.field]) == 0 {
				t.Errorf("expected an error on %q, got %v", c.field, errs)
			}
		})
	}
}

func TestDonationFormValidate(t *testing.T) {
	valid := DonationForm{
		Amount:    "100",
		Email:     "donor@example.com",
		FirstName: "Hana",
		LastName:  "Bekele",
	}

	amount, errs := valid.Validate(50, "ETB", testPrefixes)
	if errs.Any() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if amount != 100 {
		t.Errorf("expected parsed amount 100, got %g", amount)
	}

	t.Run("below minimum", func(t *testing.T) {
		form := valid
		form.Amount = "49.99"
		_, errs := form.Validate(50, "ETB", testPrefixes)
		if got := errs.First("amount"); got != "Minimum donation amount is 50 ETB." {
			t.Errorf("unexpected amount error: %q", got)
		}
	})

	t.Run("unparseable amount", func(t *testing.T) {
		form := valid
		form.Amount = "ten birr"
		_, errs := form.Validate(50, "ETB", testPrefixes)
		if len(errs["amount"]) == 0 {
			t.Errorf("expected an amount error, got %v", errs)
		}
	})

	t.Run("missing names flagged per field", func(t *testing.T) {
		form := valid
		form.FirstName = ""
		form.LastName = " "
		_, errs := form.Validate(50, "ETB", testPrefixes)
		if len(errs["first_name"]) == 0 || len(errs["last_name"]) == 0 {
			t.Errorf("expected first_name and last_name errors, got %v", errs)
		}
	})

	t.Run("phone is optional", func(t *testing.T) {
		form := valid
		form.PhoneNumber = ""
		if _, errs := form.Validate(50, "ETB", testPrefixes); errs.Any() {
			t.Errorf("expected no errors without a phone, got %v", errs)
		}
	})

	t.Run("bad phone rejected", func(t *testing.T) {
		form := valid
		form.PhoneNumber = "12345"
		_, errs := form.Validate(50, "ETB", testPrefixes)
		if got := errs.First("phone_number"); got != "Phone number must be 10 digits starting with 09 or 07." {
			t.Errorf("unexpected phone error: %q", got)
		}
	})

	t.Run("phone message follows configured prefixes", func(t *testing.T) {
		form := valid
		form.PhoneNumber = "0812345678"
		_, errs := form.Validate(50, "ETB", []string{"09"})
		if got := errs.First("phone_number"); got != "Phone number must be 10 digits starting with 09." {
			t.Errorf("unexpected phone error: %q", got)
		}
	})
}

func TestEventFormValidate(t *testing.T) {
	valid := EventForm{
		Title:       "Christmas Lunch",
		Description: "A meal together",
		EventDate:   "2026-12-25T12:00",
	}

	if errs := valid.Validate(true); errs.Any() {
		t.Fatalf("expected no errors, got %v", errs)
	}

	t.Run("description optional when not required", func(t *testing.T) {
		form := valid
		form.Description = ""
		if errs := form.Validate(false); errs.Any() {
			t.Errorf("expected no errors, got %v", errs)
		}
		if errs := form.Validate(true); len(errs["description"]) == 0 {
			t.Error("expected a description error when required")
		}
	})

	t.Run("bad date", func(t *testing.T) {
		form := valid
		form.EventDate = "25/12/2026"
		if errs := form.Validate(true); len(errs["event_date"]) == 0 {
			t.Error("expected an event_date error")
		}
	})
}

func TestErrorsMerge(t *testing.T) {
	a := Errors{}
	a.Add("email", "first")

	b := Errors{}
	b.Add("email", "second")
	b.Add("name", "third")

	a.Merge(b)

	if len(a["email"]) != 2 || len(a["name"]) != 1 {
		t.Errorf("unexpected merge result: %v", a)
	}
}

func assertFields(t *testing.T, errs Errors, wantFields []string) {
	t.Helper()

	if len(wantFields) == 0 {
		if errs.Any() {
			t.Errorf("expected no errors, got %v", errs)
		}
		return
	}

	for _, field := range wantFields {
		if len(errs[field]) == 0 {
			t.Errorf("expected an error on %q, got %v", field, errs)
		}
	}
}
