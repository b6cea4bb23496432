package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rotomethiopia/pkg/types"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04" // datetime-local inputs
)

type ContactForm struct {
	Name        string `form:"name"`
	Location    string `form:"location"`
	Email       string `form:"email"`
	PhoneNumber string `form:"phone_number"`
	Message     string `form:"message"`
}

func (f *ContactForm) Validate(localPrefixes []string) Errors {
	errs := Errors{}

	f.Name = strings.TrimSpace(f.Name)
	f.Location = strings.TrimSpace(f.Location)
	f.Email = strings.TrimSpace(f.Email)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	f.Message = strings.TrimSpace(f.Message)

	if f.Name == "" {
		errs.Add("name", "This field is required.")
	} else if len(f.Name) > 100 {
		errs.Add("name", "Name must be at most 100 characters.")
	}

	if f.Location == "" {
		errs.Add("location", "This field is required.")
	} else if len(f.Location) > 200 {
		errs.Add("location", "Location must be at most 200 characters.")
	}

	if !ValidEmail(f.Email) {
		errs.Add("email", "Please enter a valid email address.")
	}

	if f.PhoneNumber != "" && !ValidLocalPhone(f.PhoneNumber, localPrefixes) {
		errs.Add("phone_number", localPhoneMessage(localPrefixes))
	}

	if f.Message == "" {
		errs.Add("message", "This field is required.")
	}

	return errs
}

func (f *ContactForm) Record() *types.Contact {
	contact := &types.Contact{
		Name:     f.Name,
		Location: f.Location,
		Email:    f.Email,
		Message:  f.Message,
	}
	if f.PhoneNumber != "" {
		phone := f.PhoneNumber
		contact.PhoneNumber = &phone
	}
	return contact
}

type VolunteerForm struct {
	FirstName      string   `form:"first_name"`
	LastName       string   `form:"last_name"`
	Age            int      `form:"age"`
	PhoneNumber    string   `form:"phone_number"`
	EducationLevel string   `form:"education_level"`
	TimesAvailable string   `form:"times_available"`
	Days           []string `form:"days_available"`
	Interests      []string `form:"interests"`
}

func (f *VolunteerForm) Validate() Errors {
	errs := Errors{}

	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)

	if f.FirstName == "" {
		errs.Add("first_name", "This field is required.")
	}

	if f.LastName == "" {
		errs.Add("last_name", "This field is required.")
	}

	if f.Age <= 0 {
		errs.Add("age", "Please enter a valid age.")
	}

	if !ValidInternationalPhone(f.PhoneNumber) {
		errs.Add("phone_number", "Phone number must include a country code and start with '+'")
	}

	if !validEducationLevel(f.EducationLevel) {
		errs.Add("education_level", "Select a valid education level.")
	}

	if f.TimesAvailable != string(types.TimeMorning) && f.TimesAvailable != string(types.TimeAfternoon) {
		errs.Add("times_available", "Select a valid time availability.")
	}

	return errs
}

func (f *VolunteerForm) Record() *types.VolunteerProfile {
	return &types.VolunteerProfile{
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		Age:            f.Age,
		PhoneNumber:    f.PhoneNumber,
		EducationLevel: types.EducationLevel(f.EducationLevel),
		TimesAvailable: types.TimeAvailability(f.TimesAvailable),
	}
}

func validEducationLevel(level string) bool {
	for _, l := range types.EducationLevels() {
		if level == string(l) {
			return true
		}
	}
	return false
}

type SubscriberForm struct {
	Email string `form:"email"`
}

func (f *SubscriberForm) Validate() Errors {
	errs := Errors{}

	f.Email = strings.TrimSpace(f.Email)
	if !ValidEmail(f.Email) {
		errs.Add("email", "Please enter a valid email address.")
	}

	return errs
}

type FeedingForm struct {
	FullName      string `form:"full_name"`
	Email         string `form:"email"`
	Phone         string `form:"phone"`
	MealType      string `form:"meal_type"`
	Location      string `form:"location"`
	PreferredDate string `form:"preferred_date"`
	Notes         string `form:"notes"`
}

func (f *FeedingForm) Validate() Errors {
	errs := Errors{}

	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)

	if f.FullName == "" {
		errs.Add("full_name", "This field is required.")
	} else if len(f.FullName) > 100 {
		errs.Add("full_name", "Full name must be at most 100 characters.")
	}

	if !ValidEmail(f.Email) {
		errs.Add("email", "Please enter a valid email address.")
	}

	if f.Phone == "" {
		errs.Add("phone", "This field is required.")
	} else if len(f.Phone) > 20 {
		errs.Add("phone", "Phone number must be at most 20 characters.")
	}

	switch types.MealType(f.MealType) {
	case types.MealBreakfast, types.MealLunch, types.MealDinner:
	default:
		errs.Add("meal_type", "Select a valid meal type.")
	}

	switch types.FeedingLocation(f.Location) {
	case types.LocationAddisAbaba, types.LocationBishoftu, types.LocationAdama, types.LocationMojo:
	default:
		errs.Add("location", "Select a valid location.")
	}

	if _, err := time.Parse(dateLayout, f.PreferredDate); err != nil {
		errs.Add("preferred_date", "Please enter a valid date.")
	}

	return errs
}

func (f *FeedingForm) Record() *types.FeedingRegistration {
	preferredDate, _ := time.Parse(dateLayout, f.PreferredDate)
	return &types.FeedingRegistration{
		FullName:      f.FullName,
		Email:         f.Email,
		Phone:         f.Phone,
		MealType:      types.MealType(f.MealType),
		Location:      types.FeedingLocation(f.Location),
		PreferredDate: preferredDate,
		Notes:         strings.TrimSpace(f.Notes),
	}
}

type DonationForm struct {
	Amount      string `form:"amount"`
	Email       string `form:"email"`
	FirstName   string `form:"first_name"`
	LastName    string `form:"last_name"`
	PhoneNumber string `form:"phone_number"`
}

// Validate checks the donation fields against the configured minimum and
// phone prefixes. The parsed amount is only meaningful when no errors were
// recorded.
func (f *DonationForm) Validate(minAmount float64, currency string, localPrefixes []string) (float64, Errors) {
	errs := Errors{}

	f.Email = strings.TrimSpace(f.Email)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)

	amount, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
	if err != nil {
		errs.Add("amount", "Invalid amount entered.")
	} else if amount < minAmount {
		errs.Add("amount", fmt.Sprintf("Minimum donation amount is %g %s.", minAmount, currency))
	}

	if !ValidEmail(f.Email) {
		errs.Add("email", "Please provide a valid email address.")
	}

	if f.FirstName == "" {
		errs.Add("first_name", "First name is required.")
	}
	if f.LastName == "" {
		errs.Add("last_name", "Last name is required.")
	}

	if f.PhoneNumber != "" && !ValidLocalPhone(f.PhoneNumber, localPrefixes) {
		errs.Add("phone_number", localPhoneMessage(localPrefixes))
	}

	return amount, errs
}

type EventForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	EventDate   string `form:"event_date"`
}

func (f *EventForm) Validate(descriptionRequired bool) Errors {
	errs := Errors{}

	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)

	if f.Title == "" {
		errs.Add("title", "This field is required.")
	} else if len(f.Title) > 200 {
		errs.Add("title", "Title must be at most 200 characters.")
	}

	if descriptionRequired && f.Description == "" {
		errs.Add("description", "This field is required.")
	}

	if _, err := time.Parse(dateTimeLayout, f.EventDate); err != nil {
		errs.Add("event_date", "Please enter a valid date and time.")
	}

	return errs
}

func (f *EventForm) Date() time.Time {
	d, _ := time.Parse(dateTimeLayout, f.EventDate)
	return d
}

// FormatEventDate renders a timestamp the way datetime-local inputs expect,
// for pre-filling edit forms.
func FormatEventDate(t time.Time) string {
	return t.Format(dateTimeLayout)
}
