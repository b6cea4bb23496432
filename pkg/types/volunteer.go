package types

import (
	"errors"
	"time"
)

var ErrVolunteerNotFound = errors.New("volunteer not found")

type EducationLevel string

const (
	EducationHighSchool      EducationLevel = "high_school"
	EducationAssociateDegree EducationLevel = "associate_degree"
	EducationBachelorDegree  EducationLevel = "bachelor_degree"
	EducationMasterDegree    EducationLevel = "master_degree"
	EducationDoctorate       EducationLevel = "doctorate"
	EducationOther           EducationLevel = "other"
)

func EducationLevels() []EducationLevel {
	return []EducationLevel{
		EducationHighSchool,
		EducationAssociateDegree,
		EducationBachelorDegree,
		EducationMasterDegree,
		EducationDoctorate,
		EducationOther,
	}
}

type TimeAvailability string

const (
	TimeMorning   TimeAvailability = "morning"
	TimeAfternoon TimeAvailability = "afternoon"
)

type VolunteerProfile struct {
	ID             string           `db:"id"`
	FirstName      string           `db:"first_name"`
	LastName       string           `db:"last_name"`
	Age            int              `db:"age"`
	PhoneNumber    string           `db:"phone_number"`
	EducationLevel EducationLevel   `db:"education_level"`
	TimesAvailable TimeAvailability `db:"times_available"`
	CreatedAt      time.Time        `db:"created_at"`

	// Loaded through the join tables, not columns on the profile row
	Days      []*Day              `db:"-"`
	Interests []*InterestCategory `db:"-"`
}

func (v *VolunteerProfile) FullName() string {
	return v.FirstName + " " + v.LastName
}

type Day struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type InterestCategory struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}
