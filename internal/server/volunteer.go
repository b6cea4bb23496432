package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rotomethiopia/internal/forms"
	"rotomethiopia/pkg/types"
)

type VolunteerPageData struct {
	types.BasePageData
	Form       *forms.VolunteerForm
	FormErrors forms.Errors
	Days       []*types.Day
	Interests  []*types.InterestCategory
	Educations []types.EducationLevel
}

func (s *Service) handleGetVolunteer(w http.ResponseWriter, r *http.Request) {
	s.renderVolunteerPage(w, r, &forms.VolunteerForm{}, forms.Errors{})
}

func (s *Service) handlePostVolunteer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Warn("failed to parse volunteer form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var volunteerForm = new(forms.VolunteerForm)
	if err := decoder.Decode(volunteerForm, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode volunteer form")
		s.internalServerError(w)
		return
	}

	errs := volunteerForm.Validate()
	if errs.Any() {
		s.logger.WithField("errors", errs).Warn("volunteer form validation failed")
		s.renderVolunteerPage(w, r, volunteerForm, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := s.volunteersRepo.CreateVolunteer(ctx, volunteerForm.Record(), volunteerForm.Days, volunteerForm.Interests)
	if errors.Is(err, types.ErrDuplicate) {
		errs.Add("phone_number", "A volunteer with this phone number is already registered.")
		s.renderVolunteerPage(w, r, volunteerForm, errs)
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to create volunteer profile")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/", "Thank you for registering as a volunteer! We will contact you soon.")
}

func (s *Service) renderVolunteerPage(w http.ResponseWriter, r *http.Request, volunteerForm *forms.VolunteerForm, errs forms.Errors) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	days, err := s.daysRepo.AllDays(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch days")
		s.internalServerError(w)
		return
	}

	interests, err := s.interestsRepo.AllInterests(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch interest options")
		s.internalServerError(w)
		return
	}

	data := &VolunteerPageData{
		Form:       volunteerForm,
		FormErrors: errs,
		Days:       days,
		Interests:  interests,
		Educations: types.EducationLevels(),
	}
	data.Title = "Volunteer"

	if errs.Any() {
		w.WriteHeader(http.StatusBadRequest)
	}

	if err := s.renderTemplate(w, r, "page.volunteer", data); err != nil {
		s.logger.WithError(err).Error("failed to render volunteer page")
		s.internalServerError(w)
	}
}
