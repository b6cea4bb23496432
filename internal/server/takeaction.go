package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"rotomethiopia/internal/forms"
	"rotomethiopia/pkg/types"
)

type TakeActionPageData struct {
	types.BasePageData
	Form       *forms.FeedingForm
	FormErrors forms.Errors
}

func (s *Service) handleGetTakeAction(w http.ResponseWriter, r *http.Request) {
	s.renderTakeActionPage(w, r, &forms.FeedingForm{}, forms.Errors{})
}

func (s *Service) handlePostTakeAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Warn("failed to parse feeding form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var feedingForm = new(forms.FeedingForm)
	if err := decoder.Decode(feedingForm, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode feeding form")
		s.internalServerError(w)
		return
	}

	errs := feedingForm.Validate()
	if errs.Any() {
		s.logger.WithField("errors", errs).Warn("feeding form validation failed")
		s.renderTakeActionPage(w, r, feedingForm, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.registrationsRepo.CreateRegistration(ctx, feedingForm.Record()); err != nil {
		s.logger.WithError(err).Error("failed to save feeding registration")
		s.internalServerError(w)
		return
	}

	// Anchor keeps the confirmation visible at the form section.
	v := url.Values{}
	v.Set("notice", "Thank you for registering! We will contact you to confirm your feeding schedule.")
	http.Redirect(w, r, "/take-action?"+v.Encode()+"#feeding-form-section", http.StatusSeeOther)
}

func (s *Service) renderTakeActionPage(w http.ResponseWriter, r *http.Request, feedingForm *forms.FeedingForm, errs forms.Errors) {
	data := &TakeActionPageData{
		Form:       feedingForm,
		FormErrors: errs,
	}
	data.Title = "Take Action"
	data.Notice = r.URL.Query().Get("notice")

	if errs.Any() {
		w.WriteHeader(http.StatusBadRequest)
	}

	if err := s.renderTemplate(w, r, "page.take-action", data); err != nil {
		s.logger.WithError(err).Error("failed to render take action page")
		s.internalServerError(w)
	}
}
