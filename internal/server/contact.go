package server

import (
	"context"
	"net/http"
	"time"

	"rotomethiopia/internal/forms"
)

// handleContactSubmit accepts the contact form posted from the home page.
// Script submissions get the {success, errors} JSON shape; plain submits get
// the home page re-rendered with field errors and the original input.
func (s *Service) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Warn("failed to parse contact form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var contactForm = new(forms.ContactForm)
	if err := decoder.Decode(contactForm, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode contact form")
		s.internalServerError(w)
		return
	}

	errs := contactForm.Validate(s.config.LocalPhonePrefixes)
	if errs.Any() {
		s.logger.WithField("errors", errs).Warn("contact form validation failed")
		s.respondContact(w, r, contactForm, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.contactsRepo.CreateContact(ctx, contactForm.Record()); err != nil {
		s.logger.WithError(err).Error("failed to save contact message")
		s.internalServerError(w)
		return
	}

	if requestedViaScript(r) {
		s.writeJSON(w, http.StatusOK, ajaxResponse{Success: true})
		return
	}

	data := &HomePageData{
		Form:       &forms.ContactForm{},
		FormErrors: forms.Errors{},
		Success:    "Thank you for your message! We will get back to you soon.",
	}
	data.Title = "ROTOM Ethiopia"

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
	}
}

func (s *Service) respondContact(w http.ResponseWriter, r *http.Request, contactForm *forms.ContactForm, errs forms.Errors) {
	if requestedViaScript(r) {
		s.writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Errors: errs})
		return
	}

	data := &HomePageData{
		Form:       contactForm,
		FormErrors: errs,
	}
	data.Title = "ROTOM Ethiopia"

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
	}
}
