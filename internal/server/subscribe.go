package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rotomethiopia/internal/forms"
	"rotomethiopia/pkg/types"
)

// handleSubscribe registers a newsletter address. A duplicate, whether seen
// in the pre-check or surfaced by the unique constraint on a racing insert,
// comes back as a field error, not a failure.
func (s *Service) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Warn("failed to parse subscribe form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var subscriberForm = new(forms.SubscriberForm)
	if err := decoder.Decode(subscriberForm, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode subscribe form")
		s.internalServerError(w)
		return
	}

	errs := subscriberForm.Validate()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if !errs.Any() {
		exists, err := s.subscribersRepo.SubscriberExists(ctx, subscriberForm.Email)
		if err != nil {
			s.logger.WithError(err).Error("failed to check subscriber")
			s.internalServerError(w)
			return
		}
		if exists {
			errs.Add("email", "This email is already subscribed.")
		}
	}

	if !errs.Any() {
		err := s.subscribersRepo.CreateSubscriber(ctx, &types.Subscriber{Email: subscriberForm.Email})
		if errors.Is(err, types.ErrDuplicate) {
			errs.Add("email", "This email is already subscribed.")
		} else if err != nil {
			s.logger.WithError(err).Error("failed to save subscriber")
			s.internalServerError(w)
			return
		}
	}

	if errs.Any() {
		s.logger.WithField("errors", errs).Warn("subscribe form rejected")
		if requestedViaScript(r) {
			s.writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Errors: errs})
			return
		}
		s.redirectWithError(w, r, "/", "Please enter a valid email address.")
		return
	}

	// The original sent a welcome mail here; the transport is out of scope
	// but the subscription event is worth a record.
	s.logger.WithField("email", subscriberForm.Email).Info("new newsletter subscriber")

	if requestedViaScript(r) {
		s.writeJSON(w, http.StatusOK, ajaxResponse{Success: true, Message: "Thank you for subscribing!"})
		return
	}

	s.redirectWithNotice(w, r, "/", "Thank you for subscribing!")
}
