package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rotomethiopia/internal/forms"
	"rotomethiopia/internal/utils"
	"rotomethiopia/pkg/types"
)

const maxImageUploadBytes = 10 << 20

type ManageEventsPageData struct {
	types.BasePageData
	UpcomingEvents []*types.Event
	PreviousEvents []*types.PreviousEvent
}

func (s *Service) handleManageEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	upcoming, err := s.eventsRepo.UpcomingEvents(ctx, 0, 0)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch upcoming events")
		s.internalServerError(w)
		return
	}

	previous, err := s.previousRepo.PreviousEvents(ctx, 0, 0)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch previous events")
		s.internalServerError(w)
		return
	}

	data := &ManageEventsPageData{UpcomingEvents: upcoming, PreviousEvents: previous}
	data.Title = "Manage Events"

	if err := s.renderTemplate(w, r, "admin.events", data); err != nil {
		s.logger.WithError(err).Error("failed to render event list")
		s.internalServerError(w)
	}
}

type EventFormPageData struct {
	types.BasePageData
	Form       *forms.EventForm
	FormErrors forms.Errors
	Editing    bool
	EventID    string
	ImageURL   string
	Previous   bool
}

func (s *Service) handleGetCreateEvent(w http.ResponseWriter, r *http.Request) {
	s.renderEventForm(w, r, &EventFormPageData{Form: &forms.EventForm{}, FormErrors: forms.Errors{}}, http.StatusOK)
}

func (s *Service) handlePostCreateEvent(w http.ResponseWriter, r *http.Request) {
	eventForm, errs, ok := s.decodeEventForm(w, r, true)
	if !ok {
		return
	}

	imageURL, imageErrs := s.uploadFormImage(r, true, "")
	errs.Merge(imageErrs)

	if errs.Any() {
		s.renderEventForm(w, r, &EventFormPageData{Form: eventForm, FormErrors: errs}, http.StatusBadRequest)
		return
	}

	event := &types.Event{
		Title:       eventForm.Title,
		Description: eventForm.Description,
		EventDate:   eventForm.Date(),
		ImageURL:    imageURL,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.eventsRepo.CreateEvent(ctx, event); err != nil {
		s.logger.WithError(err).Error("failed to create event")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/dashboard/events", http.StatusSeeOther)
}

func (s *Service) handleGetEditEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.eventsRepo.Event(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrEventNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to fetch event")
		s.internalServerError(w)
		return
	}

	eventForm := &forms.EventForm{
		Title:       event.Title,
		Description: event.Description,
		EventDate:   forms.FormatEventDate(event.EventDate),
	}

	s.renderEventForm(w, r, &EventFormPageData{
		Form:       eventForm,
		FormErrors: forms.Errors{},
		Editing:    true,
		EventID:    event.ID,
		ImageURL:   event.ImageURL,
	}, http.StatusOK)
}

func (s *Service) handlePostEditEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.eventsRepo.Event(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrEventNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to fetch event")
		s.internalServerError(w)
		return
	}

	eventForm, errs, ok := s.decodeEventForm(w, r, true)
	if !ok {
		return
	}

	// A missing file on edit keeps the stored image.
	imageURL, imageErrs := s.uploadFormImage(r, false, event.ImageURL)
	errs.Merge(imageErrs)

	if errs.Any() {
		s.renderEventForm(w, r, &EventFormPageData{
			Form:       eventForm,
			FormErrors: errs,
			Editing:    true,
			EventID:    event.ID,
			ImageURL:   event.ImageURL,
		}, http.StatusBadRequest)
		return
	}

	event.Title = eventForm.Title
	event.Description = eventForm.Description
	event.EventDate = eventForm.Date()
	event.ImageURL = imageURL

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.eventsRepo.UpdateEvent(ctx, event.ID, event); err != nil {
		s.logger.WithError(err).Error("failed to update event")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/dashboard/events", http.StatusSeeOther)
}

func (s *Service) handleGetCreatePreviousEvent(w http.ResponseWriter, r *http.Request) {
	s.renderEventForm(w, r, &EventFormPageData{
		Form:       &forms.EventForm{},
		FormErrors: forms.Errors{},
		Previous:   true,
	}, http.StatusOK)
}

func (s *Service) handlePostCreatePreviousEvent(w http.ResponseWriter, r *http.Request) {
	eventForm, errs, ok := s.decodeEventForm(w, r, false)
	if !ok {
		return
	}

	imageURL, imageErrs := s.uploadFormImage(r, true, "")
	errs.Merge(imageErrs)

	if errs.Any() {
		s.renderEventForm(w, r, &EventFormPageData{
			Form:       eventForm,
			FormErrors: errs,
			Previous:   true,
		}, http.StatusBadRequest)
		return
	}

	event := &types.PreviousEvent{
		Title:     eventForm.Title,
		EventDate: eventForm.Date(),
		ImageURL:  imageURL,
	}
	if eventForm.Description != "" {
		event.Description = utils.StringPtr(eventForm.Description)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.previousRepo.CreatePreviousEvent(ctx, event); err != nil {
		s.logger.WithError(err).Error("failed to create previous event")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/dashboard/events", http.StatusSeeOther)
}

func (s *Service) handleGetEditPreviousEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.previousRepo.PreviousEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrPreviousEventNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to fetch previous event")
		s.internalServerError(w)
		return
	}

	eventForm := &forms.EventForm{
		Title:       event.Title,
		Description: utils.PtrString(event.Description),
		EventDate:   forms.FormatEventDate(event.EventDate),
	}

	s.renderEventForm(w, r, &EventFormPageData{
		Form:       eventForm,
		FormErrors: forms.Errors{},
		Editing:    true,
		EventID:    event.ID,
		ImageURL:   event.ImageURL,
		Previous:   true,
	}, http.StatusOK)
}

func (s *Service) handlePostEditPreviousEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.previousRepo.PreviousEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrPreviousEventNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to fetch previous event")
		s.internalServerError(w)
		return
	}

	eventForm, errs, ok := s.decodeEventForm(w, r, false)
	if !ok {
		return
	}

	imageURL, imageErrs := s.uploadFormImage(r, false, event.ImageURL)
	errs.Merge(imageErrs)

	if errs.Any() {
		s.renderEventForm(w, r, &EventFormPageData{
			Form:       eventForm,
			FormErrors: errs,
			Editing:    true,
			EventID:    event.ID,
			ImageURL:   event.ImageURL,
			Previous:   true,
		}, http.StatusBadRequest)
		return
	}

	event.Title = eventForm.Title
	event.EventDate = eventForm.Date()
	event.ImageURL = imageURL
	event.Description = nil
	if eventForm.Description != "" {
		event.Description = utils.StringPtr(eventForm.Description)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.previousRepo.UpdatePreviousEvent(ctx, event.ID, event); err != nil {
		s.logger.WithError(err).Error("failed to update previous event")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/dashboard/events", http.StatusSeeOther)
}

// decodeEventForm parses the multipart body and validates the text fields. A
// false third return means the response has already been written.
func (s *Service) decodeEventForm(w http.ResponseWriter, r *http.Request, descriptionRequired bool) (*forms.EventForm, forms.Errors, bool) {
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		s.logger.WithError(err).Warn("failed to parse event form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return nil, nil, false
	}

	var eventForm = new(forms.EventForm)
	if err := decoder.Decode(eventForm, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode event form")
		s.internalServerError(w)
		return nil, nil, false
	}

	return eventForm, eventForm.Validate(descriptionRequired), true
}

// uploadFormImage pushes the uploaded file to S3 and returns its public URL.
// When no file was submitted it returns existingURL, which is empty on create.
func (s *Service) uploadFormImage(r *http.Request, required bool, existingURL string) (string, forms.Errors) {
	errs := forms.Errors{}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		if required {
			errs.Add("image", "Please choose an image.")
		}
		return existingURL, errs
	}
	if err != nil {
		errs.Add("image", "Failed to read the uploaded image.")
		return existingURL, errs
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	imageURL, err := s.images.UploadEventImage(ctx, header.Filename, file, header.Header.Get("Content-Type"))
	if err != nil {
		s.logger.WithError(err).Error("failed to upload event image")
		errs.Add("image", "Failed to upload the image. Please try again.")
		return existingURL, errs
	}

	return imageURL, errs
}

func (s *Service) renderEventForm(w http.ResponseWriter, r *http.Request, data *EventFormPageData, status int) {
	if data.Title == "" {
		switch {
		case data.Editing && data.Previous:
			data.Title = "Edit Previous Event"
		case data.Editing:
			data.Title = "Edit Event"
		case data.Previous:
			data.Title = "New Previous Event"
		default:
			data.Title = "New Event"
		}
	}

	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	if err := s.renderTemplate(w, r, "admin.event-form", data); err != nil {
		s.logger.WithError(err).Error("failed to render event form")
		s.internalServerError(w)
	}
}
