package server

import (
	"net/http"

	"rotomethiopia/pkg/types"
)

type EventsPageData struct {
	types.BasePageData
	UpcomingEvents []*types.Event
	PreviousPhotos []*types.PreviousEvent
}

func (s *Service) handleEvents(w http.ResponseWriter, r *http.Request) {
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

	data := &EventsPageData{
		UpcomingEvents: upcoming,
		PreviousPhotos: previous,
	}
	data.Title = "Events"

	if err := s.renderTemplate(w, r, "page.events", data); err != nil {
		s.logger.WithError(err).Error("failed to render events page")
		s.internalServerError(w)
	}
}
