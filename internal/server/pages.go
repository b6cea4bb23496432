package server

import (
	"net/http"
	"net/url"

	"rotomethiopia/internal/forms"
	"rotomethiopia/pkg/types"
)

type HomePageData struct {
	types.BasePageData
	Form       *forms.ContactForm
	FormErrors forms.Errors
	Success    string
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	data := &HomePageData{
		Form:       &forms.ContactForm{},
		FormErrors: forms.Errors{},
	}
	data.Title = "ROTOM Ethiopia"
	data.Notice = r.URL.Query().Get("notice")
	data.Error = r.URL.Query().Get("error")

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, path+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	v := url.Values{}
	v.Set("error", msg)
	http.Redirect(w, r, path+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) handleStaticPage(templateName, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := &types.BasePageData{Title: title}
		if err := s.renderTemplate(w, r, templateName, data); err != nil {
			s.logger.WithError(err).Error("failed to render " + templateName)
			s.internalServerError(w)
		}
	}
}

func (s *Service) handleOurStory(w http.ResponseWriter, r *http.Request) {
	s.handleStaticPage("page.ourstory", "Our Story")(w, r)
}

func (s *Service) handleOurPlan(w http.ResponseWriter, r *http.Request) {
	s.handleStaticPage("page.ourplan", "Our Plan")(w, r)
}

func (s *Service) handleAchievements(w http.ResponseWriter, r *http.Request) {
	s.handleStaticPage("page.achievements", "Achievements")(w, r)
}

func (s *Service) handleJournies(w http.ResponseWriter, r *http.Request) {
	s.handleStaticPage("page.journies", "Journies")(w, r)
}

func (s *Service) handleCenterBased(w http.ResponseWriter, r *http.Request) {
	s.handleStaticPage("page.centerbased", "Center-Based Program")(w, r)
}

func (s *Service) handleHomeBased(w http.ResponseWriter, r *http.Request) {
	s.handleStaticPage("page.homebased", "Home-Based Program")(w, r)
}

func (s *Service) handleChampions(w http.ResponseWriter, r *http.Request) {
	s.handleStaticPage("page.champions", "Champions")(w, r)
}
