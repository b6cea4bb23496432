package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"rotomethiopia/internal/donation"
	"rotomethiopia/internal/storage"
	"rotomethiopia/internal/store"
	"rotomethiopia/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

const pageSize = 10

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	templates *template.Template

	cognitoClient *cognitoidentityprovider.Client
	cookie        *securecookie.SecureCookie
	jwksCache     *jwk.Cache
	jwksURL       string

	volunteersRepo    *store.VolunteerRepository
	daysRepo          *store.DayRepository
	interestsRepo     *store.InterestRepository
	eventsRepo        *store.EventRepository
	previousRepo      *store.PreviousEventRepository
	contactsRepo      *store.ContactRepository
	paymentsRepo      *store.PaymentRepository
	registrationsRepo *store.RegistrationRepository
	subscribersRepo   *store.SubscriberRepository

	donations *donation.Flow
	images    *storage.ImageStorage

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	cognitoClient *cognitoidentityprovider.Client,
	volunteersRepo *store.VolunteerRepository,
	daysRepo *store.DayRepository,
	interestsRepo *store.InterestRepository,
	eventsRepo *store.EventRepository,
	previousRepo *store.PreviousEventRepository,
	contactsRepo *store.ContactRepository,
	paymentsRepo *store.PaymentRepository,
	registrationsRepo *store.RegistrationRepository,
	subscribersRepo *store.SubscriberRepository,
	donations *donation.Flow,
	images *storage.ImageStorage,
	jwksCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:        logger,
		config:        config,
		cognitoClient: cognitoClient,
		cookie:        securecookie.New(hashKey, blockKey),

		volunteersRepo:    volunteersRepo,
		daysRepo:          daysRepo,
		interestsRepo:     interestsRepo,
		eventsRepo:        eventsRepo,
		previousRepo:      previousRepo,
		contactsRepo:      contactsRepo,
		paymentsRepo:      paymentsRepo,
		registrationsRepo: registrationsRepo,
		subscribersRepo:   subscribersRepo,

		donations: donations,
		images:    images,

		jwksCache: jwksCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/", s.handleContactSubmit, http.MethodPost)

	r.HandleFunc("/ourstory", s.handleOurStory, http.MethodGet)
	r.HandleFunc("/ourplan", s.handleOurPlan, http.MethodGet)
	r.HandleFunc("/achievements", s.handleAchievements, http.MethodGet)
	r.HandleFunc("/journies", s.handleJournies, http.MethodGet)
	r.HandleFunc("/centerbased", s.handleCenterBased, http.MethodGet)
	r.HandleFunc("/homebased", s.handleHomeBased, http.MethodGet)
	r.HandleFunc("/champions", s.handleChampions, http.MethodGet)

	r.HandleFunc("/volunteer", s.handleGetVolunteer, http.MethodGet)
	r.HandleFunc("/volunteer", s.handlePostVolunteer, http.MethodPost)

	r.HandleFunc("/events", s.handleEvents, http.MethodGet)

	r.HandleFunc("/take-action", s.handleGetTakeAction, http.MethodGet)
	r.HandleFunc("/take-action", s.handlePostTakeAction, http.MethodPost)

	r.HandleFunc("/subscribe", s.handleSubscribe, http.MethodPost)

	r.HandleFunc("/donate", s.handleGetDonate, http.MethodGet)
	r.HandleFunc("/donate", s.handlePostDonate, http.MethodPost)
	r.HandleFunc("/payment/callback", s.handlePaymentCallback, http.MethodGet)
	r.HandleFunc("/payment/success", s.handlePaymentSuccess, http.MethodGet)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/dashboard/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/dashboard/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/dashboard/logout", s.handleLogout, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireStaff)

		r.HandleFunc("/dashboard", s.handleDashboard, http.MethodGet)

		r.HandleFunc("/dashboard/volunteers", s.handleManageVolunteers, http.MethodGet)
		r.HandleFunc("/dashboard/volunteers/:id", s.handleVolunteerDetail, http.MethodGet)

		r.HandleFunc("/dashboard/events", s.handleManageEvents, http.MethodGet)
		r.HandleFunc("/dashboard/events/new", s.handleGetCreateEvent, http.MethodGet)
		r.HandleFunc("/dashboard/events/new", s.handlePostCreateEvent, http.MethodPost)
		r.HandleFunc("/dashboard/events/:id/edit", s.handleGetEditEvent, http.MethodGet)
		r.HandleFunc("/dashboard/events/:id/edit", s.handlePostEditEvent, http.MethodPost)
		r.HandleFunc("/dashboard/previous-events/new", s.handleGetCreatePreviousEvent, http.MethodGet)
		r.HandleFunc("/dashboard/previous-events/new", s.handlePostCreatePreviousEvent, http.MethodPost)
		r.HandleFunc("/dashboard/previous-events/:id/edit", s.handleGetEditPreviousEvent, http.MethodGet)
		r.HandleFunc("/dashboard/previous-events/:id/edit", s.handlePostEditPreviousEvent, http.MethodPost)

		r.HandleFunc("/dashboard/contacts", s.handleManageContacts, http.MethodGet)
		r.HandleFunc("/dashboard/contacts/:id", s.handleContactDetail, http.MethodGet)

		r.HandleFunc("/dashboard/payments", s.handleManagePayments, http.MethodGet)
		r.HandleFunc("/dashboard/payments/:id", s.handlePaymentDetail, http.MethodGet)

		r.HandleFunc("/dashboard/registrations", s.handleManageRegistrations, http.MethodGet)
		r.HandleFunc("/dashboard/registrations/:id", s.handleRegistrationDetail, http.MethodGet)
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"titleCase": func(s string) string {
			words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
			for i, w := range words {
				if w != "" {
					words[i] = strings.ToUpper(w[:1]) + w[1:]
				}
			}
			return strings.Join(words, " ")
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
