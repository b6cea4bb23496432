package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"rotomethiopia/pkg/types"
)

const recentLimit = 5

type DashboardPageData struct {
	types.BasePageData
	TotalVolunteers     int
	TotalEvents         int
	TotalPreviousEvents int
	TotalPayments       int
	TotalContacts       int
	TotalRegistrations  int

	RecentVolunteers    []*types.VolunteerProfile
	RecentContacts      []*types.Contact
	RecentPayments      []*types.Payment
	RecentRegistrations []*types.FeedingRegistration
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	data := &DashboardPageData{}
	data.Title = "Dashboard"

	var err error
	if data.TotalVolunteers, err = s.volunteersRepo.CountVolunteers(ctx); err != nil {
		s.logger.WithError(err).Error("failed to count volunteers")
		s.internalServerError(w)
		return
	}
	if data.TotalEvents, err = s.eventsRepo.CountUpcomingEvents(ctx); err != nil {
		s.logger.WithError(err).Error("failed to count upcoming events")
		s.internalServerError(w)
		return
	}
	if data.TotalPreviousEvents, err = s.previousRepo.CountPreviousEvents(ctx); err != nil {
		s.logger.WithError(err).Error("failed to count previous events")
		s.internalServerError(w)
		return
	}
	// Dashboard figures only count money that actually arrived.
	if data.TotalPayments, err = s.paymentsRepo.CountPayments(ctx, true); err != nil {
		s.logger.WithError(err).Error("failed to count payments")
		s.internalServerError(w)
		return
	}
	if data.TotalContacts, err = s.contactsRepo.CountContacts(ctx); err != nil {
		s.logger.WithError(err).Error("failed to count contacts")
		s.internalServerError(w)
		return
	}
	if data.TotalRegistrations, err = s.registrationsRepo.CountRegistrations(ctx); err != nil {
		s.logger.WithError(err).Error("failed to count registrations")
		s.internalServerError(w)
		return
	}

	if data.RecentVolunteers, err = s.volunteersRepo.Volunteers(ctx, recentLimit, 0); err != nil {
		s.logger.WithError(err).Error("failed to fetch recent volunteers")
		s.internalServerError(w)
		return
	}
	if data.RecentContacts, err = s.contactsRepo.Contacts(ctx, recentLimit, 0); err != nil {
		s.logger.WithError(err).Error("failed to fetch recent contacts")
		s.internalServerError(w)
		return
	}
	if data.RecentPayments, err = s.paymentsRepo.Payments(ctx, true, recentLimit, 0); err != nil {
		s.logger.WithError(err).Error("failed to fetch recent payments")
		s.internalServerError(w)
		return
	}
	if data.RecentRegistrations, err = s.registrationsRepo.Registrations(ctx, recentLimit, 0); err != nil {
		s.logger.WithError(err).Error("failed to fetch recent registrations")
		s.internalServerError(w)
		return
	}

	if err := s.renderTemplate(w, r, "admin.dashboard", data); err != nil {
		s.logger.WithError(err).Error("failed to render dashboard")
		s.internalServerError(w)
	}
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

type VolunteerListPageData struct {
	types.BasePageData
	Volunteers []*types.VolunteerProfile
	Pagination types.Pagination
}

func (s *Service) handleManageVolunteers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := s.volunteersRepo.CountVolunteers(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to count volunteers")
		s.internalServerError(w)
		return
	}

	pagination := types.NewPagination(pageParam(r), pageSize, total)

	volunteers, err := s.volunteersRepo.Volunteers(ctx, pageSize, uint64(pagination.Offset()))
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch volunteers")
		s.internalServerError(w)
		return
	}

	data := &VolunteerListPageData{Volunteers: volunteers, Pagination: pagination}
	data.Title = "Manage Volunteers"

	if err := s.renderTemplate(w, r, "admin.volunteers", data); err != nil {
		s.logger.WithError(err).Error("failed to render volunteer list")
		s.internalServerError(w)
	}
}

type VolunteerDetailPageData struct {
	types.BasePageData
	Volunteer *types.VolunteerProfile
}

func (s *Service) handleVolunteerDetail(w http.ResponseWriter, r *http.Request) {
	volunteer, err := s.volunteersRepo.Volunteer(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrVolunteerNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to fetch volunteer")
		s.internalServerError(w)
		return
	}

	data := &VolunteerDetailPageData{Volunteer: volunteer}
	data.Title = volunteer.FullName()

	if err := s.renderTemplate(w, r, "admin.volunteer-detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render volunteer detail")
		s.internalServerError(w)
	}
}

type ContactListPageData struct {
	types.BasePageData
	Contacts   []*types.Contact
	Pagination types.Pagination
}

func (s *Service) handleManageContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := s.contactsRepo.CountContacts(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to count contacts")
		s.internalServerError(w)
		return
	}

	pagination := types.NewPagination(pageParam(r), pageSize, total)

	contacts, err := s.contactsRepo.Contacts(ctx, pageSize, uint64(pagination.Offset()))
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch contacts")
		s.internalServerError(w)
		return
	}

	data := &ContactListPageData{Contacts: contacts, Pagination: pagination}
	data.Title = "Manage Contacts"

	if err := s.renderTemplate(w, r, "admin.contacts", data); err != nil {
		s.logger.WithError(err).Error("failed to render contact list")
		s.internalServerError(w)
	}
}

type ContactDetailPageData struct {
	types.BasePageData
	Contact *types.Contact
}

func (s *Service) handleContactDetail(w http.ResponseWriter, r *http.Request) {
	contact, err := s.contactsRepo.Contact(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrContactNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to fetch contact")
		s.internalServerError(w)
		return
	}

	data := &ContactDetailPageData{Contact: contact}
	data.Title = contact.Name

	if err := s.renderTemplate(w, r, "admin.contact-detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render contact detail")
		s.internalServerError(w)
	}
}

type PaymentListPageData struct {
	types.BasePageData
	Payments   []*types.Payment
	Pagination types.Pagination
	ShowingAll bool
}

func (s *Service) handleManagePayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	onlySuccess := !s.config.AdminShowAllPayments

	total, err := s.paymentsRepo.CountPayments(ctx, onlySuccess)
	if err != nil {
		s.logger.WithError(err).Error("failed to count payments")
		s.internalServerError(w)
		return
	}

	pagination := types.NewPagination(pageParam(r), pageSize, total)

	payments, err := s.paymentsRepo.Payments(ctx, onlySuccess, pageSize, uint64(pagination.Offset()))
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch payments")
		s.internalServerError(w)
		return
	}

	data := &PaymentListPageData{
		Payments:   payments,
		Pagination: pagination,
		ShowingAll: s.config.AdminShowAllPayments,
	}
	data.Title = "Manage Payments"

	if err := s.renderTemplate(w, r, "admin.payments", data); err != nil {
		s.logger.WithError(err).Error("failed to render payment list")
		s.internalServerError(w)
	}
}

type PaymentDetailPageData struct {
	types.BasePageData
	Payment *types.Payment
}

func (s *Service) handlePaymentDetail(w http.ResponseWriter, r *http.Request) {
	payment, err := s.paymentsRepo.Payment(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrPaymentNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to fetch payment")
		s.internalServerError(w)
		return
	}

	data := &PaymentDetailPageData{Payment: payment}
	data.Title = "Payment " + payment.TxRef

	if err := s.renderTemplate(w, r, "admin.payment-detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render payment detail")
		s.internalServerError(w)
	}
}

type RegistrationListPageData struct {
	types.BasePageData
	Registrations []*types.FeedingRegistration
	Pagination    types.Pagination
}

func (s *Service) handleManageRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := s.registrationsRepo.CountRegistrations(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to count registrations")
		s.internalServerError(w)
		return
	}

	pagination := types.NewPagination(pageParam(r), pageSize, total)

	registrations, err := s.registrationsRepo.Registrations(ctx, pageSize, uint64(pagination.Offset()))
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch registrations")
		s.internalServerError(w)
		return
	}

	data := &RegistrationListPageData{Registrations: registrations, Pagination: pagination}
	data.Title = "Manage Registrations"

	if err := s.renderTemplate(w, r, "admin.registrations", data); err != nil {
		s.logger.WithError(err).Error("failed to render registration list")
		s.internalServerError(w)
	}
}

type RegistrationDetailPageData struct {
	types.BasePageData
	Registration *types.FeedingRegistration
}

func (s *Service) handleRegistrationDetail(w http.ResponseWriter, r *http.Request) {
	registration, err := s.registrationsRepo.Registration(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, types.ErrRegistrationNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to fetch registration")
		s.internalServerError(w)
		return
	}

	data := &RegistrationDetailPageData{Registration: registration}
	data.Title = registration.FullName

	if err := s.renderTemplate(w, r, "admin.registration-detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render registration detail")
		s.internalServerError(w)
	}
}
