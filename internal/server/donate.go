package server

import (
	"errors"
	"net/http"
	"net/url"

	"rotomethiopia/internal/donation"
	"rotomethiopia/internal/forms"
	"rotomethiopia/pkg/types"
)

type DonatePageData struct {
	types.BasePageData
	Form          *forms.DonationForm
	FormErrors    forms.Errors
	MinimumAmount float64
	Currency      string
}

func (s *Service) handleGetDonate(w http.ResponseWriter, r *http.Request) {
	s.renderDonatePage(w, r, &forms.DonationForm{}, forms.Errors{}, r.URL.Query().Get("error"))
}

// handlePostDonate blocks on the gateway's initialize call; on success the
// donor's browser is sent to the hosted checkout page.
func (s *Service) handlePostDonate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Warn("failed to parse donation form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	var donationForm = new(forms.DonationForm)
	if err := decoder.Decode(donationForm, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode donation form")
		s.internalServerError(w)
		return
	}

	checkoutURL, errs, err := s.donations.Initiate(r.Context(), donationForm)
	if errs.Any() {
		s.logger.WithField("errors", errs).Warn("donation form validation failed")
		s.renderDonatePage(w, r, donationForm, errs, "")
		return
	}
	if err != nil {
		if errors.Is(err, donation.ErrGatewayFailed) {
			s.renderDonatePage(w, r, donationForm, forms.Errors{},
				"Failed to initiate payment. Please try again.")
			return
		}
		s.logger.WithError(err).Error("failed to initiate donation")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, checkoutURL, http.StatusSeeOther)
}

// handlePaymentCallback is the gateway's server-to-server notification. The
// outcome never reaches the gateway as an error; the browser is always sent
// on to the status page.
func (s *Service) handlePaymentCallback(w http.ResponseWriter, r *http.Request) {
	txRef := r.URL.Query().Get("tx_ref")
	status := r.URL.Query().Get("status")

	if err := s.donations.HandleCallback(r.Context(), txRef, status); err != nil {
		s.logger.WithError(err).WithField("tx_ref", txRef).Error("payment callback failed")
	}

	target := "/payment/success"
	if txRef != "" {
		v := url.Values{}
		v.Set("tx_ref", txRef)
		target += "?" + v.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type PaymentStatusPageData struct {
	types.BasePageData
	TxRef  string
	Status string
}

// handlePaymentSuccess is the return-url landing page. It only reads what is
// stored; a callback that already settled the payment wins.
func (s *Service) handlePaymentSuccess(w http.ResponseWriter, r *http.Request) {
	txRef := r.URL.Query().Get("tx_ref")

	status := donation.StatusUnknown
	if txRef != "" {
		var err error
		status, err = s.donations.Status(r.Context(), txRef)
		if err != nil {
			s.logger.WithError(err).WithField("tx_ref", txRef).Error("failed to read payment status")
			s.internalServerError(w)
			return
		}
	}

	data := &PaymentStatusPageData{
		TxRef:  txRef,
		Status: status,
	}
	data.Title = "Payment Status"

	if err := s.renderTemplate(w, r, "page.payment-status", data); err != nil {
		s.logger.WithError(err).Error("failed to render payment status page")
		s.internalServerError(w)
	}
}

func (s *Service) renderDonatePage(w http.ResponseWriter, r *http.Request, donationForm *forms.DonationForm, errs forms.Errors, errorMsg string) {
	data := &DonatePageData{
		Form:          donationForm,
		FormErrors:    errs,
		MinimumAmount: s.config.MinDonationAmount,
		Currency:      s.config.DonationCurrency,
	}
	data.Title = "Donate"
	data.Error = errorMsg

	if errs.Any() {
		w.WriteHeader(http.StatusBadRequest)
	}

	if err := s.renderTemplate(w, r, "page.donate", data); err != nil {
		s.logger.WithError(err).Error("failed to render donate page")
		s.internalServerError(w)
	}
}
