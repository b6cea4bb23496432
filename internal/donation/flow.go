// Package donation orchestrates the payment lifecycle: create a pending
// Payment, hand the donor to the gateway's checkout, and settle the final
// status from the gateway's callback and verify endpoint.
package donation

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"rotomethiopia/internal/chapa"
	"rotomethiopia/internal/forms"
	"rotomethiopia/pkg/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StatusUnknown is what the status page shows for a tx_ref it cannot resolve.
const StatusUnknown = "unknown"

// ErrGatewayFailed covers every way the initialize call can go wrong:
// non-success answer, unparseable body, network failure, timeout. The
// matching Payment has already been marked failed when this is returned.
var ErrGatewayFailed = errors.New("payment gateway failure")

type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *types.Payment) error
	PaymentByTxRef(ctx context.Context, txRef string) (*types.Payment, error)
	UpdatePaymentStatus(ctx context.Context, txRef string, status types.PaymentStatus) error
}

type Gateway interface {
	Initialize(ctx context.Context, req *chapa.InitializeRequest) (string, error)
	Verify(ctx context.Context, txRef string) (*chapa.VerifyResponse, error)
}

type Flow struct {
	payments PaymentStore
	gateway  Gateway
	config   *types.Config
	logger   *logrus.Logger
}

func NewFlow(payments PaymentStore, gateway Gateway, config *types.Config, logger *logrus.Logger) *Flow {
	return &Flow{
		payments: payments,
		gateway:  gateway,
		config:   config,
		logger:   logger,
	}
}

// Initiate validates the donation form, records a pending Payment, and asks
// the gateway for a checkout URL. Field errors mean no Payment row was
// created. ErrGatewayFailed means a Payment exists and is already failed.
func (f *Flow) Initiate(ctx context.Context, form *forms.DonationForm) (string, forms.Errors, error) {
	amount, errs := form.Validate(f.config.MinDonationAmount, f.config.DonationCurrency, f.config.LocalPhonePrefixes)
	if errs.Any() {
		return "", errs, nil
	}

	txRef := fmt.Sprintf("ROTOM-%s", uuid.NewString())

	payment := &types.Payment{
		Amount:      amount,
		TxRef:       txRef,
		Status:      types.PaymentStatusPending,
		Email:       form.Email,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		PhoneNumber: form.PhoneNumber,
	}

	if err := f.payments.CreatePayment(ctx, payment); err != nil {
		return "", nil, fmt.Errorf("failed to create payment record: %w", err)
	}

	checkoutURL, err := f.gateway.Initialize(ctx, &chapa.InitializeRequest{
		Amount:      strconv.FormatFloat(amount, 'f', -1, 64),
		Currency:    f.config.DonationCurrency,
		Email:       form.Email,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		PhoneNumber: form.PhoneNumber,
		TxRef:       txRef,
		CallbackURL: fmt.Sprintf("%s/payment/callback", f.config.BaseURL),
		ReturnURL:   fmt.Sprintf("%s/payment/success?tx_ref=%s", f.config.BaseURL, txRef),
		Customization: chapa.Customization{
			Title:       "ROTOM Donation",
			Description: "Support our seniors in Ethiopia",
		},
	})
	if err != nil {
		f.logger.WithError(err).WithField("tx_ref", txRef).Error("gateway initialize failed")

		if updateErr := f.payments.UpdatePaymentStatus(ctx, txRef, types.PaymentStatusFailed); updateErr != nil {
			f.logger.WithError(updateErr).WithField("tx_ref", txRef).Error("failed to mark payment failed")
		}

		var gwErr *chapa.GatewayError
		if errors.As(err, &gwErr) {
			return "", nil, fmt.Errorf("%w: %s", ErrGatewayFailed, gwErr.Message)
		}
		return "", nil, ErrGatewayFailed
	}

	return checkoutURL, nil, nil
}

// HandleCallback settles the Payment for a gateway callback. An unknown
// tx_ref is logged and otherwise ignored so the gateway never sees an error.
// Repeated callbacks are idempotent: re-writing the same terminal status is
// fine, but a settled Payment is never flipped to a different status.
func (f *Flow) HandleCallback(ctx context.Context, txRef, status string) error {
	if txRef == "" || status == "" {
		return nil
	}

	payment, err := f.payments.PaymentByTxRef(ctx, txRef)
	if err != nil {
		if errors.Is(err, types.ErrPaymentNotFound) {
			f.logger.WithField("tx_ref", txRef).Warn("callback for unknown payment")
			return nil
		}
		return fmt.Errorf("failed to look up payment %s: %w", txRef, err)
	}

	final := types.PaymentStatusFailed
	if status == "success" {
		verifyResp, err := f.gateway.Verify(ctx, txRef)
		if err != nil {
			f.logger.WithError(err).WithField("tx_ref", txRef).Error("gateway verify failed")
		} else if verifyResp.Success() {
			final = types.PaymentStatusSuccess
		} else {
			f.logger.WithFields(logrus.Fields{
				"tx_ref": txRef,
				"status": verifyResp.Status,
			}).Warn("verify did not confirm success")
		}
	}

	if payment.Status.Terminal() && payment.Status != final {
		f.logger.WithFields(logrus.Fields{
			"tx_ref":   txRef,
			"current":  payment.Status,
			"incoming": final,
		}).Warn("ignoring callback for settled payment")
		return nil
	}

	if err := f.payments.UpdatePaymentStatus(ctx, txRef, final); err != nil {
		return fmt.Errorf("failed to update payment %s: %w", txRef, err)
	}

	return nil
}

// Status is the read side of the return-url landing page. It never blocks
// waiting for a callback; it reports whatever is stored right now.
func (f *Flow) Status(ctx context.Context, txRef string) (string, error) {
	payment, err := f.payments.PaymentByTxRef(ctx, txRef)
	if err != nil {
		if errors.Is(err, types.ErrPaymentNotFound) {
			return StatusUnknown, nil
		}
		return "", fmt.Errorf("failed to look up payment %s: %w", txRef, err)
	}

	return string(payment.Status), nil
}
