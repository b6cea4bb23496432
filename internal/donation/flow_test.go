package donation

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"rotomethiopia/internal/chapa"
	"rotomethiopia/internal/forms"
	"rotomethiopia/pkg/types"

	"github.com/sirupsen/logrus"
)

type fakePaymentStore struct {
	createFn       func(ctx context.Context, payment *types.Payment) error
	byTxRefFn      func(ctx context.Context, txRef string) (*types.Payment, error)
	updateStatusFn func(ctx context.Context, txRef string, status types.PaymentStatus) error
}

func (f *fakePaymentStore) CreatePayment(ctx context.Context, payment *types.Payment) error {
	return f.createFn(ctx, payment)
}

func (f *fakePaymentStore) PaymentByTxRef(ctx context.Context, txRef string) (*types.Payment, error) {
	return f.byTxRefFn(ctx, txRef)
}

func (f *fakePaymentStore) UpdatePaymentStatus(ctx context.Context, txRef string, status types.PaymentStatus) error {
	return f.updateStatusFn(ctx, txRef, status)
}

type fakeGateway struct {
	initializeFn func(ctx context.Context, req *chapa.InitializeRequest) (string, error)
	verifyFn     func(ctx context.Context, txRef string) (*chapa.VerifyResponse, error)
}

func (f *fakeGateway) Initialize(ctx context.Context, req *chapa.InitializeRequest) (string, error) {
	return f.initializeFn(ctx, req)
}

func (f *fakeGateway) Verify(ctx context.Context, txRef string) (*chapa.VerifyResponse, error) {
	return f.verifyFn(ctx, txRef)
}

func testConfig() *types.Config {
	return &types.Config{
		BaseURL:            "https://rotom.example.org",
		MinDonationAmount:  50,
		DonationCurrency:   "ETB",
		LocalPhonePrefixes: []string{"09", "07"},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func validDonation() *forms.DonationForm {
	return &forms.DonationForm{
		Amount:    "100",
		Email:     "donor@example.com",
		FirstName: "Hana",
		LastName:  "Bekele",
	}
}

func TestInitiateRejectsBelowMinimumWithoutRecord(t *testing.T) {
	store := &fakePaymentStore{
		createFn: func(ctx context.Context, payment *types.Payment) error {
			t.Error("CreatePayment must not be called for an invalid form")
			return nil
		},
	}

	flow := NewFlow(store, &fakeGateway{}, testConfig(), testLogger())

	form := validDonation()
	form.Amount = "10"

	_, errs, err := flow.Initiate(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := errs.First("amount"); got != "Minimum donation amount is 50 ETB." {
		t.Errorf("unexpected amount error: %q", got)
	}
}

func TestInitiateRejectsBadEmailWithoutRecord(t *testing.T) {
	store := &fakePaymentStore{
		createFn: func(ctx context.Context, payment *types.Payment) error {
			t.Error("CreatePayment must not be called for an invalid form")
			return nil
		},
	}

	flow := NewFlow(store, &fakeGateway{}, testConfig(), testLogger())

	form := validDonation()
	form.Email = "not-an-email"

	_, errs, err := flow.Initiate(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(errs["email"]) == 0 {
		t.Errorf("expected an email error, got %v", errs)
	}
}

func TestInitiateCreatesPendingPaymentBeforeGatewayCall(t *testing.T) {
	var created *types.Payment
	var createdBeforeInitialize bool

	store := &fakePaymentStore{
		createFn: func(ctx context.Context, payment *types.Payment) error {
			created = payment
			return nil
		},
	}
	gateway := &fakeGateway{
		initializeFn: func(ctx context.Context, req *chapa.InitializeRequest) (string, error) {
			createdBeforeInitialize = created != nil
			if req.TxRef != created.TxRef {
				t.Errorf("gateway got tx_ref %q, payment has %q", req.TxRef, created.TxRef)
			}
			if req.Amount != "100" {
				t.Errorf("gateway amount should be the string form, got %q", req.Amount)
			}
			if req.Currency != "ETB" {
				t.Errorf("unexpected currency %q", req.Currency)
			}
			if req.CallbackURL != "https://rotom.example.org/payment/callback" {
				t.Errorf("unexpected callback URL %q", req.CallbackURL)
			}
			if req.Customization.Title != "ROTOM Donation" {
				t.Errorf("unexpected customization title %q", req.Customization.Title)
			}
			return "https://checkout.example.com/abc", nil
		},
	}

	flow := NewFlow(store, gateway, testConfig(), testLogger())

	checkoutURL, errs, err := flow.Initiate(context.Background(), validDonation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errs.Any() {
		t.Fatalf("unexpected field errors: %v", errs)
	}
	if checkoutURL != "https://checkout.example.com/abc" {
		t.Errorf("unexpected checkout URL %q", checkoutURL)
	}

	if !createdBeforeInitialize {
		t.Error("the pending payment must exist before the gateway is called")
	}
	if created.Status != types.PaymentStatusPending {
		t.Errorf("payment created with status %q, want pending", created.Status)
	}
	if !strings.HasPrefix(created.TxRef, "ROTOM-") {
		t.Errorf("tx_ref %q should carry the ROTOM- prefix", created.TxRef)
	}
	if created.Amount != 100 {
		t.Errorf("payment amount = %g, want 100", created.Amount)
	}
}

func TestInitiateMarksPaymentFailedWhenGatewayErrors(t *testing.T) {
	var failedTxRef string
	var createdTxRef string

	store := &fakePaymentStore{
		createFn: func(ctx context.Context, payment *types.Payment) error {
			createdTxRef = payment.TxRef
			return nil
		},
		updateStatusFn: func(ctx context.Context, txRef string, status types.PaymentStatus) error {
			if status != types.PaymentStatusFailed {
				t.Errorf("expected the payment to be marked failed, got %q", status)
			}
			failedTxRef = txRef
			return nil
		},
	}
	gateway := &fakeGateway{
		initializeFn: func(ctx context.Context, req *chapa.InitializeRequest) (string, error) {
			return "", &chapa.GatewayError{Status: "failed", Message: "Invalid currency"}
		},
	}

	flow := NewFlow(store, gateway, testConfig(), testLogger())

	_, _, err := flow.Initiate(context.Background(), validDonation())
	if !errors.Is(err, ErrGatewayFailed) {
		t.Fatalf("expected ErrGatewayFailed, got %v", err)
	}
	if failedTxRef == "" || failedTxRef != createdTxRef {
		t.Errorf("failed tx_ref %q does not match created %q", failedTxRef, createdTxRef)
	}
}

func TestHandleCallbackVerifiesBeforeSettlingSuccess(t *testing.T) {
	var updated types.PaymentStatus
	var verified bool

	store := &fakePaymentStore{
		byTxRefFn: func(ctx context.Context, txRef string) (*types.Payment, error) {
			return &types.Payment{TxRef: txRef, Status: types.PaymentStatusPending}, nil
		},
		updateStatusFn: func(ctx context.Context, txRef string, status types.PaymentStatus) error {
			updated = status
			return nil
		},
	}
	gateway := &fakeGateway{
		verifyFn: func(ctx context.Context, txRef string) (*chapa.VerifyResponse, error) {
			verified = true
			return &chapa.VerifyResponse{Status: "success"}, nil
		},
	}

	flow := NewFlow(store, gateway, testConfig(), testLogger())

	if err := flow.HandleCallback(context.Background(), "ROTOM-abc", "success"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verified {
		t.Error("a success callback must be confirmed against the verify endpoint")
	}
	if updated != types.PaymentStatusSuccess {
		t.Errorf("payment settled as %q, want success", updated)
	}
}

func TestHandleCallbackVerifyMismatchSettlesFailed(t *testing.T) {
	var updated types.PaymentStatus

	store := &fakePaymentStore{
		byTxRefFn: func(ctx context.Context, txRef string) (*types.Payment, error) {
			return &types.Payment{TxRef: txRef, Status: types.PaymentStatusPending}, nil
		},
		updateStatusFn: func(ctx context.Context, txRef string, status types.PaymentStatus) error {
			updated = status
			return nil
		},
	}
	gateway := &fakeGateway{
		verifyFn: func(ctx context.Context, txRef string) (*chapa.VerifyResponse, error) {
			return &chapa.VerifyResponse{Status: "failed", Message: "card declined"}, nil
		},
	}

	flow := NewFlow(store, gateway, testConfig(), testLogger())

	if err := flow.HandleCallback(context.Background(), "ROTOM-abc", "success"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != types.PaymentStatusFailed {
		t.Errorf("payment settled as %q, want failed when verify disagrees", updated)
	}
}

func TestHandleCallbackNonSuccessSkipsVerify(t *testing.T) {
	var updated types.PaymentStatus

	store := &fakePaymentStore{
		byTxRefFn: func(ctx context.Context, txRef string) (*types.Payment, error) {
			return &types.Payment{TxRef: txRef, Status: types.PaymentStatusPending}, nil
		},
		updateStatusFn: func(ctx context.Context, txRef string, status types.PaymentStatus) error {
			updated = status
			return nil
		},
	}
	gateway := &fakeGateway{
		verifyFn: func(ctx context.Context, txRef string) (*chapa.VerifyResponse, error) {
			t.Error("verify must not be called for a failed callback")
			return nil, nil
		},
	}

	flow := NewFlow(store, gateway, testConfig(), testLogger())

	if err := flow.HandleCallback(context.Background(), "ROTOM-abc", "failed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != types.PaymentStatusFailed {
		t.Errorf("payment settled as %q, want failed", updated)
	}
}

func TestHandleCallbackIsIdempotentForSameStatus(t *testing.T) {
	var updates int

	store := &fakePaymentStore{
		byTxRefFn: func(ctx context.Context, txRef string) (*types.Payment, error) {
			return &types.Payment{TxRef: txRef, Status: types.PaymentStatusSuccess}, nil
		},
		updateStatusFn: func(ctx context.Context, txRef string, status types.PaymentStatus) error {
			if status != types.PaymentStatusSuccess {
				t.Errorf("repeat callback tried to write %q", status)
			}
			updates++
			return nil
		},
	}
	gateway := &fakeGateway{
		verifyFn: func(ctx context.Context, txRef string) (*chapa.VerifyResponse, error) {
			return &chapa.VerifyResponse{Status: "success"}, nil
		},
	}

	flow := NewFlow(store, gateway, testConfig(), testLogger())

	if err := flow.HandleCallback(context.Background(), "ROTOM-abc", "success"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updates != 1 {
		t.Errorf("expected the same terminal status to be writable, got %d updates", updates)
	}
}

func TestHandleCallbackNeverFlipsSettledPayment(t *testing.T) {
	store := &fakePaymentStore{
		byTxRefFn: func(ctx context.Context, txRef string) (*types.Payment, error) {
			return &types.Payment{TxRef: txRef, Status: types.PaymentStatusSuccess}, nil
		},
		updateStatusFn: func(ctx context.Context, txRef string, status types.PaymentStatus) error {
			t.Errorf("a settled payment must not be rewritten, attempted %q", status)
			return nil
		},
	}

	flow := NewFlow(store, &fakeGateway{}, testConfig(), testLogger())

	if err := flow.HandleCallback(context.Background(), "ROTOM-abc", "failed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleCallbackIgnoresUnknownTxRef(t *testing.T) {
	store := &fakePaymentStore{
		byTxRefFn: func(ctx context.Context, txRef string) (*types.Payment, error) {
			return nil, types.ErrPaymentNotFound
		},
	}

	flow := NewFlow(store, &fakeGateway{}, testConfig(), testLogger())

	if err := flow.HandleCallback(context.Background(), "ROTOM-nope", "success"); err != nil {
		t.Fatalf("an unknown tx_ref must not error, got %v", err)
	}
}

func TestHandleCallbackIgnoresEmptyParams(t *testing.T) {
	store := &fakePaymentStore{
		byTxRefFn: func(ctx context.Context, txRef string) (*types.Payment, error) {
			t.Error("empty callback params must not hit the store")
			return nil, nil
		},
	}

	flow := NewFlow(store, &fakeGateway{}, testConfig(), testLogger())

	if err := flow.HandleCallback(context.Background(), "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := flow.HandleCallback(context.Background(), "ROTOM-abc", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatus(t *testing.T) {
	store := &fakePaymentStore{
		byTxRefFn: func(ctx context.Context, txRef string) (*types.Payment, error) {
			if txRef == "ROTOM-known" {
				return &types.Payment{TxRef: txRef, Status: types.PaymentStatusPending}, nil
			}
			return nil, types.ErrPaymentNotFound
		},
	}

	flow := NewFlow(store, &fakeGateway{}, testConfig(), testLogger())

	status, err := flow.Status(context.Background(), "ROTOM-known")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "pending" {
		t.Errorf("status = %q, want pending", status)
	}

	status, err = flow.Status(context.Background(), "ROTOM-unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusUnknown {
		t.Errorf("status = %q, want %q", status, StatusUnknown)
	}
}
