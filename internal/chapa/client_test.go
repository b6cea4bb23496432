package chapa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInitializeSuccess(t *testing.T) {
	var gotAuth, gotContentType string
	var gotReq InitializeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/transaction/initialize" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "success",
			"message": "Hosted Link",
			"data":    map[string]string{"checkout_url": "https://checkout.chapa.co/checkout/payment/abc123"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "CHASECK_TEST-secret")

	checkoutURL, err := client.Initialize(context.Background(), &InitializeRequest{
		Amount:   "100",
		Currency: "ETB",
		Email:    "donor@example.com",
		TxRef:    "ROTOM-test-ref",
	})
	if err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if checkoutURL != "https://checkout.chapa.co/checkout/payment/abc123" {
		t.Errorf("unexpected checkout URL: %q", checkoutURL)
	}
	if gotAuth != "Bearer CHASECK_TEST-secret" {
		t.Errorf("unexpected Authorization header: %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("unexpected Content-Type: %q", gotContentType)
	}
	if gotReq.Amount != "100" || gotReq.TxRef != "ROTOM-test-ref" {
		t.Errorf("request body not forwarded: %+v", gotReq)
	}
}

func TestInitializeDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "failed",
			"message": "Invalid currency",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")

	_, err := client.Initialize(context.Background(), &InitializeRequest{Amount: "100"})
	if err == nil {
		t.Fatal("expected an error for a declined initialize")
	}

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected a GatewayError, got %T: %v", err, err)
	}
	if gwErr.Status != "failed" || gwErr.Message != "Invalid currency" {
		t.Errorf("unexpected gateway error: %+v", gwErr)
	}
}

func TestInitializeMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway exploded</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")

	if _, err := client.Initialize(context.Background(), &InitializeRequest{Amount: "100"}); err == nil {
		t.Fatal("expected an error for a non-JSON body")
	}

	var gwErr *GatewayError
	if _, err := client.Initialize(context.Background(), &InitializeRequest{}); errors.As(err, &gwErr) {
		t.Error("a decode failure should not look like a gateway decline")
	}
}

func TestInitializeMissingCheckoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": map[string]string{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")

	if _, err := client.Initialize(context.Background(), &InitializeRequest{Amount: "100"}); err == nil {
		t.Fatal("expected an error when checkout_url is absent")
	}
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/transaction/verify/ROTOM-test-ref" {
			t.Errorf("unexpected verify path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("unexpected Authorization header: %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Payment verified"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")

	resp, err := client.Verify(context.Background(), "ROTOM-test-ref")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !resp.Success() {
		t.Errorf("expected a successful verification, got %+v", resp)
	}
}

func TestVerifyFailedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "failed", "message": "card declined"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")

	resp, err := client.Verify(context.Background(), "ROTOM-test-ref")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if resp.Success() {
		t.Error("a failed verification must not report success")
	}
}
