// Package chapa wraps the payment provider's transaction-initialize and
// transaction-verify endpoints.
package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const statusSuccess = "success"

// GatewayError is a well-formed non-success answer from the provider, as
// opposed to a transport or decoding failure.
type GatewayError struct {
	Status  string
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %q", e.Status)
	}
	return fmt.Sprintf("gateway returned status %q: %s", e.Status, e.Message)
}

type Customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type InitializeRequest struct {
	Amount        string        `json:"amount"` // the provider expects a string
	Currency      string        `json:"currency"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	PhoneNumber   string        `json:"phone_number"`
	TxRef         string        `json:"tx_ref"`
	CallbackURL   string        `json:"callback_url"`
	ReturnURL     string        `json:"return_url"`
	Customization Customization `json:"customization"`
}

type InitializeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

type VerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (r *VerifyResponse) Success() bool {
	return r.Status == statusSuccess
}

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			// A stuck gateway call should fail the donation, not hang the
			// request handler.
			Timeout: 10 * time.Second,
		},
	}
}

// Initialize registers the transaction with the provider and returns the
// hosted checkout URL the donor should be redirected to.
func (c *Client) Initialize(ctx context.Context, initReq *InitializeRequest) (string, error) {
	payload, err := json.Marshal(initReq)
	if err != nil {
		return "", fmt.Errorf("failed to encode initialize request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/transaction/initialize", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create initialize request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.secretKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call initialize endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read initialize response: %w", err)
	}

	var initResp InitializeResponse
	if err := json.Unmarshal(body, &initResp); err != nil {
		return "", fmt.Errorf("failed to decode initialize response (status %d): %w", resp.StatusCode, err)
	}

	if initResp.Status != statusSuccess {
		return "", &GatewayError{Status: initResp.Status, Message: initResp.Message}
	}

	if initResp.Data.CheckoutURL == "" {
		return "", fmt.Errorf("initialize succeeded but no checkout_url returned")
	}

	return initResp.Data.CheckoutURL, nil
}

// Verify asks the provider for the authoritative outcome of a transaction.
func (c *Client) Verify(ctx context.Context, txRef string) (*VerifyResponse, error) {
	url := fmt.Sprintf("%s/v1/transaction/verify/%s", c.baseURL, txRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create verify request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.secretKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call verify endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read verify response: %w", err)
	}

	var verifyResp VerifyResponse
	if err := json.Unmarshal(body, &verifyResp); err != nil {
		return nil, fmt.Errorf("failed to decode verify response (status %d): %w", resp.StatusCode, err)
	}

	return &verifyResp, nil
}
