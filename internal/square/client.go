package square

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"squareinvoice/internal/config"
)

// ErrCredentialsMissing is returned before any network call when the access
// token or location id is not configured.
var ErrCredentialsMissing = errors.New("square api credentials are missing")

// GatewayError carries the upstream failure message so handlers can surface
// it verbatim without leaking transport detail.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("square: %s (status %d)", e.Message, e.StatusCode)
	}
	return "square: " + e.Message
}

// PaymentLink is the result of a payment-link creation. Raw keeps the full
// gateway response body for the client-facing envelope.
type PaymentLink struct {
	URL string
	Raw json.RawMessage
}

// CreatePaymentLinkParams mirrors the quick-pay creation request.
type CreatePaymentLinkParams struct {
	IdempotencyKey string
	AmountCents    int64
	Currency       string
	PayerName      string
	Description    string
	PaymentNote    string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	locationID string
	version    string
}

func NewClient(cfg config.Square) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL(),
		token:      cfg.AccessToken,
		locationID: cfg.LocationID,
		version:    cfg.Version,
	}
}

type moneyPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type quickPayPayload struct {
	LocationID string       `json:"location_id"`
	PriceMoney moneyPayload `json:"price_money"`
	Name       string       `json:"name"`
}

type createPaymentLinkPayload struct {
	IdempotencyKey string          `json:"idempotency_key"`
	QuickPay       quickPayPayload `json:"quick_pay"`
	Description    string          `json:"description,omitempty"`
	PaymentNote    string          `json:"payment_note,omitempty"`
}

type paymentLinkBody struct {
	PaymentLink struct {
		URL string `json:"url"`
	} `json:"payment_link"`
	Errors []struct {
		Category string `json:"category"`
		Code     string `json:"code"`
		Detail   string `json:"detail"`
	} `json:"errors"`
}

// CreatePaymentLink calls the Square online-checkout payment-links endpoint
// and returns the hosted checkout URL together with the raw response.
func (c *Client) CreatePaymentLink(ctx context.Context, params CreatePaymentLinkParams) (*PaymentLink, error) {
	if c.token == "" || c.locationID == "" {
		return nil, ErrCredentialsMissing
	}

	payload := createPaymentLinkPayload{
		IdempotencyKey: params.IdempotencyKey,
		QuickPay: quickPayPayload{
			LocationID: c.locationID,
			PriceMoney: moneyPayload{Amount: params.AmountCents, Currency: params.Currency},
			Name:       params.PayerName,
		},
		Description: params.Description,
		PaymentNote: params.PaymentNote,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/online-checkout/payment-links", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Square-Version", c.version)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Message: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &GatewayError{StatusCode: res.StatusCode, Message: err.Error()}
	}

	var parsed paymentLinkBody
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &GatewayError{StatusCode: res.StatusCode, Message: "malformed gateway response"}
	}

	if res.StatusCode >= 400 {
		msg := fmt.Sprintf("gateway returned status %d", res.StatusCode)
		if len(parsed.Errors) > 0 && parsed.Errors[0].Detail != "" {
			msg = parsed.Errors[0].Detail
		}
		return nil, &GatewayError{StatusCode: res.StatusCode, Message: msg}
	}

	if parsed.PaymentLink.URL == "" {
		return nil, &GatewayError{StatusCode: res.StatusCode, Message: "no payment link url in gateway response"}
	}

	return &PaymentLink{URL: parsed.PaymentLink.URL, Raw: raw}, nil
}
