// Package paygateway wraps the external payment provider behind an opaque
// create-intent capability. The workflow core persists nothing at intent
// time; everything the client needs comes back in the Intent handle.
package paygateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Intent is the client-usable handle returned by the gateway
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Gateway is the capability the payment coordinator depends on
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

// Client represents a payment gateway client
type Client struct {
	BaseURL     string
	APIKey      string
	MockGateway bool
	client      *http.Client
}

// NewClient creates a new payment gateway client
func NewClient(baseURL, apiKey string, mockGateway bool) *Client {
	return &Client{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		MockGateway: mockGateway,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateIntent creates a payment intent for an integer minor-unit amount
func (c *Client) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	if c.MockGateway {
		return c.mockCreateIntent(amount, currency)
	}

	body, err := json.Marshal(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/payment_intents", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

// mockCreateIntent mocks the gateway for local development and testing
func (c *Client) mockCreateIntent(amount int64, currency string) (*Intent, error) {
	ref := uuid.NewString()
	return &Intent{
		ID:           "pi_" + ref,
		ClientSecret: fmt.Sprintf("pi_%s_secret_%s", ref, uuid.NewString()),
		Amount:       amount,
		Currency:     currency,
	}, nil
}
