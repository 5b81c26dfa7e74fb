package sms

import (
	"context"
	"encoding/json"
	"net/http"

	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/httpclient"
)

// Client dispatches SMS messages through an HTTP gateway
type Client struct {
	http     httpclient.Client
	enabled  bool
	url      string
	apiKey   string
	senderID string
}

// Config holds the SMS gateway configuration
type Config struct {
	Enabled    bool
	GatewayURL string
	APIKey     string
	SenderID   string
}

// NewClient creates a new SMS client
func NewClient(cfg Config, http httpclient.Client) *Client {
	if !cfg.Enabled || cfg.GatewayURL == "" {
		return &Client{enabled: false}
	}

	return &Client{
		http:     http,
		enabled:  true,
		url:      cfg.GatewayURL,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
	}
}

// IsEnabled returns whether the SMS client is enabled
func (c *Client) IsEnabled() bool {
	return c.enabled
}

type sendRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	SenderID string `json:"sender_id,omitempty"`
}

// SendSMS sends a text message to the given phone number
func (c *Client) SendSMS(ctx context.Context, to, message string) error {
	if !c.enabled {
		return ierr.NewError("sms client is disabled").
			WithHint("SMS dispatch is not configured").
			Mark(ierr.ErrInvalidOperation)
	}

	body, err := json.Marshal(sendRequest{
		To:       to,
		Message:  message,
		SenderID: c.senderID,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to encode sms payload").
			Mark(ierr.ErrSystem)
	}

	req := &httpclient.Request{
		Method: http.MethodPost,
		URL:    c.url,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		Body: body,
	}

	if _, err := c.http.Send(ctx, req); err != nil {
		return ierr.WithError(err).
			WithHint("sms gateway request failed").
			Mark(ierr.ErrHTTPClient)
	}

	return nil
}
