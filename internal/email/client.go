package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Client wraps the outbound email provider
type Client struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
	replyTo     string
}

// Config holds the email client configuration
type Config struct {
	Enabled     bool
	APIKey      string
	FromAddress string
	ReplyTo     string
}

// NewClient creates a new email client. A disabled or unconfigured client is
// returned as a no-op that fails on send.
func NewClient(cfg Config) *Client {
	if !cfg.Enabled || cfg.APIKey == "" {
		return &Client{enabled: false}
	}

	return &Client{
		client:      resend.NewClient(cfg.APIKey),
		enabled:     true,
		fromAddress: cfg.FromAddress,
		replyTo:     cfg.ReplyTo,
	}
}

// IsEnabled returns whether the email client is enabled
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// GetFromAddress returns the default from address
func (c *Client) GetFromAddress() string {
	return c.fromAddress
}

// SendEmail sends an HTML email with optional attachments and returns the
// provider message id
func (c *Client) SendEmail(ctx context.Context, from, to, subject, htmlContent string, attachments []Attachment) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("email client is disabled")
	}

	if from == "" {
		from = c.fromAddress
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
		ReplyTo: c.replyTo,
	}

	for _, a := range attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}

// Attachment is a file attached to an outbound email
type Attachment struct {
	Filename string
	Content  []byte
}
