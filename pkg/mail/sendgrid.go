package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/teamflowhq/teamflow-backend/pkg/config"
)

const defaultSendgridURL = "https://api.sendgrid.com/v3/mail/send"

// SendgridClient delivers mail through the Sendgrid v3 HTTP API.
type SendgridClient struct {
	apiKey     string
	fromEmail  string
	fromName   string
	url        string
	maxRetries uint64
	httpClient *http.Client
}

// NewSendgridClient builds a Sendgrid-backed mailer from configuration.
func NewSendgridClient(cfg config.MailConfig) (*SendgridClient, error) {
	if strings.TrimSpace(cfg.SendgridAPIKey) == "" {
		return nil, fmt.Errorf("sendgrid api key required")
	}
	if strings.TrimSpace(cfg.FromEmail) == "" {
		return nil, fmt.Errorf("from email required")
	}
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &SendgridClient{
		apiKey:     cfg.SendgridAPIKey,
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		url:        defaultSendgridURL,
		maxRetries: uint64(retries),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type sendgridPayload struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendgridContent         `json:"content"`
}

type sendgridPersonalization struct {
	To []sendgridAddress `json:"to"`
}

type sendgridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send posts the message, retrying transient failures with backoff.
func (c *SendgridClient) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("recipient required")
	}

	body, err := json.Marshal(sendgridPayload{
		Personalizations: []sendgridPersonalization{{
			To: []sendgridAddress{{Email: msg.To, Name: msg.ToName}},
		}},
		From:    sendgridAddress{Email: c.fromEmail, Name: c.fromName},
		Subject: msg.Subject,
		Content: []sendgridContent{{Type: "text/html", Value: msg.HTML}},
	})
	if err != nil {
		return fmt.Errorf("marshal sendgrid payload: %w", err)
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.post(ctx, body)
	})
}

func (c *SendgridClient) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendgrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.RetryableError(fmt.Errorf("sendgrid request: %w", err))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return retry.RetryableError(fmt.Errorf("sendgrid responded %d", resp.StatusCode))
	default:
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}
}
