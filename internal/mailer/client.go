// Package mailer provides a lightweight client for the transactional email
// API used for contact-form notifications. Uses raw HTTP calls (no SDK) to
// minimize external dependencies.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("mailer: not configured")

// Message is one outbound email.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ReplyTo string `json:"reply_to,omitempty"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Client is the mail-sending interface used by the notification dispatcher.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// RealClient posts messages to a Resend-compatible REST API.
type RealClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a RealClient. An empty apiKey produces an unconfigured
// client whose Send always returns ErrNotConfigured.
func NewClient(baseURL, apiKey string) *RealClient {
	return &RealClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Client = (*RealClient)(nil)

// Configured reports whether an API key is present.
func (c *RealClient) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// Send delivers one message. Any non-2xx response is an error; the caller
// decides whether delivery failures matter.
func (c *RealClient) Send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mailer: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailer: send failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}
