package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/paleotommytechy/portfolio/errs"
	"github.com/paleotommytechy/portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Mailer delivers contact form messages to the site owner through Resend.
type Mailer struct {
	apiKey   string
	from     string
	to       string
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewMailer needs RESEND_API_KEY, RESEND_FROM_EMAIL and CONTACT_EMAIL values.
// Missing values are reported when a message is sent, not here.
func NewMailer(apiKey, from, to string) *Mailer {
	return &Mailer{
		apiKey:   apiKey,
		from:     from,
		to:       to,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   log.With().Str("component", "mailer").Logger(),
	}
}

// SendContactMessage forwards a visitor's message to the contact address.
func (m *Mailer) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	if m.to == "" {
		return errs.NewConfigError("CONTACT_EMAIL")
	}

	subject := fmt.Sprintf("Portfolio message from %s", msg.Name)
	body := fmt.Sprintf("<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)
	return m.SendEmail(ctx, ResendEmailRequest{
		To:      []string{m.to},
		Subject: subject,
		Html:    body,
		ReplyTo: msg.Email,
	})
}

// SendEmail sends an email using the Resend API. From is filled in when empty.
func (m *Mailer) SendEmail(ctx context.Context, payload ResendEmailRequest) error {
	if len(payload.To) == 0 {
		return errs.NewMissingRequiredFieldError("to")
	}
	if m.apiKey == "" {
		return errs.NewConfigError("RESEND_API_KEY")
	}
	if payload.From == "" {
		payload.From = m.from
	}
	if payload.From == "" {
		return errs.NewConfigError("RESEND_FROM_EMAIL")
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return errs.NewServiceUnreachableError("resend", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return errs.NewUpstreamError("resend", resp.StatusCode, errorResp.Message)
		}
		return errs.NewUpstreamError("resend", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		m.logger.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}
