// Package email renders and delivers the transactional emails sent around leads and bookings.
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/service"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender using the given client and From address.
func NewResendSender(client *resend.Client, from string) *ResendSender {
	return &ResendSender{client: client, from: from}
}

// Send delivers msg. An empty recipient list is rejected before calling the API.
func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return errors.New("email has no recipients")
	}
	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("send email %q: %w", msg.Subject, err)
	}
	log.Debug().Str("email_id", resp.Id).Str("subject", msg.Subject).Msg("email sent")
	return nil
}

// DisabledSender is used when no API key is configured. Every send fails with ErrNotConfigured.
type DisabledSender struct{}

// Send always returns ErrNotConfigured.
func (DisabledSender) Send(ctx context.Context, msg *Message) error {
	return fmt.Errorf("%w: email sender", service.ErrNotConfigured)
}
