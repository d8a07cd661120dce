// Package payment adapts the Stripe API to the checkout and confirmation services.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/fairyhunter13/training-marketplace/internal/config"
	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/service"
)

// StripeGateway creates hosted checkout sessions and verifies webhook deliveries.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway builds a gateway from config. Missing keys leave the
// corresponding half unconfigured instead of failing.
func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	return newStripeGateway(cfg, nil)
}

func newStripeGateway(cfg config.StripeConfig, backends *stripe.Backends) *StripeGateway {
	g := &StripeGateway{webhookSecret: cfg.WebhookSecret}
	if cfg.SecretKey != "" {
		g.api = client.New(cfg.SecretKey, backends)
	}
	return g
}

// Configured reports whether a secret key was provided.
func (g *StripeGateway) Configured() bool {
	return g.api != nil
}

// WebhookConfigured reports whether a webhook signing secret was provided.
func (g *StripeGateway) WebhookConfigured() bool {
	return g.webhookSecret != ""
}

// CreateCheckoutSession opens a one-off payment session for a single seat.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req *model.GatewaySessionRequest) (*model.GatewaySession, error) {
	if !g.Configured() {
		return nil, fmt.Errorf("%w: stripe secret key", service.ErrNotConfigured)
	}

	productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.ProductName),
	}
	if req.ProductDescription != "" {
		productData.Description = stripe.String(req.ProductDescription)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(strings.ToLower(req.Currency)),
					UnitAmount:  stripe.Int64(req.UnitAmount),
					ProductData: productData,
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Metadata:   req.Metadata,
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			log.Error().
				Str("type", string(stripeErr.Type)).
				Str("code", string(stripeErr.Code)).
				Str("request_id", stripeErr.RequestID).
				Msg("stripe rejected checkout session")
		}
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}

	return &model.GatewaySession{ID: session.ID, URL: session.URL}, nil
}

// ParseEvent verifies the Stripe-Signature header and decodes the event.
// Checkout session payloads are flattened into a PaymentEvent; other event
// types carry only their id and type.
func (g *StripeGateway) ParseEvent(payload []byte, signature string) (*model.PaymentEvent, error) {
	if !g.WebhookConfigured() {
		return nil, fmt.Errorf("%w: stripe webhook secret", service.ErrNotConfigured)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%w: %w", service.ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %w", service.ErrInvalidPayload, err)
	}

	result := &model.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if !strings.HasPrefix(result.Type, "checkout.session.") {
		return result, nil
	}
	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", service.ErrInvalidPayload, event.ID)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: decode checkout session: %w", service.ErrInvalidPayload, err)
	}

	result.SessionID = session.ID
	result.Metadata = session.Metadata
	result.AmountTotal = session.AmountTotal
	result.Currency = string(session.Currency)
	result.PaymentStatus = string(session.PaymentStatus)
	result.CustomerEmail = session.CustomerEmail
	if session.CustomerDetails != nil {
		if session.CustomerDetails.Email != "" {
			result.CustomerEmail = session.CustomerDetails.Email
		}
		result.CustomerName = session.CustomerDetails.Name
	}
	return result, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}
