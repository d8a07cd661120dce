package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

// WebhookVerifier authenticates and decodes gateway notifications.
// ParseEvent must verify the signature before decoding anything from the payload.
type WebhookVerifier interface {
	WebhookConfigured() bool
	ParseEvent(payload []byte, signature string) (*model.PaymentEvent, error)
}

// BookingRepositoryInterface defines the interface for booking data access.
type BookingRepositoryInterface interface {
	// Create inserts the booking unless one already exists for its payment session.
	// created is false when the session was already booked.
	Create(ctx context.Context, booking *model.Booking) (created bool, err error)
	List(ctx context.Context, limit int) ([]model.Booking, error)
}

// EventStore remembers which gateway events were handled.
type EventStore interface {
	// Processed reports whether the event was already settled.
	Processed(ctx context.Context, eventID string) (bool, error)
	// MarkProcessed records the event. Called only once its booking is stored.
	MarkProcessed(ctx context.Context, eventID string) error
}

// markTimeout bounds recording an event after the request context may have ended.
const markTimeout = 2 * time.Second

// ConfirmationService turns completed payments into bookings.
type ConfirmationService struct {
	verifier WebhookVerifier
	bookings BookingRepositoryInterface
	promos   PromoRepositoryInterface
	events   EventStore
	notifier Notifier
}

// NewConfirmationService creates a ConfirmationService. events and notifier may be nil.
func NewConfirmationService(
	verifier WebhookVerifier,
	bookings BookingRepositoryInterface,
	promos PromoRepositoryInterface,
	events EventStore,
	notifier Notifier,
) *ConfirmationService {
	return &ConfirmationService{
		verifier: verifier,
		bookings: bookings,
		promos:   promos,
		events:   events,
		notifier: notifier,
	}
}

// HandleWebhook verifies and processes a gateway notification.
// An error is returned only when the webhook secret is missing or the signature
// does not verify. Every verified event yields a result so the sender stops retrying.
func (s *ConfirmationService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*model.WebhookResult, error) {
	if s.verifier == nil || !s.verifier.WebhookConfigured() {
		return nil, fmt.Errorf("%w: webhook secret", ErrNotConfigured)
	}

	event, err := s.verifier.ParseEvent(payload, signature)
	if err != nil {
		return nil, err
	}

	result := &model.WebhookResult{EventID: event.ID, EventType: event.Type}
	logger := log.With().Str("event_id", event.ID).Str("event_type", event.Type).Logger()

	if event.Type != model.EventCheckoutCompleted {
		logger.Debug().Msg("ignoring webhook event")
		result.Outcome = model.OutcomeIgnored
		return result, nil
	}

	if s.events != nil {
		done, err := s.events.Processed(ctx, event.ID)
		if err != nil {
			// the booking unique key still guards against duplicates
			logger.Warn().Err(err).Msg("event dedupe unavailable")
		} else if done {
			logger.Info().Msg("webhook event already processed")
			result.Outcome = model.OutcomeDuplicate
			return result, nil
		}
	}

	courseID := strings.TrimSpace(event.Metadata[model.MetaCourseID])
	if courseID == "" || strings.TrimSpace(event.CustomerEmail) == "" {
		logger.Warn().
			Str("session_id", event.SessionID).
			Bool("has_course_id", courseID != "").
			Bool("has_customer_email", event.CustomerEmail != "").
			Msg("completed checkout is missing booking data, skipping")
		result.Outcome = model.OutcomeSkipped
		return result, nil
	}

	booking := bookingFromEvent(event, courseID)
	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		logger.Error().Err(err).Str("session_id", event.SessionID).Msg("failed to store booking")
		result.Outcome = model.OutcomeFailed
		return result, nil
	}
	if !created {
		logger.Info().Str("session_id", event.SessionID).Msg("booking already exists for session")
		s.markProcessed(ctx, event.ID)
		result.Outcome = model.OutcomeDuplicate
		return result, nil
	}
	s.markProcessed(ctx, event.ID)
	result.Outcome = model.OutcomeBooked
	result.Booking = booking

	if code := event.Metadata[model.MetaPromoCode]; code != "" && s.promos != nil {
		if err := s.promos.IncrementUses(ctx, NormalizePromoCode(code)); err != nil {
			logger.Warn().Err(err).Str("promo_code", code).Msg("failed to record promo redemption")
		}
	}

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmation(ctx, booking, event.Metadata[model.MetaCourseTitle]); err != nil {
			logger.Warn().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to send booking confirmation")
		}
	}

	logger.Info().
		Str("booking_id", booking.ID.String()).
		Str("course_id", courseID).
		Str("session_id", event.SessionID).
		Msg("booking confirmed")

	return result, nil
}

// markProcessed records a settled event. The request may already be past its
// deadline, so the write gets its own short timeout.
func (s *ConfirmationService) markProcessed(ctx context.Context, eventID string) {
	if s.events == nil {
		return
	}
	markCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), markTimeout)
	defer cancel()
	if err := s.events.MarkProcessed(markCtx, eventID); err != nil {
		log.Warn().Err(err).Str("event_id", eventID).Msg("failed to record webhook event")
	}
}

func bookingFromEvent(event *model.PaymentEvent, courseID string) *model.Booking {
	booking := &model.Booking{
		ID:               uuid.New(),
		CourseID:         courseID,
		CustomerEmail:    strings.TrimSpace(event.CustomerEmail),
		CustomerName:     strings.TrimSpace(event.CustomerName),
		PaymentSessionID: event.SessionID,
		PaymentStatus:    event.PaymentStatus,
		AmountPaid:       FromMinorUnits(event.AmountTotal),
		Currency:         strings.ToLower(event.Currency),
		BookingStatus:    model.BookingStatusConfirmed,
	}
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = model.PaymentStatusPaid
	}
	if raw := event.Metadata[model.MetaUserID]; raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			booking.UserID = &id
		} else {
			log.Warn().Str("user_id", raw).Msg("ignoring malformed user id in session metadata")
		}
	}
	return booking
}
