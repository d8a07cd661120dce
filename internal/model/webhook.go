package model

// EventCheckoutCompleted is the only gateway event that creates bookings.
const EventCheckoutCompleted = "checkout.session.completed"

// PaymentEvent is a verified gateway notification reduced to the fields bookings need.
type PaymentEvent struct {
	ID            string
	Type          string
	SessionID     string
	Metadata      map[string]string
	CustomerEmail string
	CustomerName  string
	AmountTotal   int64 // minor units
	Currency      string
	PaymentStatus string
}

// WebhookOutcome describes what the confirmation handler did with an event.
type WebhookOutcome string

const (
	OutcomeIgnored   WebhookOutcome = "ignored"
	OutcomeDuplicate WebhookOutcome = "duplicate"
	OutcomeSkipped   WebhookOutcome = "skipped"
	OutcomeBooked    WebhookOutcome = "booked"
	OutcomeFailed    WebhookOutcome = "failed"
)

// WebhookResult is returned for every verified event.
type WebhookResult struct {
	EventID   string
	EventType string
	Outcome   WebhookOutcome
	Booking   *Booking
}
