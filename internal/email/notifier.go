package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

const validUntilLayout = "January 2, 2006"

// Notifier renders the marketplace emails and hands them to a Sender.
type Notifier struct {
	sender     Sender
	opsAddress string
	appURL     string
}

// NewNotifier creates a Notifier. An empty opsAddress disables lead notifications.
func NewNotifier(sender Sender, opsAddress, appURL string) *Notifier {
	return &Notifier{
		sender:     sender,
		opsAddress: opsAddress,
		appURL:     strings.TrimRight(appURL, "/"),
	}
}

type leadThankYouData struct {
	Name            string
	CourseTitle     string
	PromoCode       string
	DiscountPercent int
	ValidUntil      string
	CoursesURL      string
}

// LeadThankYou sends the welcome code to the person who submitted the form.
func (n *Notifier) LeadThankYou(ctx context.Context, lead *model.Lead, promo *model.PromoCode, courseTitle string) error {
	if promo == nil {
		return errors.New("lead thank-you needs a promo code")
	}
	html, err := render(tmplLeadThankYou, leadThankYouData{
		Name:            lead.Name,
		CourseTitle:     courseTitle,
		PromoCode:       promo.Code,
		DiscountPercent: promo.DiscountPercent,
		ValidUntil:      promo.ValidUntil.Format(validUntilLayout),
		CoursesURL:      n.appURL + "/courses",
	})
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, &Message{
		To:      []string{lead.Email},
		Subject: fmt.Sprintf("Your %d%% welcome discount", promo.DiscountPercent),
		HTML:    html,
	})
}

type leadNotificationData struct {
	Name        string
	Email       string
	Company     string
	Phone       string
	Message     string
	CourseTitle string
	Source      string
	PromoCode   string
}

// LeadNotification tells the operations inbox about a new lead.
func (n *Notifier) LeadNotification(ctx context.Context, lead *model.Lead, promoCode, courseTitle string) error {
	if n.opsAddress == "" {
		log.Debug().Str("lead_id", lead.ID.String()).Msg("ops address not set, skipping lead notification")
		return nil
	}
	html, err := render(tmplLeadNotification, leadNotificationData{
		Name:        lead.Name,
		Email:       lead.Email,
		Company:     deref(lead.Company),
		Phone:       deref(lead.Phone),
		Message:     deref(lead.Message),
		CourseTitle: courseTitle,
		Source:      lead.Source,
		PromoCode:   promoCode,
	})
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, &Message{
		To:      []string{n.opsAddress},
		Subject: "New lead: " + lead.Name,
		HTML:    html,
	})
}

type bookingConfirmationData struct {
	CustomerName string
	CourseTitle  string
	AmountPaid   string
	Currency     string
	Reference    string
	DashboardURL string
}

// BookingConfirmation sends the receipt for a confirmed booking.
func (n *Notifier) BookingConfirmation(ctx context.Context, booking *model.Booking, courseTitle string) error {
	if courseTitle == "" {
		courseTitle = booking.CourseID
	}
	html, err := render(tmplBookingConfirmation, bookingConfirmationData{
		CustomerName: booking.CustomerName,
		CourseTitle:  courseTitle,
		AmountPaid:   booking.AmountPaid.StringFixed(2),
		Currency:     strings.ToUpper(booking.Currency),
		Reference:    booking.PaymentSessionID,
		DashboardURL: n.appURL + "/dashboard",
	})
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, &Message{
		To:      []string{booking.CustomerEmail},
		Subject: "Booking confirmed: " + courseTitle,
		HTML:    html,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
