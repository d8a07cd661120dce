package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

// CourseRepositoryInterface defines the interface for course data access.
type CourseRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
}

// CheckoutSessionRepositoryInterface stores session references for reconciliation.
type CheckoutSessionRepositoryInterface interface {
	Insert(ctx context.Context, session *model.CheckoutSession) error
}

// PaymentGateway opens hosted checkout sessions.
type PaymentGateway interface {
	Configured() bool
	CreateCheckoutSession(ctx context.Context, req *model.GatewaySessionRequest) (*model.GatewaySession, error)
}

// PromoResolver returns the server-side discount for a code at checkout time.
type PromoResolver interface {
	Resolve(ctx context.Context, code, courseID string) (string, int)
}

// Buyer identifies the authenticated caller, if any.
type Buyer struct {
	UserID string
	Email  string
}

// CheckoutService builds payment sessions for course enrollments.
type CheckoutService struct {
	gateway  PaymentGateway
	courses  CourseRepositoryInterface
	promos   PromoResolver
	sessions CheckoutSessionRepositoryInterface
	appURL   *url.URL
}

// NewCheckoutService creates a CheckoutService. appURL is the public origin used
// for default redirect URLs and as the only origin accepted from clients.
func NewCheckoutService(
	gateway PaymentGateway,
	courses CourseRepositoryInterface,
	promos PromoResolver,
	sessions CheckoutSessionRepositoryInterface,
	appURL string,
) (*CheckoutService, error) {
	u, err := url.Parse(strings.TrimRight(appURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid app url %q", appURL)
	}
	return &CheckoutService{
		gateway:  gateway,
		courses:  courses,
		promos:   promos,
		sessions: sessions,
		appURL:   u,
	}, nil
}

// CreateSession prices the course server-side and opens a gateway session.
// Returns:
//   - ErrNotConfigured if the gateway has no credentials (checked before anything else)
//   - ErrCourseNotFound if the course does not exist or is inactive
//   - ErrCourseFull if no seats are left
//   - ErrPaymentGateway wrapping the gateway failure
func (s *CheckoutService) CreateSession(ctx context.Context, req *model.CreateCheckoutRequest, buyer Buyer) (*model.CheckoutSessionResponse, error) {
	if s.gateway == nil || !s.gateway.Configured() {
		return nil, fmt.Errorf("%w: payment gateway", ErrNotConfigured)
	}
	if req == nil || strings.TrimSpace(req.CourseID) == "" {
		return nil, fmt.Errorf("%w: course_id is required", ErrValidation)
	}
	courseID := strings.TrimSpace(req.CourseID)

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: get course: %w", ErrDataStore, err)
	}
	if course == nil || !course.IsActive {
		return nil, ErrCourseNotFound
	}
	if course.SeatsLeft() <= 0 {
		return nil, ErrCourseFull
	}

	promoCode, percent := "", 0
	if s.promos != nil {
		promoCode, percent = s.promos.Resolve(ctx, req.PromoCode, course.ID)
	}
	_, finalPrice := ApplyDiscount(course.Price, percent)

	metadata := map[string]string{
		model.MetaCourseID:        course.ID,
		model.MetaCourseTitle:     course.Title,
		model.MetaOriginalPrice:   course.Price.String(),
		model.MetaFinalPrice:      finalPrice.String(),
		model.MetaPromoCode:       promoCode,
		model.MetaDiscountPercent: strconv.Itoa(percent),
	}
	if buyer.UserID != "" {
		metadata[model.MetaUserID] = buyer.UserID
	}

	gatewayReq := &model.GatewaySessionRequest{
		ProductName:        course.Title,
		ProductDescription: course.Description,
		Currency:           strings.ToLower(course.Currency),
		UnitAmount:         MinorUnits(finalPrice),
		CustomerEmail:      buyer.Email,
		SuccessURL:         s.redirectURL(req.SuccessURL, s.defaultSuccessURL()),
		CancelURL:          s.redirectURL(req.CancelURL, s.defaultCancelURL(course.ID)),
		Metadata:           metadata,
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, gatewayReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPaymentGateway, err)
	}

	record := &model.CheckoutSession{
		SessionID:       session.ID,
		CourseID:        course.ID,
		OriginalPrice:   course.Price,
		FinalPrice:      finalPrice,
		PromoCode:       optional(promoCode),
		DiscountPercent: percent,
		UserID:          optional(buyer.UserID),
	}
	if s.sessions != nil {
		if err := s.sessions.Insert(ctx, record); err != nil {
			log.Error().Err(err).Str("session_id", session.ID).Msg("failed to store checkout session, continuing")
		}
	}

	log.Info().
		Str("session_id", session.ID).
		Str("course_id", course.ID).
		Str("final_price", finalPrice.String()).
		Int("discount_percent", percent).
		Msg("checkout session created")

	return &model.CheckoutSessionResponse{SessionID: session.ID, URL: session.URL}, nil
}

func (s *CheckoutService) defaultSuccessURL() string {
	return s.appURL.String() + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
}

func (s *CheckoutService) defaultCancelURL(courseID string) string {
	return s.appURL.String() + "/courses/" + url.PathEscape(courseID)
}

// redirectURL keeps a client-supplied URL only when it points back at the app origin.
func (s *CheckoutService) redirectURL(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != s.appURL.Scheme || u.Host != s.appURL.Host {
		log.Warn().Str("redirect_url", raw).Msg("ignoring redirect url outside app origin")
		return fallback
	}
	return raw
}
