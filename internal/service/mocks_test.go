package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/fairyhunter13/training-marketplace/internal/model"
)

// mockPromoRepository is a mock implementation of PromoRepositoryInterface.
type mockPromoRepository struct {
	insertFn        func(ctx context.Context, promo *model.PromoCode) error
	getByCodeFn     func(ctx context.Context, code string) (*model.PromoCode, error)
	incrementUsesFn func(ctx context.Context, code string) error
}

func (m *mockPromoRepository) Insert(ctx context.Context, promo *model.PromoCode) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, promo)
	}
	return nil
}

func (m *mockPromoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockPromoRepository) IncrementUses(ctx context.Context, code string) error {
	if m.incrementUsesFn != nil {
		return m.incrementUsesFn(ctx, code)
	}
	return nil
}

// mockLeadRepository is a mock implementation of LeadRepositoryInterface.
type mockLeadRepository struct {
	insertFn func(ctx context.Context, lead *model.Lead) error
	listFn   func(ctx context.Context, limit int) ([]model.Lead, error)
}

func (m *mockLeadRepository) Insert(ctx context.Context, lead *model.Lead) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, lead)
	}
	return nil
}

func (m *mockLeadRepository) List(ctx context.Context, limit int) ([]model.Lead, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return []model.Lead{}, nil
}

// mockCourseRepository is a mock implementation of CourseRepositoryInterface.
type mockCourseRepository struct {
	getByIDFn func(ctx context.Context, id string) (*model.Course, error)
	listFn    func(ctx context.Context) ([]model.Course, error)
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCourseRepository) List(ctx context.Context) ([]model.Course, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Course{}, nil
}

// mockSessionRepository is a mock implementation of CheckoutSessionRepositoryInterface.
type mockSessionRepository struct {
	insertFn func(ctx context.Context, session *model.CheckoutSession) error
}

func (m *mockSessionRepository) Insert(ctx context.Context, session *model.CheckoutSession) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, session)
	}
	return nil
}

// mockBookingRepository is a mock implementation of BookingRepositoryInterface.
type mockBookingRepository struct {
	createFn func(ctx context.Context, booking *model.Booking) (bool, error)
	listFn   func(ctx context.Context, limit int) ([]model.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) (bool, error) {
	if m.createFn != nil {
		return m.createFn(ctx, booking)
	}
	return true, nil
}

func (m *mockBookingRepository) List(ctx context.Context, limit int) ([]model.Booking, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return []model.Booking{}, nil
}

// mockProfileRepository is a mock implementation of ProfileRepositoryInterface.
type mockProfileRepository struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

// mockGateway is a mock implementation of PaymentGateway.
type mockGateway struct {
	configured bool
	createFn   func(ctx context.Context, req *model.GatewaySessionRequest) (*model.GatewaySession, error)
}

func (m *mockGateway) Configured() bool { return m.configured }

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req *model.GatewaySessionRequest) (*model.GatewaySession, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &model.GatewaySession{ID: "cs_test_1", URL: "https://checkout.example.com/cs_test_1"}, nil
}

// mockVerifier is a mock implementation of WebhookVerifier.
type mockVerifier struct {
	configured bool
	parseFn    func(payload []byte, signature string) (*model.PaymentEvent, error)
}

func (m *mockVerifier) WebhookConfigured() bool { return m.configured }

func (m *mockVerifier) ParseEvent(payload []byte, signature string) (*model.PaymentEvent, error) {
	if m.parseFn != nil {
		return m.parseFn(payload, signature)
	}
	return nil, ErrInvalidSignature
}

// mockEventStore is a mock implementation of EventStore.
type mockEventStore struct {
	processedFn func(ctx context.Context, eventID string) (bool, error)
	markFn      func(ctx context.Context, eventID string) error
}

func (m *mockEventStore) Processed(ctx context.Context, eventID string) (bool, error) {
	if m.processedFn != nil {
		return m.processedFn(ctx, eventID)
	}
	return false, nil
}

func (m *mockEventStore) MarkProcessed(ctx context.Context, eventID string) error {
	if m.markFn != nil {
		return m.markFn(ctx, eventID)
	}
	return nil
}

// memoryEventStore behaves like the Redis store, including failing on a done context.
type memoryEventStore struct {
	seen map[string]bool
}

func newMemoryEventStore() *memoryEventStore {
	return &memoryEventStore{seen: map[string]bool{}}
}

func (m *memoryEventStore) Processed(ctx context.Context, eventID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return m.seen[eventID], nil
}

func (m *memoryEventStore) MarkProcessed(ctx context.Context, eventID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.seen[eventID] = true
	return nil
}

// mockNotifier records every notification it is asked to send.
type mockNotifier struct {
	thankYouFn     func(ctx context.Context, lead *model.Lead, promo *model.PromoCode, courseTitle string) error
	notificationFn func(ctx context.Context, lead *model.Lead, promoCode, courseTitle string) error
	confirmationFn func(ctx context.Context, booking *model.Booking, courseTitle string) error

	thankYouCalls     int
	notificationCalls int
	confirmationCalls int
}

func (m *mockNotifier) LeadThankYou(ctx context.Context, lead *model.Lead, promo *model.PromoCode, courseTitle string) error {
	m.thankYouCalls++
	if m.thankYouFn != nil {
		return m.thankYouFn(ctx, lead, promo, courseTitle)
	}
	return nil
}

func (m *mockNotifier) LeadNotification(ctx context.Context, lead *model.Lead, promoCode, courseTitle string) error {
	m.notificationCalls++
	if m.notificationFn != nil {
		return m.notificationFn(ctx, lead, promoCode, courseTitle)
	}
	return nil
}

func (m *mockNotifier) BookingConfirmation(ctx context.Context, booking *model.Booking, courseTitle string) error {
	m.confirmationCalls++
	if m.confirmationFn != nil {
		return m.confirmationFn(ctx, booking, courseTitle)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
