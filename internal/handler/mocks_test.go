package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/service"
)

type mockLeadService struct {
	submitFn func(ctx context.Context, req *model.SubmitLeadRequest) (*model.SubmitLeadResponse, error)
}

func (m *mockLeadService) SubmitLead(ctx context.Context, req *model.SubmitLeadRequest) (*model.SubmitLeadResponse, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, req)
	}
	return &model.SubmitLeadResponse{PromoCode: "LEAD0000"}, nil
}

type mockPromoService struct {
	validateFn func(ctx context.Context, code, courseID string) (*model.PromoValidationResult, error)
}

func (m *mockPromoService) Validate(ctx context.Context, code, courseID string) (*model.PromoValidationResult, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, code, courseID)
	}
	return &model.PromoValidationResult{}, nil
}

type mockCheckoutService struct {
	createFn func(ctx context.Context, req *model.CreateCheckoutRequest, buyer service.Buyer) (*model.CheckoutSessionResponse, error)
}

func (m *mockCheckoutService) CreateSession(ctx context.Context, req *model.CreateCheckoutRequest, buyer service.Buyer) (*model.CheckoutSessionResponse, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req, buyer)
	}
	return &model.CheckoutSessionResponse{}, nil
}

type mockWebhookService struct {
	handleFn func(ctx context.Context, payload []byte, signature string) (*model.WebhookResult, error)
}

func (m *mockWebhookService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*model.WebhookResult, error) {
	if m.handleFn != nil {
		return m.handleFn(ctx, payload, signature)
	}
	return &model.WebhookResult{Outcome: model.OutcomeIgnored}, nil
}

type mockCatalogService struct {
	listFn func(ctx context.Context) (*model.CourseListResponse, error)
	getFn  func(ctx context.Context, id string) (*model.CourseResponse, error)
}

func (m *mockCatalogService) List(ctx context.Context) (*model.CourseListResponse, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return &model.CourseListResponse{}, nil
}

func (m *mockCatalogService) Get(ctx context.Context, id string) (*model.CourseResponse, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, service.ErrCourseNotFound
}

type mockAdminService struct {
	listLeadsFn    func(ctx context.Context, limit int) ([]model.Lead, error)
	listBookingsFn func(ctx context.Context, limit int) ([]model.Booking, error)
	createPromoFn  func(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error)
}

func (m *mockAdminService) ListLeads(ctx context.Context, limit int) ([]model.Lead, error) {
	if m.listLeadsFn != nil {
		return m.listLeadsFn(ctx, limit)
	}
	return []model.Lead{}, nil
}

func (m *mockAdminService) ListBookings(ctx context.Context, limit int) ([]model.Booking, error) {
	if m.listBookingsFn != nil {
		return m.listBookingsFn(ctx, limit)
	}
	return []model.Booking{}, nil
}

func (m *mockAdminService) CreatePromoCode(ctx context.Context, req *model.CreatePromoCodeRequest) (*model.PromoCode, error) {
	if m.createPromoFn != nil {
		return m.createPromoFn(ctx, req)
	}
	return &model.PromoCode{Code: req.Code}, nil
}

// postJSON sends body to app and decodes the JSON response into a map.
func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}
