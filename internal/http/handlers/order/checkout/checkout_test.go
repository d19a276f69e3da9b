package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

type OrderServiceMock struct {
	mock.Mock
}

func (m *OrderServiceMock) Checkout(ctx context.Context, actor models.Actor, req models.DummyCheckout) (*models.Order, error) {
	args := m.Called(ctx, actor, req)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCheckoutHandler_ServeHTTP(t *testing.T) {
	actor := models.Actor{UID: "uid-1", Username: "user1", Role: "user"}
	order := &models.Order{ID: 11, UserUID: "uid-1", Status: models.OrderStatusPending, Total: 4500}

	tests := []struct {
		name           string
		requestBody    interface{}
		withActor      bool
		mockOrder      *models.Order
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantError      string
	}{
		{
			name:           "valid checkout",
			requestBody:    models.DummyCheckout{Address: "Москва, Тверская 1"},
			withActor:      true,
			mockOrder:      order,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			withActor:      true,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing address",
			requestBody:    models.DummyCheckout{},
			withActor:      true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
			wantError:      "field Address is a required field",
		},
		{
			name:           "no actor in context",
			requestBody:    models.DummyCheckout{Address: "Москва, Тверская 1"},
			withActor:      false,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "unauthorized",
		},
		{
			name:           "empty cart",
			requestBody:    models.DummyCheckout{Address: "Москва, Тверская 1"},
			withActor:      true,
			mockErr:        errs.ErrEmptyCart,
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "cart is empty",
		},
		{
			name:           "service error",
			requestBody:    models.DummyCheckout{Address: "Москва, Тверская 1"},
			withActor:      true,
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "could not checkout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(OrderServiceMock)
			if tt.mockOrder != nil || tt.mockErr != nil {
				serviceMock.On("Checkout", mock.Anything, actor, tt.requestBody.(models.DummyCheckout)).
					Return(tt.mockOrder, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withActor {
				ctx = context.WithValue(ctx, middlewarectx.ActorKey, actor)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			}
			if tt.mockOrder != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				gotOrder, ok := data["order"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(11), gotOrder["id"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
