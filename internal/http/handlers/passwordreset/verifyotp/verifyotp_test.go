package verifyotp

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
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

type ResetServiceMock struct {
	mock.Mock
}

func (m *ResetServiceMock) VerifyOTP(ctx context.Context, req models.DummyOTPVerify) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestVerifyOTPHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(ResetServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	validReq := models.DummyOTPVerify{
		Email:       "user1@example.com",
		OTP:         "123456",
		NewPassword: "newpassword",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockErr        error
		callService    bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "пароль обновлен",
			requestBody:    validReq,
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "некорректный json",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "короткий код не проходит валидацию",
			requestBody:    models.DummyOTPVerify{Email: "user1@example.com", OTP: "123", NewPassword: "newpassword"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field OTP has wrong length",
			wantStatus:     "Error",
		},
		{
			name:           "неизвестная почта",
			requestBody:    validReq,
			mockErr:        errs.ErrNotFound,
			callService:    true,
			wantStatusCode: http.StatusNotFound,
			wantError:      "user not found",
			wantStatus:     "Error",
		},
		{
			name:           "недействительный код",
			requestBody:    validReq,
			mockErr:        errs.ErrInvalidOTP,
			callService:    true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid otp",
			wantStatus:     "Error",
		},
		{
			name:           "истекший код",
			requestBody:    validReq,
			mockErr:        errs.ErrExpiredOTP,
			callService:    true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "otp expired",
			wantStatus:     "Error",
		},
		{
			name:           "ошибка сервиса",
			requestBody:    validReq,
			mockErr:        errors.New("db down"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not verify otp",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.callService {
				serviceMock.On("VerifyOTP", mock.Anything, validReq).Return(tt.mockErr).Once()
			}

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

			req := httptest.NewRequest(http.MethodPost, "/password-reset/otp/verify", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
			}

			if tt.callService {
				serviceMock.AssertExpectations(t)
			}
		})
	}
}
