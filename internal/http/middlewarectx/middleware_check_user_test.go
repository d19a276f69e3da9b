package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
)

type UserCheckerMock struct {
	mock.Mock
}

func (m *UserCheckerMock) IsUserBlocked(ctx context.Context, userUID string) (bool, error) {
	args := m.Called(ctx, userUID)
	return args.Bool(0), args.Error(1)
}

func TestUserStatusMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Minute, time.Hour)

	token, err := maker.GenerateToken("uid-1", "testuser", "user", false)
	require.NoError(t, err)

	tests := []struct {
		name       string
		setupMocks func(c *UserCheckerMock)
		wantStatus int
	}{
		{
			name: "активный пользователь проходит",
			setupMocks: func(c *UserCheckerMock) {
				c.On("IsUserBlocked", mock.Anything, "uid-1").Return(false, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "заблокированный пользователь с действующим токеном отклоняется",
			setupMocks: func(c *UserCheckerMock) {
				c.On("IsUserBlocked", mock.Anything, "uid-1").Return(true, nil).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "токен удаленного пользователя отклоняется",
			setupMocks: func(c *UserCheckerMock) {
				c.On("IsUserBlocked", mock.Anything, "uid-1").Return(false, errs.ErrNotFound).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "ошибка хранилища",
			setupMocks: func(c *UserCheckerMock) {
				c.On("IsUserBlocked", mock.Anything, "uid-1").Return(false, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := new(UserCheckerMock)
			tt.setupMocks(checker)

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := middlewarectx.JWTMiddleware(maker, newTestLogger())(
				middlewarectx.UserStatusMiddleware(checker, newTestLogger())(next))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			checker.AssertExpectations(t)
		})
	}
}

func TestUserStatusMiddleware_NoActor(t *testing.T) {
	checker := new(UserCheckerMock)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middlewarectx.UserStatusMiddleware(checker, newTestLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	checker.AssertExpectations(t)
}
