package middlewarectx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/shop-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Minute, time.Hour)

	accessToken, err := maker.GenerateToken("uid-1", "testuser", "admin", false)
	require.NoError(t, err)
	refreshToken, err := maker.GenerateRefreshToken("uid-1", "testuser", "admin", false)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantActor  bool
	}{
		{
			name:       "валидный токен доступа",
			authHeader: "Bearer " + accessToken,
			wantStatus: http.StatusOK,
			wantActor:  true,
		},
		{
			name:       "refresh токен вместо токена доступа",
			authHeader: "Bearer " + refreshToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "отсутствует заголовок",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "мусор вместо токена",
			authHeader: "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "заголовок без Bearer",
			authHeader: accessToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotActor models.Actor
			var actorFound bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotActor, actorFound = middlewarectx.Actor(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.JWTMiddleware(maker, newTestLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantActor {
				require.True(t, actorFound)
				assert.Equal(t, "uid-1", gotActor.UID)
				assert.Equal(t, "testuser", gotActor.Username)
				assert.Equal(t, "admin", gotActor.Role)
			}
		})
	}
}

func TestStaffMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Minute, time.Hour)

	adminToken, err := maker.GenerateToken("uid-1", "admin", "admin", false)
	require.NoError(t, err)
	userToken, err := maker.GenerateToken("uid-2", "user", "user", false)
	require.NoError(t, err)
	superToken, err := maker.GenerateToken("uid-3", "root", "user", true)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "админ проходит", token: adminToken, wantStatus: http.StatusOK},
		{name: "суперпользователь проходит", token: superToken, wantStatus: http.StatusOK},
		{name: "обычный пользователь отклоняется", token: userToken, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := middlewarectx.JWTMiddleware(maker, newTestLogger())(
				middlewarectx.StaffMiddleware(newTestLogger())(next))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
