package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
	services "github.com/magabrotheeeer/shop-backend/internal/services/passwordreset"
)

type ResetRepoMock struct {
	mock.Mock
}

func (m *ResetRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *ResetRepoMock) UpdateUserPassword(ctx context.Context, userUID, passwordHash string) error {
	args := m.Called(ctx, userUID, passwordHash)
	return args.Error(0)
}

func (m *ResetRepoMock) CreateOTP(ctx context.Context, userUID, code string) (int, error) {
	args := m.Called(ctx, userUID, code)
	return args.Int(0), args.Error(1)
}

func (m *ResetRepoMock) FindLatestOTP(ctx context.Context, userUID, code string) (*models.PasswordResetOTP, error) {
	args := m.Called(ctx, userUID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PasswordResetOTP), args.Error(1)
}

func (m *ResetRepoMock) DeleteOTP(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ResetRepoMock) CreateResetToken(ctx context.Context, userUID, token string) (int, error) {
	args := m.Called(ctx, userUID, token)
	return args.Int(0), args.Error(1)
}

func (m *ResetRepoMock) FindResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PasswordResetToken), args.Error(1)
}

func (m *ResetRepoMock) MarkResetTokenUsed(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testUser = &models.User{UID: "uid-1", Username: "testuser", Email: "test@example.com"}

func TestResetService_RequestOTP(t *testing.T) {
	t.Run("выпускает код и ставит письмо в очередь", func(t *testing.T) {
		repo := new(ResetRepoMock)
		publisher := new(PublisherMock)
		svc := services.NewResetService(repo, publisher, newTestLogger())

		repo.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
		repo.On("CreateOTP", mock.Anything, "uid-1", mock.MatchedBy(func(code string) bool {
			return len(code) == 6
		})).Return(1, nil).Once()
		publisher.On("Publish", "password.reset", mock.MatchedBy(func(msg models.EmailMessage) bool {
			return msg.To == "test@example.com"
		})).Return(nil).Once()

		err := svc.RequestOTP(context.Background(), "test@example.com")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("неизвестная почта", func(t *testing.T) {
		repo := new(ResetRepoMock)
		svc := services.NewResetService(repo, new(PublisherMock), newTestLogger())
		repo.On("GetUserByEmail", mock.Anything, "missing@example.com").Return(nil, errs.ErrNotFound).Once()

		err := svc.RequestOTP(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestResetService_VerifyOTP(t *testing.T) {
	freshOTP := &models.PasswordResetOTP{ID: 3, UserUID: "uid-1", Code: "111111", CreatedAt: time.Now().Add(-1 * time.Minute)}
	staleOTP := &models.PasswordResetOTP{ID: 4, UserUID: "uid-1", Code: "222222", CreatedAt: time.Now().Add(-15 * time.Minute)}
	boundaryOTP := &models.PasswordResetOTP{ID: 8, UserUID: "uid-1", Code: "333333", CreatedAt: time.Now().Add(-10 * time.Minute)}

	tests := []struct {
		name       string
		req        models.DummyOTPVerify
		setupMocks func(r *ResetRepoMock)
		wantErr    error
	}{
		{
			name: "успешная смена пароля",
			req:  models.DummyOTPVerify{Email: "test@example.com", OTP: "111111", NewPassword: "newpassword"},
			setupMocks: func(r *ResetRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				r.On("FindLatestOTP", mock.Anything, "uid-1", "111111").Return(freshOTP, nil).Once()
				r.On("UpdateUserPassword", mock.Anything, "uid-1", mock.MatchedBy(func(hash string) bool {
					return hash != "" && hash != "newpassword"
				})).Return(nil).Once()
				r.On("DeleteOTP", mock.Anything, 3).Return(nil).Once()
			},
		},
		{
			name: "неверный код",
			req:  models.DummyOTPVerify{Email: "test@example.com", OTP: "999999", NewPassword: "newpassword"},
			setupMocks: func(r *ResetRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				r.On("FindLatestOTP", mock.Anything, "uid-1", "999999").Return(nil, errs.ErrNotFound).Once()
			},
			wantErr: errs.ErrInvalidOTP,
		},
		{
			name: "просроченный код",
			req:  models.DummyOTPVerify{Email: "test@example.com", OTP: "222222", NewPassword: "newpassword"},
			setupMocks: func(r *ResetRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				r.On("FindLatestOTP", mock.Anything, "uid-1", "222222").Return(staleOTP, nil).Once()
			},
			wantErr: errs.ErrExpiredOTP,
		},
		{
			name: "код ровно на границе срока уже недействителен",
			req:  models.DummyOTPVerify{Email: "test@example.com", OTP: "333333", NewPassword: "newpassword"},
			setupMocks: func(r *ResetRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				r.On("FindLatestOTP", mock.Anything, "uid-1", "333333").Return(boundaryOTP, nil).Once()
			},
			wantErr: errs.ErrExpiredOTP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ResetRepoMock)
			svc := services.NewResetService(repo, new(PublisherMock), newTestLogger())
			tt.setupMocks(repo)

			err := svc.VerifyOTP(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestResetService_VerifyToken(t *testing.T) {
	validToken := &models.PasswordResetToken{ID: 5, UserUID: "uid-1", Token: "token-value", CreatedAt: time.Now().Add(-10 * time.Minute)}
	usedToken := &models.PasswordResetToken{ID: 6, UserUID: "uid-1", Token: "used-value", Used: true, CreatedAt: time.Now().Add(-10 * time.Minute)}
	staleToken := &models.PasswordResetToken{ID: 7, UserUID: "uid-1", Token: "stale-value", CreatedAt: time.Now().Add(-2 * time.Hour)}
	boundaryToken := &models.PasswordResetToken{ID: 9, UserUID: "uid-1", Token: "boundary-value", CreatedAt: time.Now().Add(-1 * time.Hour)}

	tests := []struct {
		name       string
		req        models.DummyTokenVerify
		setupMocks func(r *ResetRepoMock)
		wantErr    error
	}{
		{
			name: "успешная смена пароля",
			req:  models.DummyTokenVerify{Token: "token-value", NewPassword: "newpassword"},
			setupMocks: func(r *ResetRepoMock) {
				r.On("FindResetToken", mock.Anything, "token-value").Return(validToken, nil).Once()
				r.On("UpdateUserPassword", mock.Anything, "uid-1", mock.Anything).Return(nil).Once()
				r.On("MarkResetTokenUsed", mock.Anything, 5).Return(nil).Once()
			},
		},
		{
			name: "неизвестный токен",
			req:  models.DummyTokenVerify{Token: "missing-value", NewPassword: "newpassword"},
			setupMocks: func(r *ResetRepoMock) {
				r.On("FindResetToken", mock.Anything, "missing-value").Return(nil, errs.ErrNotFound).Once()
			},
			wantErr: errs.ErrInvalidResetToken,
		},
		{
			name: "использованный токен",
			req:  models.DummyTokenVerify{Token: "used-value", NewPassword: "newpassword"},
			setupMocks: func(r *ResetRepoMock) {
				r.On("FindResetToken", mock.Anything, "used-value").Return(usedToken, nil).Once()
			},
			wantErr: errs.ErrInvalidResetToken,
		},
		{
			name: "просроченный токен",
			req:  models.DummyTokenVerify{Token: "stale-value", NewPassword: "newpassword"},
			setupMocks: func(r *ResetRepoMock) {
				r.On("FindResetToken", mock.Anything, "stale-value").Return(staleToken, nil).Once()
			},
			wantErr: errs.ErrExpiredResetToken,
		},
		{
			name: "токен ровно на границе срока уже недействителен",
			req:  models.DummyTokenVerify{Token: "boundary-value", NewPassword: "newpassword"},
			setupMocks: func(r *ResetRepoMock) {
				r.On("FindResetToken", mock.Anything, "boundary-value").Return(boundaryToken, nil).Once()
			},
			wantErr: errs.ErrExpiredResetToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ResetRepoMock)
			svc := services.NewResetService(repo, new(PublisherMock), newTestLogger())
			tt.setupMocks(repo)

			err := svc.VerifyToken(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}
