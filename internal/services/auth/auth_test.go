package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	customjwt "github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/lib/password"
	"github.com/magabrotheeeer/shop-backend/internal/models"
	services "github.com/magabrotheeeer/shop-backend/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(uid, username, role string, isSuperuser bool) (string, error) {
	args := m.Called(uid, username, role, isSuperuser)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) GenerateRefreshToken(uid, username, role string, isSuperuser bool) (string, error) {
	args := m.Called(uid, username, role, isSuperuser)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		email       string
		password    string
		setupMocks  func(r *UserRepoMock)
		wantUserUID string
		wantErr     bool
		errMsg      string
	}{
		{
			name:     "успешная регистрация",
			username: "testuser",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.Username == "testuser" &&
						user.PasswordHash != "" &&
						user.Role == "user" &&
						!user.IsSuperuser
				})).Return("some-uuid-string", nil).Once()
			},
			wantUserUID: "some-uuid-string",
			wantErr:     false,
		},
		{
			name:     "ошибка репозитория",
			username: "testuser",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).Return("", errors.New("db error")).Once()
			},
			wantUserUID: "",
			wantErr:     true,
			errMsg:      "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := services.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo)

			got, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUserUID, got)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"

	hashedPassword, err := password.GetHash(rawPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	testUser := &models.User{
		UID:          "uid-1",
		Email:        "test@example.com",
		Username:     "testuser",
		PasswordHash: hashedPassword,
		Role:         "user",
	}
	blockedUser := &models.User{
		UID:          "uid-2",
		Email:        "blocked@example.com",
		Username:     "blockeduser",
		PasswordHash: hashedPassword,
		Role:         "user",
		Blocked:      true,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantTokens *services.TokenPair
		wantErr    error
	}{
		{
			name:     "успешный вход",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "uid-1", "testuser", "user", false).Return("jwt-token-123", nil).Once()
				j.On("GenerateRefreshToken", "uid-1", "testuser", "user", false).Return("refresh-token-123", nil).Once()
			},
			wantTokens: &services.TokenPair{AccessToken: "jwt-token-123", RefreshToken: "refresh-token-123"},
		},
		{
			name:     "пользователь не найден",
			email:    "missing@example.com",
			password: "password",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "missing@example.com").Return(nil, errs.ErrNotFound).Once()
			},
			wantErr: errs.ErrInvalidCredentials,
		},
		{
			name:     "неверный пароль",
			email:    "test@example.com",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
			},
			wantErr: errs.ErrInvalidCredentials,
		},
		{
			name:     "заблокированная учетная запись",
			email:    "blocked@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "blocked@example.com").Return(blockedUser, nil).Once()
			},
			wantErr: errs.ErrUserBlocked,
		},
		{
			name:     "ошибка генерации токена",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "uid-1", "testuser", "user", false).Return("", errors.New("token error")).Once()
			},
			wantErr: errors.New("token error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := services.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			user, tokens, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testUser, user)
				assert.Equal(t, tt.wantTokens, tokens)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	testUser := &models.User{
		UID:      "uid-1",
		Email:    "test@example.com",
		Username: "testuser",
		Role:     "user",
	}

	refreshClaims := &customjwt.CustomClaims{
		UserUID:   "uid-1",
		Username:  "testuser",
		Role:      "user",
		TokenType: customjwt.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	accessClaims := &customjwt.CustomClaims{
		UserUID:   "uid-1",
		Username:  "testuser",
		Role:      "user",
		TokenType: customjwt.TokenTypeAccess,
	}

	tests := []struct {
		name       string
		token      string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    bool
		errMsg     string
	}{
		{
			name:  "успешное обновление токенов",
			token: "refresh-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "refresh-token").Return(refreshClaims, nil).Once()
				r.On("GetUser", mock.Anything, "uid-1").Return(testUser, nil).Once()
				j.On("GenerateToken", "uid-1", "testuser", "user", false).Return("new-access", nil).Once()
				j.On("GenerateRefreshToken", "uid-1", "testuser", "user", false).Return("new-refresh", nil).Once()
			},
		},
		{
			name:  "токен доступа вместо refresh",
			token: "access-token",
			setupMocks: func(_ *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "access-token").Return(accessClaims, nil).Once()
			},
			wantErr: true,
			errMsg:  "unexpected token type",
		},
		{
			name:  "невалидный токен",
			token: "bad-token",
			setupMocks: func(_ *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "bad-token").Return(nil, errors.New("invalid token")).Once()
			},
			wantErr: true,
			errMsg:  "invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := services.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			user, tokens, err := svc.Refresh(context.Background(), tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testUser, user)
				assert.Equal(t, "new-access", tokens.AccessToken)
				assert.Equal(t, "new-refresh", tokens.RefreshToken)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}
