// Package services содержит бизнес-логику сброса пароля: одноразовые коды
// и одноразовые токены.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/lib/otp"
	"github.com/magabrotheeeer/shop-backend/internal/lib/password"
	"github.com/magabrotheeeer/shop-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Сроки жизни кодов и токенов сброса.
const (
	otpTTL   = 10 * time.Minute
	tokenTTL = time.Hour
)

// ResetRepository определяет методы хранилища для сброса пароля.
type ResetRepository interface {
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUserPassword заменяет хэш пароля пользователя.
	UpdateUserPassword(ctx context.Context, userUID, passwordHash string) error
	// CreateOTP сохраняет новый код; ранее выданные остаются действительными.
	CreateOTP(ctx context.Context, userUID, code string) (int, error)
	// FindLatestOTP возвращает самый свежий совпадающий код пользователя.
	FindLatestOTP(ctx context.Context, userUID, code string) (*models.PasswordResetOTP, error)
	// DeleteOTP потребляет код удалением.
	DeleteOTP(ctx context.Context, id int) error
	// CreateResetToken сохраняет новый токен сброса.
	CreateResetToken(ctx context.Context, userUID, token string) (int, error)
	// FindResetToken возвращает запись токена по значению.
	FindResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	// MarkResetTokenUsed помечает токен использованным.
	MarkResetTokenUsed(ctx context.Context, id int) error
}

// EventPublisher публикует события почтовых уведомлений в брокер.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// ResetService реализует оба сценария сброса пароля: шестизначный код,
// живущий десять минут, и uuid-токен, живущий час. Код потребляется
// удалением, токен — отметкой об использовании.
type ResetService struct {
	repo      ResetRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewResetService создает новый экземпляр ResetService.
func NewResetService(repo ResetRepository, publisher EventPublisher, log *slog.Logger) *ResetService {
	return &ResetService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// RequestOTP выпускает шестизначный код для пользователя и ставит в очередь
// письмо с кодом. Ранее выданные коды остаются действительными до истечения.
func (s *ResetService) RequestOTP(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := otp.Generate()
	if err != nil {
		return err
	}
	if _, err := s.repo.CreateOTP(ctx, user.UID, code); err != nil {
		return err
	}
	s.log.Info("issued password reset code", slog.String("uid", user.UID))

	message := models.EmailMessage{
		To:      user.Email,
		Subject: "Код для сброса пароля",
		Body: fmt.Sprintf("Здравствуйте, %s!\n\nВаш код для сброса пароля: %s.\nКод действителен 10 минут.",
			user.Username, code),
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyPasswordReset, message); err != nil {
		s.log.Error("failed to publish reset code email", sl.Err(err))
	}
	return nil
}

// VerifyOTP проверяет предъявленный код и устанавливает новый пароль.
// Совпадение ищется среди всех действительных кодов пользователя,
// предпочтение отдается самому свежему; успешный код потребляется удалением.
func (s *ResetService) VerifyOTP(ctx context.Context, req models.DummyOTPVerify) error {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	found, err := s.repo.FindLatestOTP(ctx, user.UID, req.OTP)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrInvalidOTP
		}
		return err
	}
	if time.Since(found.CreatedAt) >= otpTTL {
		return errs.ErrExpiredOTP
	}

	hashed, err := password.GetHash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateUserPassword(ctx, user.UID, hashed); err != nil {
		return err
	}
	if err := s.repo.DeleteOTP(ctx, found.ID); err != nil {
		s.log.Error("failed to consume reset code", sl.Err(err))
	}
	s.log.Info("password reset by code", slog.String("uid", user.UID))
	return nil
}

// RequestToken выпускает uuid-токен сброса и ставит в очередь письмо с ним.
func (s *ResetService) RequestToken(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	token := uuid.New().String()
	if _, err := s.repo.CreateResetToken(ctx, user.UID, token); err != nil {
		return err
	}
	s.log.Info("issued password reset token", slog.String("uid", user.UID))

	message := models.EmailMessage{
		To:      user.Email,
		Subject: "Сброс пароля",
		Body: fmt.Sprintf("Здравствуйте, %s!\n\nВаш токен для сброса пароля: %s.\nТокен действителен 1 час.",
			user.Username, token),
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyPasswordReset, message); err != nil {
		s.log.Error("failed to publish reset token email", sl.Err(err))
	}
	return nil
}

// VerifyToken проверяет токен и устанавливает новый пароль. Использованный
// токен невалиден; истёкший — отдельная ошибка.
func (s *ResetService) VerifyToken(ctx context.Context, req models.DummyTokenVerify) error {
	found, err := s.repo.FindResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrInvalidResetToken
		}
		return err
	}
	if found.Used {
		return errs.ErrInvalidResetToken
	}
	if time.Since(found.CreatedAt) >= tokenTTL {
		return errs.ErrExpiredResetToken
	}

	hashed, err := password.GetHash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateUserPassword(ctx, found.UserUID, hashed); err != nil {
		return err
	}
	if err := s.repo.MarkResetTokenUsed(ctx, found.ID); err != nil {
		s.log.Error("failed to mark reset token used", sl.Err(err))
	}
	s.log.Info("password reset by token", slog.String("uid", found.UserUID))
	return nil
}
