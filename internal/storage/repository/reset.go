package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// CreateOTP сохраняет новый код сброса пароля. Ранее выданные коды
// пользователя остаются действительными до истечения срока.
func (s *Storage) CreateOTP(ctx context.Context, userUID, code string) (int, error) {
	const op = "storage.CreateOTP"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO password_reset_otps (user_uid, code)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, userUID, code).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindLatestOTP возвращает самый свежий код пользователя, совпадающий
// с предъявленным значением.
func (s *Storage) FindLatestOTP(ctx context.Context, userUID, code string) (*models.PasswordResetOTP, error) {
	const op = "storage.FindLatestOTP"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, code, created_at
			  FROM password_reset_otps
			  WHERE user_uid = $1 AND code = $2
			  ORDER BY created_at DESC, id DESC
			  LIMIT 1`
	var otp models.PasswordResetOTP
	if err := s.DB.QueryRowContext(ctx, query, userUID, code).Scan(&otp.ID, &otp.UserUID,
		&otp.Code, &otp.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &otp, nil
}

// DeleteOTP удаляет код по ID. Успешно применённый код потребляется именно так.
func (s *Storage) DeleteOTP(ctx context.Context, id int) error {
	const op = "storage.DeleteOTP"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM password_reset_otps WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateResetToken сохраняет новый токен сброса пароля.
func (s *Storage) CreateResetToken(ctx context.Context, userUID, token string) (int, error) {
	const op = "storage.CreateResetToken"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO password_reset_tokens (user_uid, token)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, userUID, token).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindResetToken возвращает запись токена по его значению.
func (s *Storage) FindResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	const op = "storage.FindResetToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, token, used, created_at
			  FROM password_reset_tokens
			  WHERE token = $1`
	var t models.PasswordResetToken
	if err := s.DB.QueryRowContext(ctx, query, token).Scan(&t.ID, &t.UserUID,
		&t.Token, &t.Used, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}

// MarkResetTokenUsed помечает токен использованным.
func (s *Storage) MarkResetTokenUsed(ctx context.Context, id int) error {
	const op = "storage.MarkResetTokenUsed"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE password_reset_tokens SET used = TRUE WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
