// Package services содержит бизнес-логику управления пользователями.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/shop-backend/internal/access"
	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// UserRepository описывает контракт для административной работы с пользователями.
type UserRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// ListUsers возвращает список пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// UpdateUserAdmin обновляет роль и блокировку, возвращает число изменённых строк.
	UpdateUserAdmin(ctx context.Context, userUID string, role *string, blocked *bool) (int, error)
	// RemoveUser удаляет пользователя, возвращает число удалённых строк.
	RemoveUser(ctx context.Context, userUID string) (int, error)
}

// UserService реализует административные операции над пользователями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Get возвращает пользователя. Обычный пользователь видит только себя,
// чужие учетные записи для него не существуют.
func (s *UserService) Get(ctx context.Context, actor models.Actor, userUID string) (*models.User, error) {
	if userUID != actor.UID && !access.CanSeeAll(actor) {
		return nil, errs.ErrNotFound
	}
	return s.repo.GetUser(ctx, userUID)
}

// List возвращает список всех пользователей. Доступно только персоналу.
func (s *UserService) List(ctx context.Context, actor models.Actor, limit, offset int) ([]*models.User, error) {
	if !access.CanSeeAll(actor) {
		return nil, errs.ErrForbidden
	}
	return s.repo.ListUsers(ctx, limit, offset)
}

// Update меняет роль и/или блокировку пользователя. Блокировка собственной
// учетной записи запрещена. Права на операцию определяются таблицей доступа.
func (s *UserService) Update(ctx context.Context, actor models.Actor, userUID string, req models.DummyUserUpdate) (*models.User, error) {
	if !access.Allowed(actor, access.ActionUpdate, access.KindUser) {
		return nil, errs.ErrForbidden
	}
	if req.Blocked != nil && *req.Blocked && userUID == actor.UID {
		return nil, errs.ErrSelfBlock
	}

	count, err := s.repo.UpdateUserAdmin(ctx, userUID, req.Role, req.Blocked)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.ErrNotFound
	}
	s.log.Info("updated user", slog.String("uid", userUID))

	return s.repo.GetUser(ctx, userUID)
}

// IsUserBlocked возвращает актуальный признак блокировки по хранилищу.
// Используется middleware для отзыва доступа до истечения срока токена.
func (s *UserService) IsUserBlocked(ctx context.Context, userUID string) (bool, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return false, err
	}
	return user.Blocked, nil
}

// Remove удаляет пользователя. Доступно только суперпользователю.
func (s *UserService) Remove(ctx context.Context, actor models.Actor, userUID string) error {
	if !access.Allowed(actor, access.ActionDelete, access.KindUser) {
		return errs.ErrForbidden
	}

	count, err := s.repo.RemoveUser(ctx, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrNotFound
	}
	s.log.Info("removed user", slog.String("uid", userUID))
	return nil
}
