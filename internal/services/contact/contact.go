// Package services содержит бизнес-логику обращений в поддержку.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/shop-backend/internal/access"
	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// ContactRepository определяет методы для работы с обращениями в хранилище.
type ContactRepository interface {
	// CreateContactMessage сохраняет входящее обращение.
	CreateContactMessage(ctx context.Context, m models.ContactMessage) (int, error)
	// ListContactMessages возвращает обращения, новые первыми.
	ListContactMessages(ctx context.Context, limit, offset int) ([]*models.ContactMessage, error)
	// UpdateContactFlags меняет отметки прочтения/ответа.
	UpdateContactFlags(ctx context.Context, id int, isRead, replied *bool) (int, error)
	// RemoveContactMessage удаляет обращение.
	RemoveContactMessage(ctx context.Context, id int) (int, error)
}

// ContactService реализует приём обращений и их административную разборку.
// Текст обращения после создания не редактируется: администратор меняет
// только отметки прочтения и ответа.
type ContactService struct {
	repo ContactRepository
	log  *slog.Logger
}

// NewContactService создает новый экземпляр ContactService.
func NewContactService(repo ContactRepository, log *slog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log}
}

// Create принимает публичное обращение. Аутентификация не требуется.
func (s *ContactService) Create(ctx context.Context, req models.DummyContactMessage) (int, error) {
	id, err := s.repo.CreateContactMessage(ctx, models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("received contact message", slog.Int("id", id))
	return id, nil
}

// List возвращает обращения. Доступно только персоналу.
func (s *ContactService) List(ctx context.Context, actor models.Actor, limit, offset int) ([]*models.ContactMessage, error) {
	if !access.CanSeeAll(actor) {
		return nil, errs.ErrForbidden
	}
	return s.repo.ListContactMessages(ctx, limit, offset)
}

// UpdateFlags меняет отметки прочтения/ответа у обращения.
func (s *ContactService) UpdateFlags(ctx context.Context, actor models.Actor, id int, req models.DummyContactFlags) error {
	if !access.Allowed(actor, access.ActionUpdate, access.KindContact) {
		return errs.ErrForbidden
	}

	count, err := s.repo.UpdateContactFlags(ctx, id, req.IsRead, req.Replied)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Remove удаляет обращение.
func (s *ContactService) Remove(ctx context.Context, actor models.Actor, id int) error {
	if !access.Allowed(actor, access.ActionDelete, access.KindContact) {
		return errs.ErrForbidden
	}

	count, err := s.repo.RemoveContactMessage(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrNotFound
	}
	return nil
}
