// Package services содержит бизнес-логику списка желаний.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// WishlistRepository определяет методы для работы со списком желаний в хранилище.
type WishlistRepository interface {
	// AddWishlistItem сохраняет товар в список желаний без дубликатов.
	AddWishlistItem(ctx context.Context, userUID string, productID int) (int, error)
	// ListWishlistItems возвращает список желаний пользователя.
	ListWishlistItems(ctx context.Context, userUID string) ([]*models.WishlistItem, error)
	// RemoveWishlistItem удаляет запись; пустой userUID отключает проверку владельца.
	RemoveWishlistItem(ctx context.Context, userUID string, itemID int) (int, error)
	// ReadProduct возвращает товар по ID.
	ReadProduct(ctx context.Context, id int) (*models.Product, error)
}

// WishlistService реализует операции над списком желаний. Записи неизменяемы:
// их можно создать и удалить, но не отредактировать.
type WishlistService struct {
	repo WishlistRepository
	log  *slog.Logger
}

// NewWishlistService создает новый экземпляр WishlistService.
func NewWishlistService(repo WishlistRepository, log *slog.Logger) *WishlistService {
	return &WishlistService{repo: repo, log: log}
}

// Add сохраняет товар в список желаний актора. Повторное добавление
// того же товара не создает дубликата.
func (s *WishlistService) Add(ctx context.Context, actor models.Actor, req models.DummyWishlistItem) (int, error) {
	if _, err := s.repo.ReadProduct(ctx, req.ProductID); err != nil {
		return 0, err
	}

	id, err := s.repo.AddWishlistItem(ctx, actor.UID, req.ProductID)
	if err != nil {
		return 0, err
	}
	s.log.Info("added item to wishlist", slog.Int("product_id", req.ProductID))
	return id, nil
}

// List возвращает список желаний актора.
func (s *WishlistService) List(ctx context.Context, actor models.Actor) ([]*models.WishlistItem, error) {
	return s.repo.ListWishlistItems(ctx, actor.UID)
}

// Remove удаляет запись списка желаний. Суперпользователь может удалить
// любую запись, остальные — только собственные.
func (s *WishlistService) Remove(ctx context.Context, actor models.Actor, itemID int) error {
	ownerUID := actor.UID
	if actor.IsSuperuser {
		ownerUID = ""
	}

	count, err := s.repo.RemoveWishlistItem(ctx, ownerUID, itemID)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrNotFound
	}
	return nil
}
