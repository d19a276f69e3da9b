// Package services содержит бизнес-логику корзины покупателя.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// CartRepository определяет методы для работы с корзиной в хранилище.
type CartRepository interface {
	// UpsertCartItem добавляет товар в корзину либо увеличивает количество.
	UpsertCartItem(ctx context.Context, userUID string, productID, quantity int) (int, error)
	// ListCartItems возвращает содержимое корзины пользователя.
	ListCartItems(ctx context.Context, userUID string) ([]*models.CartItem, error)
	// UpdateCartItemQuantity меняет количество позиции корзины.
	UpdateCartItemQuantity(ctx context.Context, userUID string, itemID, quantity int) (int, error)
	// RemoveCartItem удаляет позицию корзины.
	RemoveCartItem(ctx context.Context, userUID string, itemID int) (int, error)
	// ReadProduct возвращает товар по ID.
	ReadProduct(ctx context.Context, id int) (*models.Product, error)
}

// CartService реализует операции покупателя над собственной корзиной.
// Чужие позиции недостижимы на уровне выборки и неотличимы от несуществующих.
type CartService struct {
	repo CartRepository
	log  *slog.Logger
}

// NewCartService создает новый экземпляр CartService.
func NewCartService(repo CartRepository, log *slog.Logger) *CartService {
	return &CartService{repo: repo, log: log}
}

// Add кладет товар в корзину актора. Повторное добавление того же товара
// суммирует количество.
func (s *CartService) Add(ctx context.Context, actor models.Actor, req models.DummyCartItem) (int, error) {
	if _, err := s.repo.ReadProduct(ctx, req.ProductID); err != nil {
		return 0, err
	}

	id, err := s.repo.UpsertCartItem(ctx, actor.UID, req.ProductID, req.Quantity)
	if err != nil {
		return 0, err
	}
	s.log.Info("added item to cart", slog.Int("product_id", req.ProductID), slog.Int("quantity", req.Quantity))
	return id, nil
}

// List возвращает содержимое корзины актора.
func (s *CartService) List(ctx context.Context, actor models.Actor) ([]*models.CartItem, error) {
	return s.repo.ListCartItems(ctx, actor.UID)
}

// Update меняет количество позиции корзины актора.
func (s *CartService) Update(ctx context.Context, actor models.Actor, itemID int, req models.DummyCartUpdate) error {
	count, err := s.repo.UpdateCartItemQuantity(ctx, actor.UID, itemID, req.Quantity)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Remove удаляет позицию корзины актора.
func (s *CartService) Remove(ctx context.Context, actor models.Actor, itemID int) error {
	count, err := s.repo.RemoveCartItem(ctx, actor.UID, itemID)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrNotFound
	}
	return nil
}
