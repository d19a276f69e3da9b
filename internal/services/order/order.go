// Package services содержит бизнес-логику оформления и сопровождения заказов.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/shop-backend/internal/access"
	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// OrderRepository определяет методы для работы с заказами в хранилище.
type OrderRepository interface {
	// Checkout атомарно превращает корзину пользователя в заказ.
	Checkout(ctx context.Context, userUID, address string) (*models.Order, error)
	// ReadOrder возвращает заказ с позициями; непустой userUID ограничивает владельцем.
	ReadOrder(ctx context.Context, id int, userUID string) (*models.Order, error)
	// ListOrders возвращает заказы; непустой userUID ограничивает владельцем.
	ListOrders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, error)
	// UpdateOrderStatus меняет статус заказа.
	UpdateOrderStatus(ctx context.Context, id int, status string, cancelledByAdmin bool) (int, error)
	// RemoveOrder удаляет заказ вместе с позициями.
	RemoveOrder(ctx context.Context, id int) (int, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// EventPublisher публикует события почтовых уведомлений в брокер.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// OrderService реализует оформление заказа из корзины и административное
// сопровождение заказов.
type OrderService struct {
	repo      OrderRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewOrderService создает новый экземпляр OrderService.
func NewOrderService(repo OrderRepository, publisher EventPublisher, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Checkout оформляет заказ из текущей корзины актора и ставит в очередь
// письмо с подтверждением. Сбой публикации не отменяет уже созданный заказ.
func (s *OrderService) Checkout(ctx context.Context, actor models.Actor, req models.DummyCheckout) (*models.Order, error) {
	order, err := s.repo.Checkout(ctx, actor.UID, req.Address)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new order",
		slog.Int("id", order.ID),
		slog.Float64("total", order.Total))

	user, err := s.repo.GetUser(ctx, actor.UID)
	if err != nil {
		s.log.Error("failed to load user for order confirmation", sl.Err(err))
		return order, nil
	}
	message := models.EmailMessage{
		To:      user.Email,
		Subject: fmt.Sprintf("Подтверждение заказа №%d", order.ID),
		Body: fmt.Sprintf("Здравствуйте, %s!\n\nВаш заказ №%d на сумму %.2f принят и ожидает оплаты.\nАдрес доставки: %s.",
			user.Username, order.ID, order.Total, order.Address),
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyOrderConfirmation, message); err != nil {
		s.log.Error("failed to publish order confirmation", sl.Err(err))
	}
	return order, nil
}

// List возвращает заказы: персонал видит все, покупатель — только собственные.
func (s *OrderService) List(ctx context.Context, actor models.Actor, limit, offset int) ([]*models.Order, error) {
	ownerUID := actor.UID
	if access.CanSeeAll(actor) {
		ownerUID = ""
	}
	return s.repo.ListOrders(ctx, ownerUID, limit, offset)
}

// Read возвращает заказ по ID. Чужой заказ для покупателя неотличим
// от несуществующего.
func (s *OrderService) Read(ctx context.Context, actor models.Actor, id int) (*models.Order, error) {
	ownerUID := actor.UID
	if access.CanSeeAll(actor) {
		ownerUID = ""
	}
	return s.repo.ReadOrder(ctx, id, ownerUID)
}

// UpdateStatus меняет статус заказа. Доступно персоналу; перевод в Cancelled
// этим путем помечает заказ отмененным администратором.
func (s *OrderService) UpdateStatus(ctx context.Context, actor models.Actor, id int, req models.DummyOrderStatus) (*models.Order, error) {
	if !access.Allowed(actor, access.ActionUpdate, access.KindOrder) {
		return nil, errs.ErrForbidden
	}

	cancelledByAdmin := req.Status == models.OrderStatusCancelled
	count, err := s.repo.UpdateOrderStatus(ctx, id, req.Status, cancelledByAdmin)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.ErrNotFound
	}
	s.log.Info("updated order status", slog.Int("id", id), slog.String("status", req.Status))

	return s.repo.ReadOrder(ctx, id, "")
}

// Remove удаляет заказ. Доступно только суперпользователю.
func (s *OrderService) Remove(ctx context.Context, actor models.Actor, id int) error {
	if !access.Allowed(actor, access.ActionDelete, access.KindOrder) {
		return errs.ErrForbidden
	}

	count, err := s.repo.RemoveOrder(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrNotFound
	}
	s.log.Info("removed order", slog.Int("id", id))
	return nil
}
