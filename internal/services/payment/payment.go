// Package services содержит бизнес-логику приёма оплаты через платёжный шлюз.
package services

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
	"github.com/magabrotheeeer/shop-backend/internal/paymentprovider"
)

// PaymentRepository определяет методы хранилища для платежей.
type PaymentRepository interface {
	// ReadOrder возвращает заказ; непустой userUID ограничивает владельцем.
	ReadOrder(ctx context.Context, id int, userUID string) (*models.Order, error)
	// UpdateOrderStatus меняет статус заказа.
	UpdateOrderStatus(ctx context.Context, id int, status string, cancelledByAdmin bool) (int, error)
	// CreatePaymentOrder сохраняет связку заказа с заказом шлюза.
	CreatePaymentOrder(ctx context.Context, p models.PaymentOrder) (int, error)
	// FindPaymentOrder возвращает платёж по идентификатору заказа шлюза.
	FindPaymentOrder(ctx context.Context, gatewayOrderID string) (*models.PaymentOrder, error)
}

// GatewayClient описывает операции платёжного шлюза.
type GatewayClient interface {
	// CreateOrder создаёт заказ на стороне шлюза.
	CreateOrder(req paymentprovider.CreateOrderRequest) (*paymentprovider.CreateOrderResponse, error)
	// VerifySignature проверяет подпись результата оплаты.
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// PaymentService создаёт заказы в платёжном шлюзе и подтверждает оплату
// по подписи результата.
type PaymentService struct {
	repo     PaymentRepository
	gateway  GatewayClient
	currency string
	log      *slog.Logger
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(repo PaymentRepository, gateway GatewayClient, currency string, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		gateway:  gateway,
		currency: currency,
		log:      log,
	}
}

// Create создаёт заказ в шлюзе для заказа актора. Сумма передаётся шлюзу
// в минорных единицах валюты. Чужой заказ для покупателя неотличим
// от несуществующего.
func (s *PaymentService) Create(ctx context.Context, actor models.Actor, req models.DummyPaymentCreate) (*models.PaymentOrder, error) {
	order, err := s.repo.ReadOrder(ctx, req.OrderID, actor.UID)
	if err != nil {
		return nil, err
	}

	gatewayReq := paymentprovider.CreateOrderRequest{
		Amount:   int64(math.Round(order.Total * 100)),
		Currency: s.currency,
		Receipt:  "order-" + strconv.Itoa(order.ID),
	}
	gatewayResp, err := s.gateway.CreateOrder(gatewayReq)
	if err != nil {
		return nil, err
	}

	payment := models.PaymentOrder{
		OrderID:        order.ID,
		GatewayOrderID: gatewayResp.ID,
		Amount:         order.Total,
		Currency:       s.currency,
	}
	id, err := s.repo.CreatePaymentOrder(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = id
	s.log.Info("created gateway order",
		slog.Int("order_id", order.ID),
		slog.String("gateway_order_id", gatewayResp.ID))
	return &payment, nil
}

// Verify проверяет подпись результата оплаты и переводит заказ в Paid.
// Неверная подпись не меняет состояние заказа.
func (s *PaymentService) Verify(ctx context.Context, req models.DummyPaymentVerify) (*models.Order, error) {
	payment, err := s.repo.FindPaymentOrder(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		s.log.Warn("payment signature mismatch",
			slog.String("gateway_order_id", req.GatewayOrderID))
		return nil, errs.ErrInvalidSignature
	}

	if _, err := s.repo.UpdateOrderStatus(ctx, payment.OrderID, models.OrderStatusPaid, false); err != nil {
		return nil, err
	}
	s.log.Info("payment captured", slog.Int("order_id", payment.OrderID))

	return s.repo.ReadOrder(ctx, payment.OrderID, "")
}
