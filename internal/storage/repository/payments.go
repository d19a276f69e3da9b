package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// CreatePaymentOrder сохраняет связку заказа магазина с заказом платёжного шлюза.
func (s *Storage) CreatePaymentOrder(ctx context.Context, p models.PaymentOrder) (int, error) {
	const op = "storage.CreatePaymentOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payment_orders (order_id, gateway_order_id, amount, currency)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		p.OrderID, p.GatewayOrderID, p.Amount, p.Currency).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindPaymentOrder возвращает платёж по идентификатору заказа шлюза.
func (s *Storage) FindPaymentOrder(ctx context.Context, gatewayOrderID string) (*models.PaymentOrder, error) {
	const op = "storage.FindPaymentOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, order_id, gateway_order_id, amount, currency, created_at
			  FROM payment_orders
			  WHERE gateway_order_id = $1`
	var p models.PaymentOrder
	if err := s.DB.QueryRowContext(ctx, query, gatewayOrderID).Scan(&p.ID, &p.OrderID,
		&p.GatewayOrderID, &p.Amount, &p.Currency, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
