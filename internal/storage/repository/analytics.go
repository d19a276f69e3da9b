package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// ListOrderSummaries возвращает заголовки всех заказов без позиций.
// Используется аналитикой для агрегации выручки и статусов.
func (s *Storage) ListOrderSummaries(ctx context.Context) ([]*models.Order, error) {
	const op = "storage.ListOrderSummaries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, total, address, status, cancelled_by_admin, created_at
			  FROM orders
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.UserUID, &order.Total, &order.Address,
			&order.Status, &order.CancelledByAdmin, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// TopProducts возвращает товары с наибольшим суммарным проданным количеством.
// При равенстве количеств первым идёт товар с меньшим ID. Флаг excludeCancelled
// исключает из подсчёта позиции отменённых заказов.
func (s *Storage) TopProducts(ctx context.Context, limit int, excludeCancelled bool) ([]*models.ProductSales, error) {
	const op = "storage.TopProducts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.name, p.brand, p.gender, p.category, p.price, p.image, p.description,
			      SUM(oi.quantity) AS sold
			  FROM order_items oi
			  JOIN orders o ON o.id = oi.order_id
			  JOIN products p ON p.id = oi.product_id
			  WHERE NOT ($1 AND o.status = $2)
			  GROUP BY p.id
			  ORDER BY sold DESC, p.id
			  LIMIT $3`
	rows, err := s.DB.QueryContext(ctx, query, excludeCancelled, models.OrderStatusCancelled, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ProductSales
	for rows.Next() {
		var item models.ProductSales
		if err := rows.Scan(&item.Product.ID, &item.Product.Name, &item.Product.Brand,
			&item.Product.Gender, &item.Product.Category, &item.Product.Price,
			&item.Product.Image, &item.Product.Description, &item.Quantity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
