package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/errs"
	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// Checkout оформляет заказ из текущей корзины пользователя в одной транзакции:
// атомарно изымает строки корзины через DELETE ... RETURNING, фиксирует цены,
// создаёт заголовок заказа и его позиции. Пустая корзина (в том числе уже
// изъятая конкурентным оформлением) приводит к errs.ErrEmptyCart без
// каких-либо изменений в базе.
func (s *Storage) Checkout(ctx context.Context, userUID, address string) (*models.Order, error) {
	const op = "storage.Checkout"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	consumeQuery := `DELETE FROM cart_items ci
			  USING products p
			  WHERE ci.product_id = p.id AND ci.user_uid = $1
			  RETURNING p.id, p.name, p.brand, p.gender, p.category, p.price, p.image, p.description,
			      ci.quantity`
	rows, err := tx.QueryContext(ctx, consumeQuery, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var items []models.OrderItem
	var total float64
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.Product.ID, &item.Product.Name, &item.Product.Brand,
			&item.Product.Gender, &item.Product.Category, &item.Product.Price,
			&item.Product.Image, &item.Product.Description, &item.Quantity); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		total += item.Product.Price * float64(item.Quantity)
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrEmptyCart)
	}

	order := &models.Order{
		UserUID: userUID,
		Total:   total,
		Address: address,
		Status:  models.OrderStatusPending,
	}
	orderQuery := `INSERT INTO orders (user_uid, total, address, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, orderQuery,
		order.UserUID, order.Total, order.Address, order.Status).Scan(&order.ID, &order.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, quantity)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	for i := range items {
		items[i].OrderID = order.ID
		if err := tx.QueryRowContext(ctx, itemQuery,
			order.ID, items[i].Product.ID, items[i].Quantity).Scan(&items[i].ID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	order.Items = items

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// ReadOrder возвращает заказ с позициями по его ID. Непустой userUID
// ограничивает выборку заказами этого пользователя.
func (s *Storage) ReadOrder(ctx context.Context, id int, userUID string) (*models.Order, error) {
	const op = "storage.ReadOrder"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, total, address, status, cancelled_by_admin, created_at
			  FROM orders
			  WHERE id = $1 AND ($2 = '' OR user_uid::TEXT = $2)`
	var order models.Order
	if err := s.DB.QueryRowContext(ctx, query, id, userUID).Scan(&order.ID, &order.UserUID,
		&order.Total, &order.Address, &order.Status, &order.CancelledByAdmin,
		&order.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.listOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	order.Items = items
	return &order, nil
}

func (s *Storage) listOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	query := `SELECT oi.id, oi.order_id, oi.quantity,
			      p.id, p.name, p.brand, p.gender, p.category, p.price, p.image, p.description
			  FROM order_items oi
			  JOIN products p ON p.id = oi.product_id
			  WHERE oi.order_id = $1
			  ORDER BY oi.id`
	rows, err := s.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Quantity,
			&item.Product.ID, &item.Product.Name, &item.Product.Brand, &item.Product.Gender,
			&item.Product.Category, &item.Product.Price, &item.Product.Image,
			&item.Product.Description); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListOrders возвращает заказы с пагинацией. Непустой userUID
// ограничивает выборку заказами этого пользователя.
func (s *Storage) ListOrders(ctx context.Context, userUID string, limit, offset int) ([]*models.Order, error) {
	const op = "storage.ListOrders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, total, address, status, cancelled_by_admin, created_at
			  FROM orders
			  WHERE ($1 = '' OR user_uid::TEXT = $1)
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
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

	for _, order := range result {
		items, err := s.listOrderItems(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		order.Items = items
	}
	return result, nil
}

// UpdateOrderStatus меняет статус заказа. Флаг cancelledByAdmin выставляется
// только при административном переводе заказа в Cancelled и никогда
// не сбрасывается обратно.
func (s *Storage) UpdateOrderStatus(ctx context.Context, id int, status string, cancelledByAdmin bool) (int, error) {
	const op = "storage.UpdateOrderStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE orders
			  SET status = $1,
			      cancelled_by_admin = cancelled_by_admin OR $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, status, cancelledByAdmin, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveOrder удаляет заказ вместе с позициями и возвращает количество
// удалённых заголовков.
func (s *Storage) RemoveOrder(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveOrder"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM orders WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
