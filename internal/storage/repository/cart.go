package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// UpsertCartItem добавляет товар в корзину пользователя. Если пара
// (пользователь, товар) уже существует, количество увеличивается.
// Возвращает ID позиции корзины.
func (s *Storage) UpsertCartItem(ctx context.Context, userUID string, productID, quantity int) (int, error) {
	const op = "storage.UpsertCartItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cart_items (user_uid, product_id, quantity)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_uid, product_id)
			  DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
			  RETURNING id`
	var id int
	if err := s.DB.QueryRowContext(ctx, query, userUID, productID, quantity).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListCartItems возвращает содержимое корзины пользователя вместе с товарами.
func (s *Storage) ListCartItems(ctx context.Context, userUID string) ([]*models.CartItem, error) {
	const op = "storage.ListCartItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ci.id, ci.user_uid, ci.quantity,
			      p.id, p.name, p.brand, p.gender, p.category, p.price, p.image, p.description
			  FROM cart_items ci
			  JOIN products p ON p.id = ci.product_id
			  WHERE ci.user_uid = $1
			  ORDER BY ci.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Quantity,
			&item.Product.ID, &item.Product.Name, &item.Product.Brand, &item.Product.Gender,
			&item.Product.Category, &item.Product.Price, &item.Product.Image,
			&item.Product.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCartItemQuantity меняет количество позиции корзины, принадлежащей
// пользователю, и возвращает количество изменённых строк.
func (s *Storage) UpdateCartItemQuantity(ctx context.Context, userUID string, itemID, quantity int) (int, error) {
	const op = "storage.UpdateCartItemQuantity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cart_items SET quantity = $1 WHERE id = $2 AND user_uid = $3`
	result, err := s.DB.ExecContext(ctx, query, quantity, itemID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCartItem удаляет позицию корзины пользователя и возвращает
// количество удалённых строк.
func (s *Storage) RemoveCartItem(ctx context.Context, userUID string, itemID int) (int, error) {
	const op = "storage.RemoveCartItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cart_items WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, itemID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
