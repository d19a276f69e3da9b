package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// AddWishlistItem сохраняет товар в список желаний пользователя.
// Повторное добавление того же товара не создаёт дубликата.
func (s *Storage) AddWishlistItem(ctx context.Context, userUID string, productID int) (int, error) {
	const op = "storage.AddWishlistItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO wishlist_items (user_uid, product_id)
			  VALUES ($1, $2)
			  ON CONFLICT (user_uid, product_id) DO UPDATE SET product_id = EXCLUDED.product_id
			  RETURNING id`
	var id int
	if err := s.DB.QueryRowContext(ctx, query, userUID, productID).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListWishlistItems возвращает список желаний пользователя вместе с товарами.
func (s *Storage) ListWishlistItems(ctx context.Context, userUID string) ([]*models.WishlistItem, error) {
	const op = "storage.ListWishlistItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT wi.id, wi.user_uid,
			      p.id, p.name, p.brand, p.gender, p.category, p.price, p.image, p.description
			  FROM wishlist_items wi
			  JOIN products p ON p.id = wi.product_id
			  WHERE wi.user_uid = $1
			  ORDER BY wi.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.WishlistItem
	for rows.Next() {
		var item models.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserUID,
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

// RemoveWishlistItem удаляет запись списка желаний. Пустой userUID
// означает удаление без проверки владельца (для суперпользователя).
func (s *Storage) RemoveWishlistItem(ctx context.Context, userUID string, itemID int) (int, error) {
	const op = "storage.RemoveWishlistItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM wishlist_items
			  WHERE id = $1 AND ($2 = '' OR user_uid::TEXT = $2)`
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
