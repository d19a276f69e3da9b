package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/shop-backend/internal/models"
)

// CreateContactMessage сохраняет входящее обращение и возвращает его ID.
func (s *Storage) CreateContactMessage(ctx context.Context, m models.ContactMessage) (int, error) {
	const op = "storage.CreateContactMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO contact_messages (name, email, message)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, m.Name, m.Email, m.Message).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListContactMessages возвращает обращения, новые первыми.
func (s *Storage) ListContactMessages(ctx context.Context, limit, offset int) ([]*models.ContactMessage, error) {
	const op = "storage.ListContactMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, message, is_read, replied, created_at
			  FROM contact_messages
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message,
			&m.IsRead, &m.Replied, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateContactFlags меняет отметки прочтения/ответа у обращения
// и возвращает количество изменённых строк.
func (s *Storage) UpdateContactFlags(ctx context.Context, id int, isRead, replied *bool) (int, error) {
	const op = "storage.UpdateContactFlags"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE contact_messages
			  SET is_read = COALESCE($1, is_read),
			      replied = COALESCE($2, replied)
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, isRead, replied, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveContactMessage удаляет обращение и возвращает количество удалённых строк.
func (s *Storage) RemoveContactMessage(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveContactMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM contact_messages WHERE id = $1`
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
