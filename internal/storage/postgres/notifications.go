package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/diegonavarro95/parkify/internal/domain"
)

// CreateNotifications bulk-inserts one row per recipient inside the caller's
// transaction via a pgx batch.
func (s *Store) CreateNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	const stmt = `
INSERT INTO notificaciones (id, usuario_id, titulo, cuerpo, categoria, entidad_id, leida, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	batch := &pgx.Batch{}
	for _, n := range notifications {
		batch.Queue(stmt, n.ID, n.RecipientID, n.Title, n.Body, n.Category, n.EntityID, n.Read, n.CreatedAt)
	}

	var results pgx.BatchResults
	if tx := txFromContext(ctx); tx != nil {
		results = tx.SendBatch(ctx, batch)
	} else {
		results = s.pool.SendBatch(ctx, batch)
	}
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("create notifications: %w", err)
		}
	}
	return nil
}

func (s *Store) ListNotificationsByRecipient(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error) {
	const query = `
SELECT id, usuario_id, titulo, cuerpo, categoria, entidad_id, leida, created_at
FROM notificaciones
WHERE usuario_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

	rows, err := s.query(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Body, &n.Category, &n.EntityID, &n.Read, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, recipientID string) error {
	const stmt = `UPDATE notificaciones SET leida = TRUE WHERE id = $1 AND usuario_id = $2`

	tag, err := s.exec(ctx, stmt, id, recipientID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
