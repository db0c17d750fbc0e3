package postgres

import (
	"context"
	"fmt"

	"github.com/diegonavarro95/parkify/internal/domain"
)

func (s *Store) HasOpenAlert(ctx context.Context, passID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM alertas WHERE pase_id = $1 AND NOT revisada)`

	var exists bool
	if err := s.queryRow(ctx, query, passID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("has open alert: %w", err)
	}
	return exists, nil
}

func (s *Store) CreateAlert(ctx context.Context, alert domain.Alert) error {
	const stmt = `
INSERT INTO alertas (id, pase_id, vehiculo_id, mensaje, revisada, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.exec(ctx, stmt,
		alert.ID, alert.PassID, alert.VehicleID, alert.Message, alert.Reviewed, alert.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAlert
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

func (s *Store) ListAlerts(ctx context.Context, onlyOpen bool, limit int) ([]domain.Alert, error) {
	query := `
SELECT id, pase_id, vehiculo_id, mensaje, revisada, created_at
FROM alertas`
	if onlyOpen {
		query += ` WHERE NOT revisada`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT $1`

	rows, err := s.query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.Alert
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(&a.ID, &a.PassID, &a.VehicleID, &a.Message, &a.Reviewed, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

func (s *Store) MarkAlertReviewed(ctx context.Context, id string) error {
	const stmt = `UPDATE alertas SET revisada = TRUE WHERE id = $1`

	tag, err := s.exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("mark alert reviewed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}
