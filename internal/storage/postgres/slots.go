package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/diegonavarro95/parkify/internal/domain"
)

const slotColumns = `id, etiqueta, zona, estado, acceso_id`

func (s *Store) GetSlot(ctx context.Context, id string) (domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM cajones WHERE id = $1`

	var slot domain.Slot
	err := s.queryRow(ctx, query, id).
		Scan(&slot.ID, &slot.Label, &slot.Zone, &slot.Status, &slot.AccessEventID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Slot{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Slot{}, domain.ErrSlotNotFound
		}
		return domain.Slot{}, fmt.Errorf("get slot: %w", err)
	}
	return slot, nil
}

// OccupySlot conditionally marks a slot ocupado and points it at the
// occupying entrada event. The estado guard makes the losing side of a slot
// race fail instead of overwriting occupancy.
func (s *Store) OccupySlot(ctx context.Context, slotID, eventID string) error {
	const stmt = `
UPDATE cajones SET estado = 'ocupado', acceso_id = $2
WHERE id = $1 AND estado = 'disponible'`

	tag, err := s.exec(ctx, stmt, slotID, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("occupy slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSlotUnavailable
	}
	return nil
}

func (s *Store) ReleaseSlot(ctx context.Context, slotID string) error {
	const stmt = `
UPDATE cajones SET estado = 'disponible', acceso_id = NULL
WHERE id = $1 AND estado = 'ocupado'`

	tag, err := s.exec(ctx, stmt, slotID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("release slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}

func (s *Store) CountSlotsByStatus(ctx context.Context, status domain.SlotStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM cajones WHERE estado = $1`

	var count int
	if err := s.queryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return count, nil
}

func (s *Store) ListSlotsByStatus(ctx context.Context, status domain.SlotStatus) ([]domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM cajones WHERE estado = $1 ORDER BY etiqueta`
	return s.listSlots(ctx, query, status)
}

func (s *Store) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM cajones ORDER BY etiqueta`
	return s.listSlots(ctx, query)
}

func (s *Store) listSlots(ctx context.Context, query string, args ...any) ([]domain.Slot, error) {
	rows, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(&slot.ID, &slot.Label, &slot.Zone, &slot.Status, &slot.AccessEventID); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}
