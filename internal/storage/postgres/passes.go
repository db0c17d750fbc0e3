package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/diegonavarro95/parkify/internal/domain"
)

const passColumns = `id, vehiculo_id, folio, estado, emitido_en, vence_en, qr_url`

// FindActivePass returns the vigente, non-expired pass for a vehicle, or nil.
// The partial unique index on (vehiculo_id) WHERE estado = 'vigente' means at
// most one row can match.
func (s *Store) FindActivePass(ctx context.Context, vehicleID string, now time.Time) (*domain.Pass, error) {
	query := `
SELECT ` + passColumns + `
FROM pases
WHERE vehiculo_id = $1 AND estado = 'vigente' AND vence_en > $2`

	var p domain.Pass
	err := s.queryRow(ctx, query, vehicleID, now).
		Scan(&p.ID, &p.VehicleID, &p.Folio, &p.Status, &p.IssuedAt, &p.ExpiresAt, &p.QRURL)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find active pass: %w", err)
	}
	return &p, nil
}

func (s *Store) HasAnyPass(ctx context.Context, vehicleID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM pases WHERE vehiculo_id = $1)`

	var exists bool
	if err := s.queryRow(ctx, query, vehicleID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("has any pass: %w", err)
	}
	return exists, nil
}

func (s *Store) CreatePass(ctx context.Context, pass domain.Pass) error {
	const stmt = `
INSERT INTO pases (id, vehiculo_id, folio, estado, emitido_en, vence_en, qr_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.exec(ctx, stmt,
		pass.ID, pass.VehicleID, pass.Folio, pass.Status, pass.IssuedAt, pass.ExpiresAt, pass.QRURL)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateActivePass
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create pass: %w", err)
	}
	return nil
}

// ExpireDuePasses transitions vigente passes past their expiry to vencido and
// reports how many rows changed. Safe to re-run.
func (s *Store) ExpireDuePasses(ctx context.Context, now time.Time) (int64, error) {
	const stmt = `UPDATE pases SET estado = 'vencido' WHERE estado = 'vigente' AND vence_en <= $1`

	tag, err := s.exec(ctx, stmt, now)
	if err != nil {
		return 0, fmt.Errorf("expire due passes: %w", err)
	}
	return tag.RowsAffected(), nil
}
