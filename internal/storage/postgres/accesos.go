package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/diegonavarro95/parkify/internal/domain"
)

// LatestEventByVehicle returns the most recent access event for a vehicle
// across all its passes, or nil when the vehicle never passed the gate. This
// query is the contract behind the "inside iff latest event is an entrada"
// derivation; ties on the timestamp break on id so the order is total.
func (s *Store) LatestEventByVehicle(ctx context.Context, vehicleID string) (*domain.AccessEvent, error) {
	const query = `
SELECT a.id, a.pase_id, a.tipo, a.operador_id, a.cajon_id, a.ocurrido_en
FROM accesos a
JOIN pases p ON p.id = a.pase_id
WHERE p.vehiculo_id = $1
ORDER BY a.ocurrido_en DESC, a.id DESC
LIMIT 1`

	var e domain.AccessEvent
	err := s.queryRow(ctx, query, vehicleID).
		Scan(&e.ID, &e.PassID, &e.Type, &e.OperatorID, &e.SlotID, &e.OccurredAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest event by vehicle: %w", err)
	}
	return &e, nil
}

func (s *Store) CreateEvent(ctx context.Context, event domain.AccessEvent) error {
	const stmt = `
INSERT INTO accesos (id, pase_id, tipo, operador_id, cajon_id, ocurrido_en)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.exec(ctx, stmt,
		event.ID, event.PassID, event.Type, event.OperatorID, event.SlotID, event.OccurredAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create access event: %w", err)
	}
	return nil
}

// ListEventsByPass returns a pass's events oldest first, the order in which
// the entrada/salida alternation invariant is checked.
func (s *Store) ListEventsByPass(ctx context.Context, passID string) ([]domain.AccessEvent, error) {
	const query = `
SELECT id, pase_id, tipo, operador_id, cajon_id, ocurrido_en
FROM accesos
WHERE pase_id = $1
ORDER BY ocurrido_en, id`

	rows, err := s.query(ctx, query, passID)
	if err != nil {
		return nil, fmt.Errorf("list events by pass: %w", err)
	}
	defer rows.Close()

	var events []domain.AccessEvent
	for rows.Next() {
		var e domain.AccessEvent
		if err := rows.Scan(&e.ID, &e.PassID, &e.Type, &e.OperatorID, &e.SlotID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan access event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events by pass: %w", err)
	}
	return events, nil
}

// ListOverstays finds vehicles whose latest event is an entrada recorded
// against a pass that is no longer usable at the given instant.
func (s *Store) ListOverstays(ctx context.Context, now time.Time) ([]domain.Overstay, error) {
	const query = `
SELECT vehiculo_id, usuario_id, placa, vtipo, marca, modelo, color, vcreated,
       pase_id, folio, estado, emitido_en, vence_en, qr_url
FROM (
	SELECT DISTINCT ON (p.vehiculo_id)
		v.id AS vehiculo_id, v.usuario_id, v.placa, v.tipo AS vtipo,
		v.marca, v.modelo, v.color, v.created_at AS vcreated,
		p.id AS pase_id, p.folio, p.estado, p.emitido_en, p.vence_en, p.qr_url,
		a.tipo AS ultimo_tipo
	FROM accesos a
	JOIN pases p ON p.id = a.pase_id
	JOIN vehiculos v ON v.id = p.vehiculo_id
	ORDER BY p.vehiculo_id, a.ocurrido_en DESC, a.id DESC
) ultimos
WHERE ultimo_tipo = 'entrada'
  AND (estado = 'vencido' OR (estado = 'vigente' AND vence_en <= $1))`

	rows, err := s.query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list overstays: %w", err)
	}
	defer rows.Close()

	var overstays []domain.Overstay
	for rows.Next() {
		var o domain.Overstay
		err := rows.Scan(
			&o.Vehicle.ID, &o.Vehicle.OwnerID, &o.Vehicle.Plate, &o.Vehicle.Type,
			&o.Vehicle.Brand, &o.Vehicle.Model, &o.Vehicle.Color, &o.Vehicle.CreatedAt,
			&o.Pass.ID, &o.Pass.Folio, &o.Pass.Status, &o.Pass.IssuedAt, &o.Pass.ExpiresAt, &o.Pass.QRURL,
		)
		if err != nil {
			return nil, fmt.Errorf("scan overstay: %w", err)
		}
		o.Pass.VehicleID = o.Vehicle.ID
		overstays = append(overstays, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list overstays: %w", err)
	}
	return overstays, nil
}
