package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/diegonavarro95/parkify/internal/domain"
)

const vehicleColumns = `id, usuario_id, placa, tipo, marca, modelo, color, created_at`

func (s *Store) GetVehicle(ctx context.Context, id string) (domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehiculos WHERE id = $1`
	return s.scanVehicle(s.queryRow(ctx, query, id))
}

// GetVehicleForUpdate locks the vehicle row for the rest of the transaction.
// The access service uses this as the per-vehicle serialization point.
func (s *Store) GetVehicleForUpdate(ctx context.Context, id string) (domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehiculos WHERE id = $1 FOR UPDATE`
	return s.scanVehicle(s.queryRow(ctx, query, id))
}

func (s *Store) scanVehicle(row pgx.Row) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(&v.ID, &v.OwnerID, &v.Plate, &v.Type, &v.Brand, &v.Model, &v.Color, &v.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Vehicle{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Vehicle{}, domain.ErrVehicleNotFound
		}
		return domain.Vehicle{}, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

func (s *Store) CreateVehicle(ctx context.Context, v domain.Vehicle) error {
	const stmt = `
INSERT INTO vehiculos (id, usuario_id, placa, tipo, marca, modelo, color, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.exec(ctx, stmt, v.ID, v.OwnerID, v.Plate, v.Type, v.Brand, v.Model, v.Color, v.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}
