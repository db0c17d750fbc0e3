package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/diegonavarro95/parkify/internal/domain"
)

func (s *Store) GetUser(ctx context.Context, id string) (domain.User, error) {
	const query = `SELECT id, nombre, email, rol, activo, created_at FROM usuarios WHERE id = $1`

	var u domain.User
	err := s.queryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Active, &u.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.User{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ListActiveStaff returns the active operator and admin accounts that receive
// access notifications.
func (s *Store) ListActiveStaff(ctx context.Context) ([]domain.User, error) {
	const query = `
SELECT id, nombre, email, rol, activo, created_at
FROM usuarios
WHERE activo AND rol IN ('operador', 'admin')
ORDER BY nombre`

	rows, err := s.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active staff: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active staff: %w", err)
	}
	return users, nil
}
