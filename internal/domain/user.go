package domain

import "time"

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleOperador  UserRole = "operador"
	UserRoleResidente UserRole = "residente"
	UserRoleVisitante UserRole = "visitante"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Role      UserRole
	Active    bool
	CreatedAt time.Time
}
