package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store gives the services SQL-backed persistence. One Store value satisfies
// every repository interface declared in internal/app; methods issued inside
// a WithTx closure share the transaction carried by the context.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
