package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository resolves accounts from the chart-of-accounts table.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Lookup resolves an account by code.
func (r *Repository) Lookup(ctx context.Context, code string) (Account, error) {
	if code == "" {
		return Account{}, fmt.Errorf("accounts: code required")
	}
	var acc Account
	err := r.db.QueryRow(ctx,
		`SELECT code, name, type, normal_side FROM accounts WHERE code=$1`, code).
		Scan(&acc.Code, &acc.Name, &acc.Type, &acc.NormalSide)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return acc, nil
}

// List returns the full chart ordered by code.
func (r *Repository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT code, name, type, normal_side FROM accounts ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accs []Account
	for rows.Next() {
		var acc Account
		if err := rows.Scan(&acc.Code, &acc.Name, &acc.Type, &acc.NormalSide); err != nil {
			return nil, err
		}
		accs = append(accs, acc)
	}
	return accs, rows.Err()
}
