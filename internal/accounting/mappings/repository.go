package mappings

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository loads role mappings from the account_mappings table.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Mapping loads every role binding for the given document kind.
func (r *Repository) Mapping(ctx context.Context, kind DocumentKind) (Mapping, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT role, account_code FROM account_mappings WHERE document_kind=$1`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := make(Mapping)
	for rows.Next() {
		var role, code string
		if err := rows.Scan(&role, &code); err != nil {
			return nil, err
		}
		m[Role(role)] = code
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, ErrMappingNotFound
	}
	return m, nil
}
