package pgsql

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxGuardianRepository persists the parent-child guardianship membership.
// The ledger and workflow layers consume it read-only; only child creation
// and explicit linking write to it.
type PgxGuardianRepository struct {
	db *pgxpool.Pool
}

func newPgxGuardianRepository(db *pgxpool.Pool) portsrepo.GuardianRepositoryFacade {
	return &PgxGuardianRepository{db: db}
}

var _ portsrepo.GuardianRepositoryFacade = (*PgxGuardianRepository)(nil)

func (r *PgxGuardianRepository) Guards(ctx context.Context, parentID string, childID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM parent_children WHERE parent_id = $1 AND child_id = $2);`
	var guards bool
	if err := r.db.QueryRow(ctx, query, parentID, childID).Scan(&guards); err != nil {
		return false, fmt.Errorf("failed to check guardianship: %w", err)
	}
	return guards, nil
}

func (r *PgxGuardianRepository) ListChildIDsByParent(ctx context.Context, parentID string) ([]string, error) {
	query := `SELECT child_id FROM parent_children WHERE parent_id = $1 ORDER BY created_at;`
	return r.listIDs(ctx, query, parentID)
}

func (r *PgxGuardianRepository) ListParentIDsByChild(ctx context.Context, childID string) ([]string, error) {
	query := `SELECT parent_id FROM parent_children WHERE child_id = $1 ORDER BY created_at;`
	return r.listIDs(ctx, query, childID)
}

func (r *PgxGuardianRepository) listIDs(ctx context.Context, query string, arg string) ([]string, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query guardianship links: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan guardianship row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guardianship rows: %w", err)
	}
	return ids, nil
}

func (r *PgxGuardianRepository) LinkChild(ctx context.Context, parentID string, childID string) error {
	query := `
        INSERT INTO parent_children (parent_id, child_id, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (parent_id, child_id) DO NOTHING;
    `
	_, err := r.db.Exec(ctx, query, parentID, childID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to link child %s to parent %s: %w", childID, parentID, err)
	}
	return nil
}
