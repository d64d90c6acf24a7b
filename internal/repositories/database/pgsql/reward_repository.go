package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/familypoints/familypoints_app/internal/apperrors"
	"github.com/familypoints/familypoints_app/internal/core/domain"
	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRewardRepository struct {
	db *pgxpool.Pool
}

func newPgxRewardRepository(db *pgxpool.Pool) portsrepo.RewardRepositoryFacade {
	return &PgxRewardRepository{db: db}
}

var _ portsrepo.RewardRepositoryFacade = (*PgxRewardRepository)(nil)

const rewardColumns = `reward_id, parent_id, name, cost, description, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxRewardRepository) SaveReward(ctx context.Context, reward domain.Reward) error {
	query := `
        INSERT INTO rewards (` + rewardColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		reward.RewardID,
		reward.ParentID,
		reward.Name,
		reward.Cost,
		reward.Description,
		reward.CreatedAt,
		reward.CreatedBy,
		reward.LastUpdatedAt,
		reward.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reward %s: %w", reward.RewardID, err)
	}
	return nil
}

func (r *PgxRewardRepository) UpdateReward(ctx context.Context, reward domain.Reward) error {
	query := `
        UPDATE rewards
        SET name = $2, cost = $3, description = $4, last_updated_at = $5, last_updated_by = $6
        WHERE reward_id = $1;
    `
	ct, err := r.db.Exec(ctx, query,
		reward.RewardID,
		reward.Name,
		reward.Cost,
		reward.Description,
		reward.LastUpdatedAt,
		reward.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update reward %s: %w", reward.RewardID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRewardRepository) FindRewardByID(ctx context.Context, rewardID string) (*domain.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE reward_id = $1;`
	var reward domain.Reward
	err := r.db.QueryRow(ctx, query, rewardID).Scan(
		&reward.RewardID,
		&reward.ParentID,
		&reward.Name,
		&reward.Cost,
		&reward.Description,
		&reward.CreatedAt,
		&reward.CreatedBy,
		&reward.LastUpdatedAt,
		&reward.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reward by ID %s: %w", rewardID, err)
	}
	return &reward, nil
}

func (r *PgxRewardRepository) ListRewardsByParents(ctx context.Context, parentIDs []string) ([]domain.Reward, error) {
	if len(parentIDs) == 0 {
		return []domain.Reward{}, nil
	}
	query := `
        SELECT ` + rewardColumns + `
        FROM rewards
        WHERE parent_id = ANY($1)
        ORDER BY created_at DESC;
    `
	rows, err := r.db.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer rows.Close()

	rewards := []domain.Reward{}
	for rows.Next() {
		var reward domain.Reward
		if err := rows.Scan(
			&reward.RewardID,
			&reward.ParentID,
			&reward.Name,
			&reward.Cost,
			&reward.Description,
			&reward.CreatedAt,
			&reward.CreatedBy,
			&reward.LastUpdatedAt,
			&reward.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reward row: %w", err)
		}
		rewards = append(rewards, reward)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reward rows: %w", err)
	}

	return rewards, nil
}
