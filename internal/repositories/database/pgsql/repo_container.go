package pgsql

import (
	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	guardianRepo := newPgxGuardianRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	rewardRepo := newPgxRewardRepository(dbPool)
	requestRepo := newPgxRequestRepository(dbPool, ledgerRepo)

	return portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		GuardianRepo: guardianRepo,
		LedgerRepo:   ledgerRepo,
		RewardRepo:   rewardRepo,
		RequestRepo:  requestRepo,
	}
}
