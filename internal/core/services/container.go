package services

import (
	portsrepo "github.com/familypoints/familypoints_app/internal/core/ports/repositories"
	portssvc "github.com/familypoints/familypoints_app/internal/core/ports/services"
)

// NewServiceContainer wires all services against the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:       NewUserService(repos.UserRepo, repos.GuardianRepo, repos.LedgerRepo),
		Ledger:     NewLedgerService(repos.LedgerRepo, repos.UserRepo, repos.GuardianRepo),
		Reward:     NewRewardService(repos.RewardRepo, repos.UserRepo, repos.GuardianRepo),
		Redemption: NewRedemptionService(repos.LedgerRepo, repos.RewardRepo, repos.UserRepo, repos.GuardianRepo),
		Request:    NewRequestService(repos.RequestRepo, repos.RewardRepo, repos.UserRepo, repos.GuardianRepo, notifier),
	}
}
