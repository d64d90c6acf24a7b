package repositories

// RepositoryProvider bundles all repository facades for wiring into services.
type RepositoryProvider struct {
	UserRepo     UserRepositoryFacade
	GuardianRepo GuardianRepositoryFacade
	LedgerRepo   LedgerRepositoryWithTx
	RewardRepo   RewardRepositoryFacade
	RequestRepo  RequestRepositoryFacade
}
