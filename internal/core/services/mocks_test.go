package services_test

import (
	"context"
	"time"

	"github.com/familypoints/familypoints_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, userIDs)
	var users map[string]domain.User
	if args.Get(0) != nil {
		users = args.Get(0).(map[string]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock GuardianRepository ---

type MockGuardianRepository struct {
	mock.Mock
}

func (m *MockGuardianRepository) Guards(ctx context.Context, parentID string, childID string) (bool, error) {
	args := m.Called(ctx, parentID, childID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuardianRepository) ListChildIDsByParent(ctx context.Context, parentID string) ([]string, error) {
	args := m.Called(ctx, parentID)
	var ids []string
	if args.Get(0) != nil {
		ids = args.Get(0).([]string)
	}
	return ids, args.Error(1)
}

func (m *MockGuardianRepository) ListParentIDsByChild(ctx context.Context, childID string) ([]string, error) {
	args := m.Called(ctx, childID)
	var ids []string
	if args.Get(0) != nil {
		ids = args.Get(0).([]string)
	}
	return ids, args.Error(1)
}

func (m *MockGuardianRepository) LinkChild(ctx context.Context, parentID string, childID string) error {
	args := m.Called(ctx, parentID, childID)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ListEntriesByChild(ctx context.Context, childID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, childID, limit, offset)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByChildren(ctx context.Context, childIDs []string, limit int, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, childIDs, limit, offset)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) SumPointsByChild(ctx context.Context, childID string) (int64, error) {
	args := m.Called(ctx, childID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveRedemption(ctx context.Context, entry domain.LedgerEntry, cost int64) error {
	args := m.Called(ctx, entry, cost)
	return args.Error(0)
}

func (m *MockLedgerRepository) LockChildBalance(ctx context.Context, tx pgx.Tx, childID string) (int64, error) {
	args := m.Called(ctx, tx, childID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

// --- Mock RewardRepository ---

type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) FindRewardByID(ctx context.Context, rewardID string) (*domain.Reward, error) {
	args := m.Called(ctx, rewardID)
	var reward *domain.Reward
	if args.Get(0) != nil {
		reward = args.Get(0).(*domain.Reward)
	}
	return reward, args.Error(1)
}

func (m *MockRewardRepository) ListRewardsByParents(ctx context.Context, parentIDs []string) ([]domain.Reward, error) {
	args := m.Called(ctx, parentIDs)
	var rewards []domain.Reward
	if args.Get(0) != nil {
		rewards = args.Get(0).([]domain.Reward)
	}
	return rewards, args.Error(1)
}

func (m *MockRewardRepository) SaveReward(ctx context.Context, reward domain.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

func (m *MockRewardRepository) UpdateReward(ctx context.Context, reward domain.Reward) error {
	args := m.Called(ctx, reward)
	return args.Error(0)
}

// --- Mock RequestRepository ---

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.RedemptionRequest, error) {
	args := m.Called(ctx, requestID)
	var request *domain.RedemptionRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.RedemptionRequest)
	}
	return request, args.Error(1)
}

func (m *MockRequestRepository) ListRequestsByChild(ctx context.Context, childID string) ([]domain.RedemptionRequest, error) {
	args := m.Called(ctx, childID)
	var requests []domain.RedemptionRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.RedemptionRequest)
	}
	return requests, args.Error(1)
}

func (m *MockRequestRepository) ListRequestsByChildren(ctx context.Context, childIDs []string) ([]domain.RedemptionRequest, error) {
	args := m.Called(ctx, childIDs)
	var requests []domain.RedemptionRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.RedemptionRequest)
	}
	return requests, args.Error(1)
}

func (m *MockRequestRepository) SaveRequest(ctx context.Context, request domain.RedemptionRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRequestRepository) ApproveRequest(ctx context.Context, requestID string, approvedBy string, approvedAt time.Time, entry domain.LedgerEntry, cost int64) error {
	args := m.Called(ctx, requestID, approvedBy, approvedAt, entry, cost)
	return args.Error(0)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
	notified chan struct{}
}

// NewMockNotifier returns a notifier mock whose notified channel receives one
// signal per delivery, so tests can wait for the fire-and-forget goroutine.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{notified: make(chan struct{}, 1)}
}

func (m *MockNotifier) NotifyChildOfPendingTask(ctx context.Context, child domain.User, description string) error {
	args := m.Called(ctx, child, description)
	select {
	case m.notified <- struct{}{}:
	default:
	}
	return args.Error(0)
}
