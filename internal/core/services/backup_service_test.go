package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/core/services"
)

// --- Mock SnapshotRepository ---
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) FindSnapshotByUserID(ctx context.Context, userID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, userID)
	var snapshot *domain.Snapshot
	if args.Get(0) != nil {
		snapshot = args.Get(0).(*domain.Snapshot)
	}
	return snapshot, args.Error(1)
}

// --- Test Suite ---
type BackupServiceTestSuite struct {
	suite.Suite
	mockSnapshotRepo *MockSnapshotRepository
	service          portssvc.BackupSvc
}

func (suite *BackupServiceTestSuite) SetupTest() {
	suite.mockSnapshotRepo = new(MockSnapshotRepository)
	suite.service = services.NewBackupService(suite.mockSnapshotRepo)
}

func (suite *BackupServiceTestSuite) TestStoreSnapshot_Success() {
	ctx := context.Background()
	expenses := []domain.Expense{{ID: "e1", Amount: decimal.RequireFromString("10"), AccountID: "a1"}}
	accounts := []domain.Account{{ID: "a1", Name: "Checking", Balance: decimal.RequireFromString("90")}}

	suite.mockSnapshotRepo.On("SaveSnapshot", ctx, mock.MatchedBy(func(s domain.Snapshot) bool {
		return s.UserID == "user-1" && len(s.Expenses) == 1 && len(s.Accounts) == 1 && !s.UpdatedAt.IsZero()
	})).Return(nil).Once()

	updatedAt, err := suite.service.StoreSnapshot(ctx, "user-1", expenses, accounts)

	suite.Require().NoError(err)
	suite.WithinDuration(time.Now(), updatedAt, 5*time.Second)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *BackupServiceTestSuite) TestStoreSnapshot_RequiresUserID() {
	_, err := suite.service.StoreSnapshot(context.Background(), "", nil, nil)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "SaveSnapshot", mock.Anything, mock.Anything)
}

func (suite *BackupServiceTestSuite) TestStoreSnapshot_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockSnapshotRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.Snapshot")).Return(expectedErr).Once()

	_, err := suite.service.StoreSnapshot(ctx, "user-1", nil, nil)

	suite.ErrorIs(err, expectedErr)
}

func (suite *BackupServiceTestSuite) TestFetchSnapshot_Success() {
	ctx := context.Background()
	expected := &domain.Snapshot{UserID: "user-1", UpdatedAt: time.Now()}

	suite.mockSnapshotRepo.On("FindSnapshotByUserID", ctx, "user-1").Return(expected, nil).Once()

	snapshot, err := suite.service.FetchSnapshot(ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal(expected, snapshot)
}

func (suite *BackupServiceTestSuite) TestFetchSnapshot_NotFound() {
	ctx := context.Background()

	suite.mockSnapshotRepo.On("FindSnapshotByUserID", ctx, "user-1").Return(nil, apperrors.ErrNotFound).Once()

	snapshot, err := suite.service.FetchSnapshot(ctx, "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(snapshot)
}

func TestBackupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BackupServiceTestSuite))
}
