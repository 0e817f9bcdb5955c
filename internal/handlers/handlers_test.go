package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendtrail/spendtrail_app/internal/apperrors"
	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/core/services"
	"github.com/spendtrail/spendtrail_app/internal/dto"
	"github.com/spendtrail/spendtrail_app/internal/handlers"
	"github.com/spendtrail/spendtrail_app/internal/utils"
	"github.com/spendtrail/spendtrail_app/pkg/config"
)

// --- Mock UserSvc ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) LoginOrRegister(ctx context.Context, email, password string) (*domain.User, bool, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Bool(1), args.Error(2)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

var _ portssvc.UserSvc = (*MockUserService)(nil)

// --- Mock BackupSvc ---
type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) StoreSnapshot(ctx context.Context, userID string, expenses []domain.Expense, accounts []domain.Account) (time.Time, error) {
	args := m.Called(ctx, userID, expenses, accounts)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockBackupService) FetchSnapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, userID)
	var snapshot *domain.Snapshot
	if args.Get(0) != nil {
		snapshot = args.Get(0).(*domain.Snapshot)
	}
	return snapshot, args.Error(1)
}

var _ portssvc.BackupSvc = (*MockBackupService)(nil)

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockUserSvc *MockUserService
	mockBackup  *MockBackupService
	cfg         *config.Config
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "test",
	}
	suite.mockUserSvc = new(MockUserService)
	suite.mockBackup = new(MockBackupService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, suite.mockUserSvc, suite.mockBackup, services.NewGoogleOAuthService(suite.cfg))
}

func (suite *HandlersTestSuite) bearerFor(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.cfg.JWTSecret, suite.cfg.JWTExpiryDuration, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *HandlersTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: uuid.NewString(), Email: "user@example.com"}
	suite.mockUserSvc.On("LoginOrRegister", mock.Anything, "user@example.com", "password123").
		Return(user, false, nil).Once()

	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.NotEmpty(resp.Token)
	suite.Equal(user.UserID, resp.UID)

	claims, err := utils.ParseAndValidateJWT(resp.Token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
}

func (suite *HandlersTestSuite) TestLogin_AutoRegisterReturns201() {
	user := &domain.User{UserID: uuid.NewString(), Email: "new@example.com"}
	suite.mockUserSvc.On("LoginOrRegister", mock.Anything, "new@example.com", "password123").
		Return(user, true, nil).Once()

	body, _ := json.Marshal(dto.LoginRequest{Email: "new@example.com", Password: "password123"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlersTestSuite) TestLogin_WrongPassword() {
	suite.mockUserSvc.On("LoginOrRegister", mock.Anything, "user@example.com", "wrongpassword").
		Return(nil, false, apperrors.ErrUnauthorized).Once()

	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.com", Password: "wrongpassword"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.NotEmpty(resp.Message)
}

func (suite *HandlersTestSuite) TestLogin_MalformedBody() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "LoginOrRegister", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestBackup_RequiresToken() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/backup", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBackup.AssertNotCalled(suite.T(), "StoreSnapshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestBackup_Success() {
	userID := uuid.NewString()
	suite.mockBackup.On("StoreSnapshot", mock.Anything, userID,
		mock.AnythingOfType("[]domain.Expense"), mock.AnythingOfType("[]domain.Account")).
		Return(time.Now(), nil).Once()

	body, _ := json.Marshal(dto.BackupRequest{
		Expenses: []domain.Expense{{ID: "e1", Amount: decimal.RequireFromString("10"), AccountID: "a1"}},
		Accounts: []domain.Account{{ID: "a1", Name: "Checking", Balance: decimal.RequireFromString("90")}},
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/backup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", suite.bearerFor(userID))
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BackupResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.mockBackup.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestRestore_Success() {
	userID := uuid.NewString()
	snapshot := &domain.Snapshot{
		UserID:    userID,
		Expenses:  []domain.Expense{{ID: "e1", Amount: decimal.RequireFromString("10")}},
		Accounts:  []domain.Account{{ID: "a1", Balance: decimal.RequireFromString("90")}},
		UpdatedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
	suite.mockBackup.On("FetchSnapshot", mock.Anything, userID).Return(snapshot, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/restore", nil)
	req.Header.Set("Authorization", suite.bearerFor(userID))
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RestoreResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Len(resp.Expenses, 1)
	suite.Len(resp.Accounts, 1)
	suite.True(resp.UpdatedAt.Equal(snapshot.UpdatedAt))
}

func (suite *HandlersTestSuite) TestRestore_NoBackup() {
	userID := uuid.NewString()
	suite.mockBackup.On("FetchSnapshot", mock.Anything, userID).Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/restore", nil)
	req.Header.Set("Authorization", suite.bearerFor(userID))
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestRestore_RejectsExpiredToken() {
	token, err := utils.GenerateJWT(uuid.NewString(), suite.cfg.JWTSecret, -time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/restore", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBackup.AssertNotCalled(suite.T(), "FetchSnapshot", mock.Anything, mock.Anything)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
