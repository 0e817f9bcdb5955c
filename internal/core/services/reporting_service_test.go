package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/core/services"
	"github.com/spendtrail/spendtrail_app/internal/dto"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	store   *fakeLedgerStore
	service portssvc.ReportingSvc
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.store = newFakeLedgerStore()
	suite.service = services.NewReportingService(suite.store)
}

func (suite *ReportingServiceTestSuite) seed() {
	day1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)

	suite.store.accounts = []domain.Account{
		{ID: "a1", Name: "Checking", Type: "bank"},
		{ID: "a2", Name: "Wallet", Type: "cash"},
	}
	suite.store.expenses = []domain.Expense{
		{ID: "e1", Amount: decimal.RequireFromString("10"), Date: day1, Category: "Food", Item: "Lunch", AccountID: "a1"},
		{ID: "e2", Amount: decimal.RequireFromString("25"), Date: day1, Category: "Food", Item: "Dinner", AccountID: "a2"},
		{ID: "e3", Amount: decimal.RequireFromString("40"), Date: day2, Category: "Transport", AccountID: "a1"},
		{ID: "e4", Amount: decimal.RequireFromString("5"), Date: day2, Category: "", AccountID: "gone"},
	}
}

func rowTotals(rows []dto.SummaryRow) map[string]string {
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Label] = r.Total.String()
	}
	return out
}

func (suite *ReportingServiceTestSuite) TestTotalsByCategory() {
	suite.seed()

	rows, err := suite.service.TotalsByCategory(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	// Largest first; the uncategorized expense gets its own bucket.
	suite.Equal("Transport", rows[0].Label)
	suite.Equal("Food", rows[1].Label)
	suite.Equal("Uncategorized", rows[2].Label)
	suite.Equal(map[string]string{"Food": "35", "Transport": "40", "Uncategorized": "5"}, rowTotals(rows))
}

func (suite *ReportingServiceTestSuite) TestTotalsByDay_OldestFirst() {
	suite.seed()

	rows, err := suite.service.TotalsByDay(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal("2026-08-01", rows[0].Label)
	suite.Equal("2026-08-02", rows[1].Label)
	suite.True(rows[0].Total.Equal(decimal.RequireFromString("35")))
	suite.True(rows[1].Total.Equal(decimal.RequireFromString("45")))
}

func (suite *ReportingServiceTestSuite) TestTotalsByAccount_UnknownBucket() {
	suite.seed()

	rows, err := suite.service.TotalsByAccount(context.Background())

	suite.Require().NoError(err)
	suite.Equal(map[string]string{
		"Checking (bank)": "50",
		"Wallet (cash)":   "25",
		"Unknown":         "5",
	}, rowTotals(rows))
}

func (suite *ReportingServiceTestSuite) TestTotalsByItem_SkipsEmptyItems() {
	suite.seed()

	rows, err := suite.service.TotalsByItem(context.Background())

	suite.Require().NoError(err)
	suite.Equal(map[string]string{"Lunch": "10", "Dinner": "25"}, rowTotals(rows))
}

func (suite *ReportingServiceTestSuite) TestCumulativeByDay() {
	suite.seed()

	rows, err := suite.service.CumulativeByDay(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.True(rows[0].Total.Equal(decimal.RequireFromString("35")))
	suite.True(rows[1].Total.Equal(decimal.RequireFromString("80")))
}

func (suite *ReportingServiceTestSuite) TestEmptyLedger() {
	rows, err := suite.service.TotalsByCategory(context.Background())
	suite.Require().NoError(err)
	suite.Empty(rows)

	rows, err = suite.service.CumulativeByDay(context.Background())
	suite.Require().NoError(err)
	suite.Empty(rows)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
