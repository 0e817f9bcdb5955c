package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendtrail/spendtrail_app/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_app/internal/core/ports/repositories"
	portssvc "github.com/spendtrail/spendtrail_app/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_app/internal/dto"
)

const dayLayout = "2006-01-02"

// reportingService aggregates the expense ledger into the summary buckets
// the charts render. It only ever reads from the store.
type reportingService struct {
	BaseService
	store portsrepo.LedgerStore
}

// NewReportingService creates the summary aggregation service.
func NewReportingService(store portsrepo.LedgerStore) portssvc.ReportingSvc {
	return &reportingService{store: store}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) TotalsByCategory(ctx context.Context) ([]dto.SummaryRow, error) {
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	totals := map[string]decimal.Decimal{}
	for _, e := range expenses {
		label := e.Category
		if label == "" {
			label = "Uncategorized"
		}
		totals[label] = totals[label].Add(e.Amount)
	}
	return sortedByTotal(totals), nil
}

func (s *reportingService) TotalsByDay(ctx context.Context) ([]dto.SummaryRow, error) {
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return sortedByLabel(totalsPerDay(expenses)), nil
}

func (s *reportingService) TotalsByAccount(ctx context.Context) ([]dto.SummaryRow, error) {
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	accounts, err := s.store.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = fmt.Sprintf("%s (%s)", a.Name, a.Type)
	}

	totals := map[string]decimal.Decimal{}
	for _, e := range expenses {
		label, ok := names[e.AccountID]
		if !ok {
			label = "Unknown"
		}
		totals[label] = totals[label].Add(e.Amount)
	}
	return sortedByTotal(totals), nil
}

func (s *reportingService) TotalsByItem(ctx context.Context) ([]dto.SummaryRow, error) {
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	totals := map[string]decimal.Decimal{}
	for _, e := range expenses {
		if e.Item == "" {
			continue
		}
		totals[e.Item] = totals[e.Item].Add(e.Amount)
	}
	return sortedByTotal(totals), nil
}

func (s *reportingService) CumulativeByDay(ctx context.Context) ([]dto.SummaryRow, error) {
	expenses, err := s.store.GetExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	rows := sortedByLabel(totalsPerDay(expenses))
	running := decimal.Zero
	for i := range rows {
		running = running.Add(rows[i].Total)
		rows[i].Total = running
	}
	return rows, nil
}

func totalsPerDay(expenses []domain.Expense) map[string]decimal.Decimal {
	totals := map[string]decimal.Decimal{}
	for _, e := range expenses {
		day := e.Date.Format(dayLayout)
		totals[day] = totals[day].Add(e.Amount)
	}
	return totals
}

// sortedByTotal orders buckets largest total first, ties broken by label.
func sortedByTotal(totals map[string]decimal.Decimal) []dto.SummaryRow {
	rows := rowsOf(totals)
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// sortedByLabel orders buckets by label ascending; day labels are
// lexicographically ordered, which for YYYY-MM-DD is chronological.
func sortedByLabel(totals map[string]decimal.Decimal) []dto.SummaryRow {
	rows := rowsOf(totals)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}

func rowsOf(totals map[string]decimal.Decimal) []dto.SummaryRow {
	rows := make([]dto.SummaryRow, 0, len(totals))
	for label, total := range totals {
		rows = append(rows, dto.SummaryRow{Label: label, Total: total})
	}
	return rows
}
