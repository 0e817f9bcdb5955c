package services

import (
	"context"

	"github.com/spendtrail/spendtrail_app/internal/dto"
)

// ReportingSvc computes the spending summaries behind the charts. All
// aggregations read the current ledger; rows come back in a deterministic
// order so renderings are stable.
type ReportingSvc interface {
	// TotalsByCategory groups expense amounts by category, largest first.
	TotalsByCategory(ctx context.Context) ([]dto.SummaryRow, error)
	// TotalsByDay groups expense amounts by calendar day (YYYY-MM-DD),
	// oldest day first.
	TotalsByDay(ctx context.Context) ([]dto.SummaryRow, error)
	// TotalsByAccount groups expense amounts by account, labelled
	// "Name (Type)"; expenses whose account is gone fall under "Unknown".
	TotalsByAccount(ctx context.Context) ([]dto.SummaryRow, error)
	// TotalsByItem groups expense amounts by item, largest first; expenses
	// without an item are skipped.
	TotalsByItem(ctx context.Context) ([]dto.SummaryRow, error)
	// CumulativeByDay returns the running total of spend per day, oldest
	// day first.
	CumulativeByDay(ctx context.Context) ([]dto.SummaryRow, error)
}
