package dto

import "github.com/shopspring/decimal"

// SummaryRow is one labelled bucket of a spending summary.
type SummaryRow struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}
