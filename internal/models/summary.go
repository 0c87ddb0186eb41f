package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the sum of all entries under one category.
type CategoryTotal struct {
	CategoryID int             `json:"category_id"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
}

// Summary aggregates a user's entries, optionally bounded by transaction time.
type Summary struct {
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
	Categories  []CategoryTotal `json:"categories"`
	From        *time.Time      `json:"from,omitempty"`
	To          *time.Time      `json:"to,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// AmountRow is one (category, amount) pair used to build a Summary.
type AmountRow struct {
	CategoryID int
	Amount     decimal.Decimal
}
