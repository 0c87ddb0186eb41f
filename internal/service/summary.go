package service

import (
	"context"
	"time"

	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService struct {
	entries repository.Entries
}

func NewReportService(entries repository.Entries) *ReportService {
	return &ReportService{entries: entries}
}

var errInvalidTimeRange = invalidf("invalid time range: from must be <= to")

// Summary totals the caller's entries per category. If no entries match,
// it returns a zero total with an empty category list.
func (s *ReportService) Summary(ctx context.Context, userID int, from, to time.Time) (models.Summary, error) {
	from, to = toUTC(from), toUTC(to)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return models.Summary{}, errInvalidTimeRange
	}

	rows, err := s.entries.Amounts(ctx, userID, from, to)
	if err != nil {
		return models.Summary{}, err
	}

	sum := aggregate(rows)
	sum.GeneratedAt = time.Now().UTC()
	if !from.IsZero() {
		sum.From = &from
	}
	if !to.IsZero() {
		sum.To = &to
	}
	return sum, nil
}

// aggregate folds rows into per-category totals, keeping first-seen order.
func aggregate(rows []models.AmountRow) models.Summary {
	sum := models.Summary{Total: decimal.Zero, Categories: []models.CategoryTotal{}}
	index := make(map[int]int)
	for _, r := range rows {
		i, ok := index[r.CategoryID]
		if !ok {
			i = len(sum.Categories)
			index[r.CategoryID] = i
			sum.Categories = append(sum.Categories, models.CategoryTotal{CategoryID: r.CategoryID, Total: decimal.Zero})
		}
		sum.Categories[i].Total = sum.Categories[i].Total.Add(r.Amount)
		sum.Categories[i].Count++
		sum.Total = sum.Total.Add(r.Amount)
		sum.Count++
	}
	return sum
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
