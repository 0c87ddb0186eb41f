package service

import (
	"context"
	"strings"
	"time"

	"secure_finance_manager/internal/models"
	"secure_finance_manager/internal/repository"
)

type EventLogService struct {
	events repository.Events
}

func NewEventLogService(events repository.Events) *EventLogService {
	return &EventLogService{events: events}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	return toUTC(t)
}

// normalizeUpper trims spaces and uppercases a filter value.
func normalizeUpper(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (repository.EventFilter, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return repository.EventFilter{}, errInvalidTimeRange
	}

	return repository.EventFilter{
		From:   from,
		To:     to,
		Type:   normalizeUpper(f.Type),
		Entity: normalizeUpper(f.Entity),
	}, nil
}

func (s *EventLogService) List(ctx context.Context, userID int, f LogFilter) ([]models.Event, error) {
	filter, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.events.List(ctx, userID, filter)
}
