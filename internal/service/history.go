package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"library_management/internal/models"
	"library_management/internal/repository"
)

type HistoryService struct {
	eventRepo repository.EventRepo
}

func NewHistoryService(eventRepo repository.EventRepo) *HistoryService {
	return &HistoryService{eventRepo: eventRepo}
}

// ErrInvalidTimeRange is returned by List when From is after To.
var ErrInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeFilter(f LogFilter) (repository.EventFilter, error) {
	out := repository.EventFilter{
		From:   normalizeToUTC(f.From),
		To:     normalizeToUTC(f.To),
		Type:   strings.ToUpper(strings.TrimSpace(f.Type)),
		UserID: f.UserID,
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return repository.EventFilter{}, ErrInvalidTimeRange
	}
	return out, nil
}

func (s *HistoryService) List(ctx context.Context, f LogFilter) ([]models.CirculationEvent, error) {
	filter, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, filter)
}
