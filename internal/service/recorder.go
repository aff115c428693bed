package service

import (
	"context"
	"time"

	"library_management/internal/logger"
	"library_management/internal/models"
	"library_management/internal/repository"
)

// historyRecorder appends circulation events on a best-effort basis; the JSON
// stores stay the source of truth, so a failed append is only logged.
type historyRecorder struct {
	repo repository.EventRepo
	log  *logger.Logger
	now  func() time.Time
}

func (r historyRecorder) record(ctx context.Context, e models.CirculationEvent) {
	if r.repo == nil {
		return
	}
	if r.now != nil {
		e.OccurredAt = r.now().UTC()
	}
	if err := r.repo.Append(ctx, e); err != nil && r.log != nil {
		r.log.Warnw("history_append_failed", "type", e.Type, "user_id", e.UserID, "book_id", e.BookID, "err", err)
	}
}
