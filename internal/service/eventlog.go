package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cadr/internal/logger"
	"cadr/internal/models"
	"cadr/internal/repository"

	"github.com/google/uuid"
)

// MaxLogLimit caps how many audit entries a single query may return.
const MaxLogLimit = 1000

// LogFilter narrows the audit log. Empty fields do not filter.
type LogFilter struct {
	From        time.Time // inclusive
	To          time.Time // inclusive
	Type        string    // ANALYSIS, RECORDING_START, RECORDING_STOP, ERROR
	RunID       string
	RecordingID string
	Limit       int // 0 returns everything up to MaxLogLimit
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = fmt.Errorf("%w: from must not be after to", ErrInvalidParams)
	errInvalidLimit     = fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidParams, MaxLogLimit)
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter turns f into a repository query.
func normalizeAndValidateFilter(f LogFilter) (repository.EventQuery, error) {
	q := repository.EventQuery{
		From:        normalizeToUTC(f.From),
		To:          normalizeToUTC(f.To),
		Type:        normalizeEventType(f.Type),
		RunID:       strings.TrimSpace(f.RunID),
		RecordingID: strings.TrimSpace(f.RecordingID),
		Limit:       f.Limit,
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.EventQuery{}, errInvalidTimeRange
	}
	if q.Limit < 0 || q.Limit > MaxLogLimit {
		return repository.EventQuery{}, errInvalidLimit
	}
	if q.Limit == 0 {
		q.Limit = MaxLogLimit
	}
	return q, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.Event, error) {
	q, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, q)
}

// recordEvent stamps e and appends it to the audit log. A failed append is
// logged and otherwise ignored.
func recordEvent(ctx context.Context, repo repository.EventRepo, log *logger.Logger, e models.Event) {
	e.EventID = uuid.NewString()
	e.OccurredAt = time.Now().UTC()
	if err := repo.Append(ctx, e); err != nil {
		log.Errorw("append_event_failed",
			"type", e.Type,
			"run_id", e.RunID,
			"recording_id", e.RecordingID,
			"err", err,
		)
	}
}
