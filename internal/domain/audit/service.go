// Package audit records every mutating action in the portal. The log
// doubles as a data source: the admin dashboard derives its skill
// growth series from skillAdded entries, and employee dashboards show
// their own recent activity.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Record writes an audit entry. Failures are logged and swallowed so
// an audit hiccup never fails the action being audited.
func (s *Service) Record(ctx context.Context, actorUID, actorName, action, subjectUID, details string) {
	entry := Entry{
		ID:        uuid.NewString(),
		ActorUID:  actorUID,
		ActorName: actorName,
		Action:    action,
		SubjectID: subjectUID,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Insert(ctx, entry); err != nil {
		slog.Warn("audit record failed", "action", action, "actor", actorUID, "err", err)
	}
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.Store.Recent(ctx, limit)
}

func (s *Service) RecentByActor(ctx context.Context, actorUID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 3
	}
	return s.Store.RecentByActor(ctx, actorUID, limit)
}

// SkillAdditionsSince returns skillAdded entries newer than since,
// capped at limit, newest first.
func (s *Service) SkillAdditionsSince(ctx context.Context, since time.Time, limit int) ([]Entry, error) {
	return s.Store.ActionsSince(ctx, ActionSkillAdded, since, limit)
}
