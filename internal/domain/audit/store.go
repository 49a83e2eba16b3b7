package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"skillsaudit/internal/platform/querier"
)

type StoreAPI interface {
	Insert(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	RecentByActor(ctx context.Context, actorUID string, limit int) ([]Entry, error)
	ActionsSince(ctx context.Context, action string, since time.Time, limit int) ([]Entry, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, entry Entry) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_logs (id, actor_uid, actor_name, action, subject_uid, details, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, entry.ID, entry.ActorUID, entry.ActorName, entry.Action, entry.SubjectID, entry.Details, entry.CreatedAt)
	return err
}

func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, actor_uid, actor_name, action, subject_uid, details, created_at
    FROM audit_logs
    ORDER BY created_at DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Store) RecentByActor(ctx context.Context, actorUID string, limit int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, actor_uid, actor_name, action, subject_uid, details, created_at
    FROM audit_logs
    WHERE actor_uid = $1
    ORDER BY created_at DESC
    LIMIT $2
  `, actorUID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Store) ActionsSince(ctx context.Context, action string, since time.Time, limit int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, actor_uid, actor_name, action, subject_uid, details, created_at
    FROM audit_logs
    WHERE action = $1 AND created_at >= $2
    ORDER BY created_at DESC
    LIMIT $3
  `, action, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ActorUID, &e.ActorName, &e.Action, &e.SubjectID, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
