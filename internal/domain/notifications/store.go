package notifications

import (
	"context"

	"github.com/jackc/pgx/v5"

	"skillsaudit/internal/platform/querier"
)

type StoreAPI interface {
	Insert(ctx context.Context, n Notification) error
	ListByRecipient(ctx context.Context, recipientUID string) ([]Notification, error)
	MarkRead(ctx context.Context, recipientUID, notificationID string) error
	MarkAllRead(ctx context.Context, recipientUID string) (int, error)
	DeleteByRecipient(ctx context.Context, recipientUID string) error
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, n Notification) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (id, recipient_uid, type, title, body, is_read, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, n.ID, n.RecipientUID, n.Type, n.Title, n.Body, n.IsRead, n.CreatedAt)
	return err
}

func (s *Store) ListByRecipient(ctx context.Context, recipientUID string) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, recipient_uid, type, title, body, is_read, created_at
    FROM notifications
    WHERE recipient_uid = $1
    ORDER BY created_at DESC
  `, recipientUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotifications(rows)
}

func (s *Store) MarkRead(ctx context.Context, recipientUID, notificationID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications
    SET is_read = TRUE
    WHERE recipient_uid = $1 AND id = $2
  `, recipientUID, notificationID)
	return err
}

func (s *Store) MarkAllRead(ctx context.Context, recipientUID string) (int, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE notifications
    SET is_read = TRUE
    WHERE recipient_uid = $1 AND is_read = FALSE
  `, recipientUID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) DeleteByRecipient(ctx context.Context, recipientUID string) error {
	_, err := s.DB.Exec(ctx, `DELETE FROM notifications WHERE recipient_uid = $1`, recipientUID)
	return err
}

func scanNotifications(rows pgx.Rows) ([]Notification, error) {
	var items []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.RecipientUID, &n.Type, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
