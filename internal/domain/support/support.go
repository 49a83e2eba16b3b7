// Package support takes help requests from signed-in users and queues
// them for an admin to pick up.
package support

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/platform/querier"
)

const StatusNew = "New"

type Message struct {
	ID          string    `json:"id"`
	SenderUID   string    `json:"senderUid"`
	SenderName  string    `json:"senderName"`
	SenderEmail string    `json:"senderEmail"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type StoreAPI interface {
	Insert(ctx context.Context, m Message) error
	List(ctx context.Context) ([]Message, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, m Message) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO support_messages (id, sender_uid, sender_name, sender_email, subject, body, status, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, m.ID, m.SenderUID, m.SenderName, m.SenderEmail, m.Subject, m.Body, m.Status, m.CreatedAt)
	return err
}

func (s *Store) List(ctx context.Context) ([]Message, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, sender_uid, sender_name, sender_email, subject, body, status, created_at
    FROM support_messages
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

type Service struct {
	Store StoreAPI
	Audit *audit.Service
}

func NewService(store StoreAPI, auditSvc *audit.Service) *Service {
	return &Service{Store: store, Audit: auditSvc}
}

// Send files a new support message; every message starts in the New
// state.
func (s *Service) Send(ctx context.Context, actor audit.Actor, email, subject, body string) (Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Message{}, errors.New("message body is required")
	}

	m := Message{
		ID:          uuid.NewString(),
		SenderUID:   actor.UID,
		SenderName:  actor.Name,
		SenderEmail: strings.TrimSpace(email),
		Subject:     strings.TrimSpace(subject),
		Body:        body,
		Status:      StatusNew,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.Insert(ctx, m); err != nil {
		return Message{}, err
	}

	s.Audit.Record(ctx, actor.UID, actor.Name, audit.ActionSupportMessageSent, "", m.Subject)
	return m, nil
}

func (s *Service) List(ctx context.Context) ([]Message, error) {
	return s.Store.List(ctx)
}

func scanMessages(rows pgx.Rows) ([]Message, error) {
	var list []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderUID, &m.SenderName, &m.SenderEmail, &m.Subject, &m.Body, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
