// Package notifications delivers in-app notices. Submissions by
// employees raise alerts for every admin; decisions and assignments
// raise messages for the affected employee.
package notifications

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AdminDirectory resolves the current set of admin user ids so alerts
// can fan out to all of them.
type AdminDirectory interface {
	AdminUIDs(ctx context.Context) ([]string, error)
}

type Service struct {
	Store  StoreAPI
	Admins AdminDirectory
}

func NewService(store StoreAPI, admins AdminDirectory) *Service {
	return &Service{Store: store, Admins: admins}
}

// NotifyAdmins raises one alert per admin. Delivery is best effort;
// the triggering action already succeeded.
func (s *Service) NotifyAdmins(ctx context.Context, title, body string) {
	uids, err := s.Admins.AdminUIDs(ctx)
	if err != nil {
		slog.Warn("admin alert fan-out failed", "title", title, "err", err)
		return
	}
	for _, uid := range uids {
		s.deliver(ctx, uid, TypeAlert, title, body)
	}
}

// NotifyUser raises a message notice for one employee.
func (s *Service) NotifyUser(ctx context.Context, recipientUID, title, body string) {
	s.deliver(ctx, recipientUID, TypeMessage, title, body)
}

func (s *Service) deliver(ctx context.Context, recipientUID, kind, title, body string) {
	n := Notification{
		ID:           uuid.NewString(),
		RecipientUID: recipientUID,
		Type:         kind,
		Title:        title,
		Body:         body,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Store.Insert(ctx, n); err != nil {
		slog.Warn("notification delivery failed", "recipient", recipientUID, "title", title, "err", err)
	}
}

// List returns the recipient's notifications filtered by kind
// ("all", "unread", "approvals", "alert" or "message") and an optional
// search term matched against title and body.
func (s *Service) List(ctx context.Context, recipientUID, filter, search string) ([]Notification, error) {
	items, err := s.Store.ListByRecipient(ctx, recipientUID)
	if err != nil {
		return nil, err
	}
	return FilterNotifications(items, filter, search), nil
}

func (s *Service) CountsFor(ctx context.Context, recipientUID string) (Counts, error) {
	items, err := s.Store.ListByRecipient(ctx, recipientUID)
	if err != nil {
		return Counts{}, err
	}
	return CountNotifications(items), nil
}

func (s *Service) MarkRead(ctx context.Context, recipientUID, notificationID string) error {
	return s.Store.MarkRead(ctx, recipientUID, notificationID)
}

// MarkAllRead flips every unread notice and reports how many changed.
func (s *Service) MarkAllRead(ctx context.Context, recipientUID string) (int, error) {
	return s.Store.MarkAllRead(ctx, recipientUID)
}

// FilterNotifications applies the notification center's filter chip
// and search box to an already loaded list.
func FilterNotifications(items []Notification, filter, search string) []Notification {
	filter = strings.ToLower(strings.TrimSpace(filter))
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]Notification, 0, len(items))
	for _, n := range items {
		switch filter {
		case "", "all":
		case "unread":
			if n.IsRead {
				continue
			}
		case "approvals":
			if !isApproval(n) {
				continue
			}
		case TypeAlert, TypeMessage:
			if n.Type != filter {
				continue
			}
		default:
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Body), search) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func CountNotifications(items []Notification) Counts {
	counts := Counts{All: len(items)}
	for _, n := range items {
		if !n.IsRead {
			counts.Unread++
		}
		if isApproval(n) {
			counts.Approvals++
		}
		switch n.Type {
		case TypeAlert:
			counts.Alerts++
		case TypeMessage:
			counts.Messages++
		}
	}
	return counts
}

func isApproval(n Notification) bool {
	return strings.Contains(strings.ToLower(n.Title), "approval")
}
