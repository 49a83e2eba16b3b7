package notificationhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/domain/auth"
	"skillsaudit/internal/domain/notifications"
	"skillsaudit/internal/transport/http/middleware"
)

const testSecret = "handler-test-secret"

type memNotificationStore struct {
	items []notifications.Notification
}

func (m *memNotificationStore) Insert(_ context.Context, n notifications.Notification) error {
	m.items = append(m.items, n)
	return nil
}

func (m *memNotificationStore) ListByRecipient(_ context.Context, recipientUID string) ([]notifications.Notification, error) {
	var out []notifications.Notification
	for _, n := range m.items {
		if n.RecipientUID == recipientUID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotificationStore) MarkRead(_ context.Context, recipientUID, notificationID string) error {
	for i, n := range m.items {
		if n.RecipientUID == recipientUID && n.ID == notificationID {
			m.items[i].IsRead = true
		}
	}
	return nil
}

func (m *memNotificationStore) MarkAllRead(_ context.Context, recipientUID string) (int, error) {
	changed := 0
	for i, n := range m.items {
		if n.RecipientUID == recipientUID && !n.IsRead {
			m.items[i].IsRead = true
			changed++
		}
	}
	return changed, nil
}

func (m *memNotificationStore) DeleteByRecipient(_ context.Context, recipientUID string) error {
	var kept []notifications.Notification
	for _, n := range m.items {
		if n.RecipientUID != recipientUID {
			kept = append(kept, n)
		}
	}
	m.items = kept
	return nil
}

type memAuditStore struct {
	entries []audit.Entry
}

func (m *memAuditStore) Insert(_ context.Context, e audit.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memAuditStore) Recent(_ context.Context, limit int) ([]audit.Entry, error) {
	return m.entries, nil
}

func (m *memAuditStore) RecentByActor(_ context.Context, actorUID string, limit int) ([]audit.Entry, error) {
	return nil, nil
}

func (m *memAuditStore) ActionsSince(_ context.Context, action string, since time.Time, limit int) ([]audit.Entry, error) {
	return nil, nil
}

type noAdmins struct{}

func (noAdmins) AdminUIDs(context.Context) ([]string, error) { return nil, nil }

func newTestServer(t *testing.T, store *memNotificationStore, audits *memAuditStore) *httptest.Server {
	t.Helper()

	h := NewHandler(notifications.NewService(store, noAdmins{}), audit.NewService(audits))

	r := chi.NewRouter()
	r.Use(middleware.Auth(testSecret))
	h.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func authedRequest(t *testing.T, method, url, uid string) *http.Request {
	t.Helper()

	token, err := auth.GenerateToken(testSecret, auth.Claims{UID: uid, Email: uid + "@corp.test", Role: auth.RoleEmployee}, time.Hour)
	require.NoError(t, err)

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	return req
}

func seeded() *memNotificationStore {
	now := time.Now().UTC()
	return &memNotificationStore{items: []notifications.Notification{
		{ID: "n1", RecipientUID: "emp-1", Type: notifications.TypeMessage, Title: "Qualification verified", CreatedAt: now},
		{ID: "n2", RecipientUID: "emp-1", Type: notifications.TypeAlert, Title: "New training submitted", CreatedAt: now},
		{ID: "n3", RecipientUID: "emp-2", Type: notifications.TypeMessage, Title: "Training approved", CreatedAt: now},
	}}
}

func TestListScopedToRecipientAndFiltered(t *testing.T) {
	srv := newTestServer(t, seeded(), &memAuditStore{})

	req := authedRequest(t, http.MethodGet, srv.URL+"/notifications?filter=message", "emp-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []notifications.Notification `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "n1", envelope.Data[0].ID)
}

func TestListRejectsAnonymous(t *testing.T) {
	srv := newTestServer(t, seeded(), &memAuditStore{})

	resp, err := http.Get(srv.URL + "/notifications")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMarkAllReadAuditsWhenSomethingChanged(t *testing.T) {
	store := seeded()
	audits := &memAuditStore{}
	srv := newTestServer(t, store, audits)

	req := authedRequest(t, http.MethodPost, srv.URL+"/notifications/read-all", "emp-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, audits.entries, 1)
	assert.Equal(t, audit.ActionNotificationsReadAll, audits.entries[0].Action)

	// A second call finds nothing unread and records no extra entry.
	req = authedRequest(t, http.MethodPost, srv.URL+"/notifications/read-all", "emp-1")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, audits.entries, 1)
}

func TestMarkReadIgnoresOtherRecipients(t *testing.T) {
	store := seeded()
	srv := newTestServer(t, store, &memAuditStore{})

	// emp-1 cannot flip emp-2's notice.
	req := authedRequest(t, http.MethodPost, srv.URL+"/notifications/n3/read", "emp-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, n := range store.items {
		assert.False(t, n.IsRead, n.ID)
	}
}
