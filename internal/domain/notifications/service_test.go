package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	inserted []Notification
	listed   []Notification
	readAll  int
}

func (f *fakeStore) Insert(ctx context.Context, n Notification) error {
	f.inserted = append(f.inserted, n)
	return nil
}

func (f *fakeStore) ListByRecipient(ctx context.Context, recipientUID string) ([]Notification, error) {
	return f.listed, nil
}

func (f *fakeStore) MarkRead(ctx context.Context, recipientUID, notificationID string) error {
	return nil
}

func (f *fakeStore) MarkAllRead(ctx context.Context, recipientUID string) (int, error) {
	return f.readAll, nil
}

func (f *fakeStore) DeleteByRecipient(ctx context.Context, recipientUID string) error {
	return nil
}

type fakeAdmins struct{ uids []string }

func (f fakeAdmins) AdminUIDs(ctx context.Context) ([]string, error) { return f.uids, nil }

func TestNotifyAdminsFansOutToEveryAdmin(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, fakeAdmins{uids: []string{"admin-1", "admin-2", "admin-3"}})

	svc.NotifyAdmins(context.Background(), "New qualification submitted", "Jane added a qualification")

	require.Len(t, store.inserted, 3)
	for _, n := range store.inserted {
		assert.Equal(t, TypeAlert, n.Type)
		assert.False(t, n.IsRead)
		assert.NotEmpty(t, n.ID)
	}
	assert.Equal(t, "admin-2", store.inserted[1].RecipientUID)
}

func TestNotifyUserDeliversMessage(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, fakeAdmins{})

	svc.NotifyUser(context.Background(), "uid-1", "Qualification verified", "Your BSc was verified")

	require.Len(t, store.inserted, 1)
	assert.Equal(t, TypeMessage, store.inserted[0].Type)
	assert.Equal(t, "uid-1", store.inserted[0].RecipientUID)
}

func sampleInbox() []Notification {
	return []Notification{
		{ID: "1", Type: TypeAlert, Title: "New skill submitted", Body: "Go added by Jane", IsRead: false},
		{ID: "2", Type: TypeMessage, Title: "Training approved", Body: "Kubernetes course", IsRead: true},
		{ID: "3", Type: TypeAlert, Title: "New qualification submitted", Body: "MSc added by Ravi", IsRead: true},
		{ID: "4", Type: TypeMessage, Title: "Qualification rejected", Body: "Certificate unreadable", IsRead: false},
		{ID: "5", Type: TypeAlert, Title: "Training approval required", Body: "Jane submitted a training plan", IsRead: false},
	}
}

func TestFilterNotifications(t *testing.T) {
	inbox := sampleInbox()

	assert.Len(t, FilterNotifications(inbox, "all", ""), 5)
	assert.Len(t, FilterNotifications(inbox, "", ""), 5)

	unread := FilterNotifications(inbox, "unread", "")
	require.Len(t, unread, 3)
	assert.Equal(t, "1", unread[0].ID)
	assert.Equal(t, "4", unread[1].ID)

	alerts := FilterNotifications(inbox, "alert", "")
	require.Len(t, alerts, 3)

	messages := FilterNotifications(inbox, "message", "")
	require.Len(t, messages, 2)

	approvals := FilterNotifications(inbox, "approvals", "")
	require.Len(t, approvals, 1)
	assert.Equal(t, "5", approvals[0].ID)
}

func TestFilterNotificationsSearchMatchesTitleAndBody(t *testing.T) {
	inbox := sampleInbox()

	byTitle := FilterNotifications(inbox, "all", "qualification")
	require.Len(t, byTitle, 2)

	byBody := FilterNotifications(inbox, "all", "kubernetes course")
	require.Len(t, byBody, 1)
	assert.Equal(t, "2", byBody[0].ID)

	assert.Empty(t, FilterNotifications(inbox, "all", "nothing matches this"))
}

func TestCountNotifications(t *testing.T) {
	counts := CountNotifications(sampleInbox())
	assert.Equal(t, Counts{All: 5, Unread: 3, Approvals: 1, Alerts: 3, Messages: 2}, counts)
}

func TestCountsForEmptyInbox(t *testing.T) {
	svc := NewService(&fakeStore{}, fakeAdmins{})
	counts, err := svc.CountsFor(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)
}
