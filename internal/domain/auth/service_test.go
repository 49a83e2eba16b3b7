package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/platform/identity"
)

type fakeGateway struct {
	signInResp *identity.AuthResponse
	signInErr  error
	changed    bool
}

func (f *fakeGateway) SignIn(ctx context.Context, email, password string) (*identity.AuthResponse, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.signInResp, nil
}

func (f *fakeGateway) SignUp(ctx context.Context, email, password string) (string, error) {
	return "uid-new", nil
}

func (f *fakeGateway) SendPasswordReset(ctx context.Context, email string) error { return nil }

func (f *fakeGateway) ChangePassword(ctx context.Context, idToken, newPassword string) error {
	f.changed = true
	return nil
}

type fakeUserStore struct {
	users          map[string]User
	firstLoginDone []string
}

func (f *fakeUserStore) GetUser(ctx context.Context, uid string) (User, error) {
	u, ok := f.users[uid]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user User) error {
	f.users[user.UID] = user
	return nil
}

func (f *fakeUserStore) SetFirstLoginDone(ctx context.Context, uid string) error {
	f.firstLoginDone = append(f.firstLoginDone, uid)
	return nil
}

func (f *fakeUserStore) AdminUIDs(ctx context.Context) ([]string, error) { return nil, nil }

type fakeAuditStore struct{ entries []audit.Entry }

func (f *fakeAuditStore) Insert(ctx context.Context, entry audit.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditStore) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return nil, nil
}

func (f *fakeAuditStore) RecentByActor(ctx context.Context, actorUID string, limit int) ([]audit.Entry, error) {
	return nil, nil
}

func (f *fakeAuditStore) ActionsSince(ctx context.Context, action string, since time.Time, limit int) ([]audit.Entry, error) {
	return nil, nil
}

func newLoginFixture(role string) (*Service, *fakeAuditStore) {
	gateway := &fakeGateway{signInResp: &identity.AuthResponse{IDToken: "tok", LocalID: "uid-1", Email: "jane@example.com"}}
	users := &fakeUserStore{users: map[string]User{
		"uid-1": {UID: "uid-1", Email: "jane@example.com", Role: role, IsFirstLogin: true},
	}}
	auditStore := &fakeAuditStore{}
	svc := NewService(gateway, users, audit.NewService(auditStore), "test-secret")
	return svc, auditStore
}

func auditActions(store *fakeAuditStore) []string {
	actions := make([]string, 0, len(store.entries))
	for _, e := range store.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

func TestLoginAdminSucceeds(t *testing.T) {
	svc, auditStore := newLoginFixture("admin")

	result, err := svc.Login(context.Background(), "jane@example.com", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "admin", result.Role)
	assert.True(t, result.IsFirstLogin)
	assert.NotEmpty(t, result.Token)
	assert.Contains(t, auditActions(auditStore), audit.ActionWebLoginSuccess)

	claims, err := ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginRoleCaseInsensitive(t *testing.T) {
	svc, _ := newLoginFixture("Admin")

	result, err := svc.Login(context.Background(), "jane@example.com", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "admin", result.Role)
}

func TestLoginUnknownRoleDenied(t *testing.T) {
	svc, auditStore := newLoginFixture("superuser")

	_, err := svc.Login(context.Background(), "jane@example.com", "secret", false)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, auditActions(auditStore), audit.ActionWebLoginFail)
}

func TestLoginMissingPortalAccountDenied(t *testing.T) {
	gateway := &fakeGateway{signInResp: &identity.AuthResponse{LocalID: "uid-ghost"}}
	users := &fakeUserStore{users: map[string]User{}}
	auditStore := &fakeAuditStore{}
	svc := NewService(gateway, users, audit.NewService(auditStore), "test-secret")

	_, err := svc.Login(context.Background(), "ghost@example.com", "secret", false)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, auditActions(auditStore), audit.ActionWebLoginFail)
}

func TestLoginBadCredentialsAudited(t *testing.T) {
	gateway := &fakeGateway{signInErr: &identity.GatewayError{
		StatusCode: 400,
		Code:       "INVALID_PASSWORD",
		Message:    identity.InvalidCredentialsMessage,
	}}
	auditStore := &fakeAuditStore{}
	svc := NewService(gateway, &fakeUserStore{users: map[string]User{}}, audit.NewService(auditStore), "test-secret")

	_, err := svc.Login(context.Background(), "jane@example.com", "wrong", false)
	require.Error(t, err)
	assert.True(t, identity.IsInvalidCredentials(err))
	assert.Contains(t, auditActions(auditStore), audit.ActionWebLoginFail)
}

func TestLoginRememberMeStretchesSession(t *testing.T) {
	svc, _ := newLoginFixture("employee")

	short, err := svc.Login(context.Background(), "jane@example.com", "secret", false)
	require.NoError(t, err)
	long, err := svc.Login(context.Background(), "jane@example.com", "secret", true)
	require.NoError(t, err)

	assert.InDelta(t, SessionTTL.Seconds(), time.Until(short.ExpiresAt).Seconds(), 5)
	assert.InDelta(t, ExtendedSessionTTL.Seconds(), time.Until(long.ExpiresAt).Seconds(), 5)
}

func TestChangePasswordClearsFirstLogin(t *testing.T) {
	gateway := &fakeGateway{signInResp: &identity.AuthResponse{IDToken: "tok", LocalID: "uid-1"}}
	users := &fakeUserStore{users: map[string]User{"uid-1": {UID: "uid-1", Role: "employee"}}}
	svc := NewService(gateway, users, audit.NewService(&fakeAuditStore{}), "test-secret")

	err := svc.ChangePassword(context.Background(), "jane@example.com", "old", "new")
	require.NoError(t, err)
	assert.True(t, gateway.changed)
	assert.Equal(t, []string{"uid-1"}, users.firstLoginDone)
}

func TestNormalizeRole(t *testing.T) {
	for raw, want := range map[string]string{"admin": "admin", "ADMIN": "admin", " Employee ": "employee"} {
		role, ok := NormalizeRole(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, role)
	}

	for _, raw := range []string{"", "manager", "root", "admin2"} {
		_, ok := NormalizeRole(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UID: "uid-1", Role: "admin"}, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("secret-b", token)
	assert.Error(t, err)
}
