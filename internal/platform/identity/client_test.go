package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "test-key")
	return client
}

func TestSignInSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@example.com", body["email"])
		assert.Equal(t, true, body["returnSecureToken"])

		json.NewEncoder(w).Encode(AuthResponse{
			IDToken: "token-123",
			Email:   "jane@example.com",
			LocalID: "uid-1",
		})
	})

	resp, err := client.SignIn(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-123", resp.IDToken)
	assert.Equal(t, "uid-1", resp.LocalID)
}

func TestSignInWrongPasswordCollapsesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"INVALID_PASSWORD"}}`))
	})

	_, err := client.SignIn(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsInvalidCredentials(err))

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, InvalidCredentialsMessage, gwErr.Message)
	assert.Equal(t, "INVALID_PASSWORD", gwErr.Code)
}

func TestSignInUnknownEmailCollapsesMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_NOT_FOUND"}}`))
	})

	_, err := client.SignIn(context.Background(), "nobody@example.com", "secret")
	require.Error(t, err)
	assert.True(t, IsInvalidCredentials(err))
}

func TestSignInOtherCodesStayReadable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"TOO_MANY_ATTEMPTS_TRY_LATER"}}`))
	})

	_, err := client.SignIn(context.Background(), "jane@example.com", "secret")
	require.Error(t, err)
	assert.False(t, IsInvalidCredentials(err))

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "too many attempts try later", gwErr.Message)
}

func TestSignInMalformedErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`upstream blew up`))
	})

	_, err := client.SignIn(context.Background(), "jane@example.com", "secret")
	require.Error(t, err)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "UNKNOWN", gwErr.Code)
	assert.Equal(t, http.StatusInternalServerError, gwErr.StatusCode)
}

func TestSignUpReturnsNewUserID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:signUp", r.URL.Path)
		json.NewEncoder(w).Encode(AuthResponse{LocalID: "uid-new"})
	})

	uid, err := client.SignUp(context.Background(), "new@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-new", uid)
}

func TestSendPasswordReset(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:sendOobCode", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PASSWORD_RESET", body["requestType"])
		assert.Equal(t, "jane@example.com", body["email"])

		w.Write([]byte(`{"email":"jane@example.com"}`))
	})

	err := client.SendPasswordReset(context.Background(), "jane@example.com")
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:update", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "token-123", body["idToken"])
		assert.Equal(t, "new-secret", body["password"])

		w.Write([]byte(`{}`))
	})

	err := client.ChangePassword(context.Background(), "token-123", "new-secret")
	require.NoError(t, err)
}
