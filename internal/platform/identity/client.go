// Package identity is a client for the external identity gateway: a
// REST API that owns all credentials. Sign-in, sign-up, password reset
// and password change are passthroughs; this service never stores or
// hashes a password itself.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthResponse is the gateway's success body for sign-in and sign-up.
type AuthResponse struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type resetRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

type updatePasswordRequest struct {
	IDToken           string `json:"idToken"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "accounts:signInWithPassword", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp registers a new credential pair and returns the new user id.
func (c *Client) SignUp(ctx context.Context, email, password string) (string, error) {
	var out AuthResponse
	err := c.post(ctx, "accounts:signUp", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: false,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.LocalID == "" {
		return "", fmt.Errorf("identity gateway registration returned no user id")
	}
	return out.LocalID, nil
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.post(ctx, "accounts:sendOobCode", resetRequest{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}, nil)
}

// ChangePassword updates the password for the account identified by a
// fresh sign-in token.
func (c *Client) ChangePassword(ctx context.Context, idToken, newPassword string) error {
	return c.post(ctx, "accounts:update", updatePasswordRequest{
		IDToken:           idToken,
		Password:          newPassword,
		ReturnSecureToken: false,
	}, nil)
}

func (c *Client) post(ctx context.Context, action string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.BaseURL, action, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseGatewayError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
