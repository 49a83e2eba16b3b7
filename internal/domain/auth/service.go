// Package auth signs users in through the external identity gateway
// and gates access on the portal role stored alongside the account.
// Only the two known roles may enter; a session is a signed JWT set as
// a cookie, not server-side state.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillsaudit/internal/domain/audit"
	"skillsaudit/internal/platform/identity"
)

const (
	SessionTTL         = 8 * time.Hour
	ExtendedSessionTTL = 7 * 24 * time.Hour
)

// ErrAccessDenied is returned when the credentials were accepted but
// the account's stored role is not one the portal recognizes.
var ErrAccessDenied = errors.New("Access denied")

type Gateway interface {
	SignIn(ctx context.Context, email, password string) (*identity.AuthResponse, error)
	SignUp(ctx context.Context, email, password string) (string, error)
	SendPasswordReset(ctx context.Context, email string) error
	ChangePassword(ctx context.Context, idToken, newPassword string) error
}

type Service struct {
	Gateway   Gateway
	Store     StoreAPI
	Audit     *audit.Service
	JWTSecret string
}

func NewService(gateway Gateway, store StoreAPI, auditSvc *audit.Service, jwtSecret string) *Service {
	return &Service{Gateway: gateway, Store: store, Audit: auditSvc, JWTSecret: jwtSecret}
}

type LoginResult struct {
	Token        string    `json:"-"`
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsFirstLogin bool      `json:"isFirstLogin"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Login verifies credentials with the gateway, checks the stored role
// and issues a session token. RememberMe stretches the session from
// eight hours to seven days.
func (s *Service) Login(ctx context.Context, email, password string, rememberMe bool) (LoginResult, error) {
	authResp, err := s.Gateway.SignIn(ctx, email, password)
	if err != nil {
		s.Audit.Record(ctx, "", email, audit.ActionWebLoginFail, "", "credentials rejected")
		return LoginResult{}, err
	}

	user, err := s.Store.GetUser(ctx, authResp.LocalID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.Audit.Record(ctx, authResp.LocalID, email, audit.ActionWebLoginFail, "", "no portal account")
			return LoginResult{}, ErrAccessDenied
		}
		return LoginResult{}, err
	}

	role, ok := NormalizeRole(user.Role)
	if !ok {
		s.Audit.Record(ctx, user.UID, email, audit.ActionWebLoginFail, "", fmt.Sprintf("unrecognized role %q", user.Role))
		return LoginResult{}, ErrAccessDenied
	}

	ttl := SessionTTL
	if rememberMe {
		ttl = ExtendedSessionTTL
	}

	token, err := GenerateToken(s.JWTSecret, Claims{UID: user.UID, Email: user.Email, Role: role}, ttl)
	if err != nil {
		return LoginResult{}, err
	}

	s.Audit.Record(ctx, user.UID, user.Email, audit.ActionWebLoginSuccess, "", "")

	return LoginResult{
		Token:        token,
		UID:          user.UID,
		Email:        user.Email,
		Role:         role,
		IsFirstLogin: user.IsFirstLogin,
		ExpiresAt:    time.Now().Add(ttl),
	}, nil
}

func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	return s.Gateway.SendPasswordReset(ctx, email)
}

// ChangePassword re-authenticates with the current password before
// asking the gateway to set the new one, then clears the first-login
// flag so the forced password change prompt stops appearing.
func (s *Service) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	authResp, err := s.Gateway.SignIn(ctx, email, currentPassword)
	if err != nil {
		return err
	}
	if err := s.Gateway.ChangePassword(ctx, authResp.IDToken, newPassword); err != nil {
		return err
	}
	return s.Store.SetFirstLoginDone(ctx, authResp.LocalID)
}
