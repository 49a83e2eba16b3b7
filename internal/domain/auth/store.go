package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"skillsaudit/internal/platform/querier"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsFirstLogin bool      `json:"isFirstLogin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type StoreAPI interface {
	GetUser(ctx context.Context, uid string) (User, error)
	CreateUser(ctx context.Context, user User) error
	SetFirstLoginDone(ctx context.Context, uid string) error
	AdminUIDs(ctx context.Context) ([]string, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) GetUser(ctx context.Context, uid string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT uid, email, role, is_first_login, created_at
    FROM users
    WHERE uid = $1
  `, uid).Scan(&u.UID, &u.Email, &u.Role, &u.IsFirstLogin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, user User) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO users (uid, email, role, is_first_login, created_at)
    VALUES ($1,$2,$3,$4,$5)
  `, user.UID, user.Email, user.Role, user.IsFirstLogin, user.CreatedAt)
	return err
}

func (s *Store) SetFirstLoginDone(ctx context.Context, uid string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE users
    SET is_first_login = FALSE
    WHERE uid = $1 AND is_first_login = TRUE
  `, uid)
	return err
}

// AdminUIDs satisfies the notification fan-out directory.
func (s *Store) AdminUIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT uid FROM users WHERE lower(role) = 'admin'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uids []string
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		uids = append(uids, uid)
	}
	return uids, rows.Err()
}
