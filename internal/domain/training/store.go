package training

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"skillsaudit/internal/platform/querier"
)

var ErrNotFound = errors.New("assigned training not found")

type StoreAPI interface {
	Insert(ctx context.Context, t AssignedTraining) error
	Get(ctx context.Context, id string) (AssignedTraining, error)
	List(ctx context.Context) ([]AssignedTraining, error)
	ListForEmployee(ctx context.Context, uid string) ([]AssignedTraining, error)
	Update(ctx context.Context, t AssignedTraining) error
	Delete(ctx context.Context, id string) error
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, t AssignedTraining) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO assigned_trainings (id, title, provider, start_date, end_date, minimum_participants, status, level, assigned_to, created_by, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  `, t.ID, t.Title, t.Provider, t.StartDate, t.EndDate, t.MinimumParticipants, t.Status, t.Level, t.AssignedTo, t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (AssignedTraining, error) {
	var t AssignedTraining
	err := s.DB.QueryRow(ctx, `
    SELECT id, title, provider, start_date, end_date, minimum_participants, status, level, assigned_to, created_by, created_at, updated_at
    FROM assigned_trainings
    WHERE id = $1
  `, id).Scan(&t.ID, &t.Title, &t.Provider, &t.StartDate, &t.EndDate, &t.MinimumParticipants, &t.Status, &t.Level, &t.AssignedTo, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return AssignedTraining{}, ErrNotFound
	}
	if err != nil {
		return AssignedTraining{}, err
	}
	return t, nil
}

func (s *Store) List(ctx context.Context) ([]AssignedTraining, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, provider, start_date, end_date, minimum_participants, status, level, assigned_to, created_by, created_at, updated_at
    FROM assigned_trainings
    ORDER BY start_date
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssigned(rows)
}

func (s *Store) ListForEmployee(ctx context.Context, uid string) ([]AssignedTraining, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, provider, start_date, end_date, minimum_participants, status, level, assigned_to, created_by, created_at, updated_at
    FROM assigned_trainings
    WHERE $1 = ANY(assigned_to)
    ORDER BY start_date
  `, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssigned(rows)
}

func (s *Store) Update(ctx context.Context, t AssignedTraining) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE assigned_trainings
    SET title = $2, provider = $3, start_date = $4, end_date = $5, minimum_participants = $6, status = $7, level = $8, assigned_to = $9, updated_at = now()
    WHERE id = $1
  `, t.ID, t.Title, t.Provider, t.StartDate, t.EndDate, t.MinimumParticipants, t.Status, t.Level, t.AssignedTo)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM assigned_trainings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAssigned(rows pgx.Rows) ([]AssignedTraining, error) {
	var list []AssignedTraining
	for rows.Next() {
		var t AssignedTraining
		if err := rows.Scan(&t.ID, &t.Title, &t.Provider, &t.StartDate, &t.EndDate, &t.MinimumParticipants, &t.Status, &t.Level, &t.AssignedTo, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
