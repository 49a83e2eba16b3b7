package employees

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertTraining(ctx context.Context, t Training) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_trainings (id, employee_uid, name, provider, start_date, end_date, status, approved, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
  `, t.ID, t.EmployeeUID, t.Name, t.Provider, t.StartDate, t.EndDate, t.Status, t.Approved, t.CreatedAt, t.UpdatedAt)
	return err
}

func (s *Store) GetTraining(ctx context.Context, uid, trainingID string) (Training, error) {
	var t Training
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_uid, name, provider, start_date, end_date, status, approved, created_at, updated_at
    FROM employee_trainings
    WHERE employee_uid = $1 AND id = $2
  `, uid, trainingID).Scan(&t.ID, &t.EmployeeUID, &t.Name, &t.Provider, &t.StartDate, &t.EndDate, &t.Status, &t.Approved, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Training{}, ErrNotFound
	}
	if err != nil {
		return Training{}, err
	}
	return t, nil
}

func (s *Store) ListTrainings(ctx context.Context, uid string) ([]Training, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_uid, name, provider, start_date, end_date, status, approved, created_at, updated_at
    FROM employee_trainings
    WHERE employee_uid = $1
    ORDER BY start_date DESC, name
  `, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrainings(rows)
}

func (s *Store) ListPendingTrainings(ctx context.Context) ([]Training, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_uid, name, provider, start_date, end_date, status, approved, created_at, updated_at
    FROM employee_trainings
    WHERE approved = FALSE AND status = $1
    ORDER BY created_at
  `, TrainingStatusPlanned)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrainings(rows)
}

func (s *Store) UpdateTraining(ctx context.Context, uid, trainingID string, update TrainingUpdate) error {
	// Edits reset the request to an unapproved planned state so the
	// changed plan goes through review again.
	tag, err := s.DB.Exec(ctx, `
    UPDATE employee_trainings
    SET name = COALESCE($3, name),
        provider = COALESCE($4, provider),
        start_date = COALESCE($5, start_date),
        end_date = COALESCE($6, end_date),
        status = $7,
        approved = FALSE,
        updated_at = now()
    WHERE employee_uid = $1 AND id = $2
  `, uid, trainingID, update.Name, update.Provider, update.StartDate, update.EndDate, TrainingStatusPlanned)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetTrainingDecision(ctx context.Context, uid, trainingID string, approved bool, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employee_trainings
    SET approved = $3, status = $4, updated_at = now()
    WHERE employee_uid = $1 AND id = $2
  `, uid, trainingID, approved, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTraining(ctx context.Context, uid, trainingID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM employee_trainings WHERE employee_uid = $1 AND id = $2`, uid, trainingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTrainings(rows pgx.Rows) ([]Training, error) {
	var list []Training
	for rows.Next() {
		var t Training
		if err := rows.Scan(&t.ID, &t.EmployeeUID, &t.Name, &t.Provider, &t.StartDate, &t.EndDate, &t.Status, &t.Approved, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
