package employees

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("record not found")

// deleteBatchSize caps how many dependent rows one round trip removes
// during a cascade delete.
const deleteBatchSize = 100

func (s *Store) InsertEmployee(ctx context.Context, e Employee) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (uid, first_name, last_name, email, id_number, job_title, phone, department, profile_picture_url, profile_completion_status, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  `, e.UID, e.FirstName, e.LastName, e.Email, e.IDNumber, e.JobTitle, e.Phone, e.Department, e.ProfilePictureURL, e.ProfileCompletion, e.CreatedAt, e.UpdatedAt)
	return err
}

func (s *Store) GetEmployee(ctx context.Context, uid string) (Employee, error) {
	var e Employee
	err := s.DB.QueryRow(ctx, `
    SELECT uid, first_name, last_name, email, id_number, job_title, phone, department, profile_picture_url, profile_completion_status, created_at, updated_at
    FROM employees
    WHERE uid = $1
  `, uid).Scan(&e.UID, &e.FirstName, &e.LastName, &e.Email, &e.IDNumber, &e.JobTitle, &e.Phone, &e.Department, &e.ProfilePictureURL, &e.ProfileCompletion, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT uid, first_name, last_name, email, id_number, job_title, phone, department, profile_picture_url, profile_completion_status, created_at, updated_at
    FROM employees
    ORDER BY first_name, last_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.UID, &e.FirstName, &e.LastName, &e.Email, &e.IDNumber, &e.JobTitle, &e.Phone, &e.Department, &e.ProfilePictureURL, &e.ProfileCompletion, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// UpdateProfile applies a merge update: only the non-nil fields change.
func (s *Store) UpdateProfile(ctx context.Context, uid string, update ProfileUpdate) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = COALESCE($2, first_name),
        last_name = COALESCE($3, last_name),
        email = COALESCE($4, email),
        id_number = COALESCE($5, id_number),
        job_title = COALESCE($6, job_title),
        phone = COALESCE($7, phone),
        department = COALESCE($8, department),
        profile_picture_url = COALESCE($9, profile_picture_url),
        updated_at = now()
    WHERE uid = $1
  `, uid, update.FirstName, update.LastName, update.Email, update.IDNumber, update.JobTitle, update.Phone, update.Department, update.ProfilePictureURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetCompletion(ctx context.Context, uid string, score float64) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET profile_completion_status = $2, updated_at = now()
    WHERE uid = $1
  `, uid, score)
	return err
}

// DeleteEmployeeCascade removes all dependent rows in bounded batches
// and then deletes the profile and login account in one transaction.
// Large histories are drained without a single huge statement; the
// final transaction guarantees profile and account go together.
func (s *Store) DeleteEmployeeCascade(ctx context.Context, uid string) error {
	for _, table := range []string{"skills", "qualifications", "employee_trainings"} {
		if err := s.drainDependents(ctx, table, uid); err != nil {
			return err
		}
	}

	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM employees WHERE uid = $1`, uid); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE uid = $1`, uid); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) drainDependents(ctx context.Context, table, uid string) error {
	for {
		tag, err := s.DB.Exec(ctx, `
      DELETE FROM `+table+`
      WHERE id IN (
        SELECT id FROM `+table+` WHERE employee_uid = $1 LIMIT $2
      )
    `, uid, deleteBatchSize)
		if err != nil {
			return err
		}
		if tag.RowsAffected() < deleteBatchSize {
			return nil
		}
	}
}
