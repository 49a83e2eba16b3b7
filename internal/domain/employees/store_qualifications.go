package employees

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertQualification(ctx context.Context, q Qualification) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO qualifications (id, employee_uid, name, institution, year_obtained, qualification_type, serial_number, document_url, is_verified, is_rejected, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
  `, q.ID, q.EmployeeUID, q.Name, q.Institution, q.YearObtained, q.Type, q.SerialNumber, q.DocumentURL, q.IsVerified, q.IsRejected, q.CreatedAt, q.UpdatedAt)
	return err
}

func (s *Store) GetQualification(ctx context.Context, uid, qualificationID string) (Qualification, error) {
	var q Qualification
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_uid, name, institution, year_obtained, qualification_type, serial_number, document_url, is_verified, is_rejected, created_at, updated_at
    FROM qualifications
    WHERE employee_uid = $1 AND id = $2
  `, uid, qualificationID).Scan(&q.ID, &q.EmployeeUID, &q.Name, &q.Institution, &q.YearObtained, &q.Type, &q.SerialNumber, &q.DocumentURL, &q.IsVerified, &q.IsRejected, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Qualification{}, ErrNotFound
	}
	if err != nil {
		return Qualification{}, err
	}
	return q, nil
}

func (s *Store) ListQualifications(ctx context.Context, uid string) ([]Qualification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_uid, name, institution, year_obtained, qualification_type, serial_number, document_url, is_verified, is_rejected, created_at, updated_at
    FROM qualifications
    WHERE employee_uid = $1
    ORDER BY year_obtained DESC, name
  `, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQualifications(rows)
}

// ListPendingQualifications returns submissions still awaiting a
// decision, oldest first so the review queue is fair.
func (s *Store) ListPendingQualifications(ctx context.Context) ([]Qualification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_uid, name, institution, year_obtained, qualification_type, serial_number, document_url, is_verified, is_rejected, created_at, updated_at
    FROM qualifications
    WHERE is_verified = FALSE AND is_rejected = FALSE
    ORDER BY created_at
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQualifications(rows)
}

func (s *Store) UpdateQualification(ctx context.Context, uid, qualificationID string, update QualificationUpdate) error {
	// Any content change sends the qualification back to pending.
	tag, err := s.DB.Exec(ctx, `
    UPDATE qualifications
    SET name = COALESCE($3, name),
        institution = COALESCE($4, institution),
        year_obtained = COALESCE($5, year_obtained),
        qualification_type = COALESCE($6, qualification_type),
        serial_number = COALESCE($7, serial_number),
        document_url = COALESCE($8, document_url),
        is_verified = FALSE,
        is_rejected = FALSE,
        updated_at = now()
    WHERE employee_uid = $1 AND id = $2
  `, uid, qualificationID, update.Name, update.Institution, update.YearObtained, update.Type, update.SerialNumber, update.DocumentURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetQualificationFlags(ctx context.Context, uid, qualificationID string, verified, rejected bool) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE qualifications
    SET is_verified = $3, is_rejected = $4, updated_at = now()
    WHERE employee_uid = $1 AND id = $2
  `, uid, qualificationID, verified, rejected)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteQualification(ctx context.Context, uid, qualificationID string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM qualifications WHERE employee_uid = $1 AND id = $2`, uid, qualificationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanQualifications(rows pgx.Rows) ([]Qualification, error) {
	var list []Qualification
	for rows.Next() {
		var q Qualification
		if err := rows.Scan(&q.ID, &q.EmployeeUID, &q.Name, &q.Institution, &q.YearObtained, &q.Type, &q.SerialNumber, &q.DocumentURL, &q.IsVerified, &q.IsRejected, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, q)
	}
	return list, rows.Err()
}
